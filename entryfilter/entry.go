// Package entryfilter holds the filter lists of an input or output location
// of a shrinking run.
//
// A location is a directory or an archive. Each location carries a general
// filter for the files it contributes plus one filter per archive type,
// selecting which nested archives of that type are read. Filters use the
// wildcard filter-list syntax: entries tried in order, '!' to reject, and
// names matching no entry rejected.
package entryfilter

import (
	"path"
	"strings"

	"github.com/coregx/keepmatch/wildcard"
)

// Kind is the type of an archive, or KindFile for the general filter.
type Kind int

// Archive kinds.
const (
	KindFile Kind = iota
	KindApk
	KindJar
	KindAab
	KindAar
	KindWar
	KindEar
	KindJmod
	KindZip
	numKinds
)

var kindNames = [numKinds]string{"file", "apk", "jar", "aab", "aar", "war", "ear", "jmod", "zip"}

// String returns the lowercase name of the kind, which is also the file
// extension of its archives.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind returns the kind named s. ok is false for unknown names.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(s)
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindFile, false
}

// KindOf returns the archive kind of name by its extension, or KindFile
// when name is not an archive.
func KindOf(name string) Kind {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" || strings.EqualFold(ext, "file") {
		return KindFile
	}
	k, _ := ParseKind(ext)
	return k
}

// Entry is an input or output location with its filters.
type Entry struct {
	Path   string
	Output bool

	filters  [numKinds][]string
	compiled [numKinds]*wildcard.Filter
}

// New returns an entry for path without filters.
func New(path string, output bool) *Entry {
	return &Entry{Path: path, Output: output}
}

// Kind returns the archive kind of the entry path.
func (e *Entry) Kind() Kind {
	return KindOf(e.Path)
}

func (e *Entry) get(k Kind) []string { return e.filters[k] }

// set stores list, normalizing an empty list to nil.
func (e *Entry) set(k Kind, list []string) {
	if len(list) == 0 {
		list = nil
	}
	e.filters[k] = list
	e.compiled[k] = wildcard.NewFilter(list)
}

// Filter returns the general file filter, or nil.
func (e *Entry) Filter() []string { return e.get(KindFile) }

// SetFilter sets the general file filter.
func (e *Entry) SetFilter(list []string) { e.set(KindFile, list) }

// ApkFilter returns the apk filter, or nil.
func (e *Entry) ApkFilter() []string { return e.get(KindApk) }

// SetApkFilter sets the apk filter.
func (e *Entry) SetApkFilter(list []string) { e.set(KindApk, list) }

// JarFilter returns the jar filter, or nil.
func (e *Entry) JarFilter() []string { return e.get(KindJar) }

// SetJarFilter sets the jar filter.
func (e *Entry) SetJarFilter(list []string) { e.set(KindJar, list) }

// AabFilter returns the aab filter, or nil.
func (e *Entry) AabFilter() []string { return e.get(KindAab) }

// SetAabFilter sets the aab filter.
func (e *Entry) SetAabFilter(list []string) { e.set(KindAab, list) }

// AarFilter returns the aar filter, or nil.
func (e *Entry) AarFilter() []string { return e.get(KindAar) }

// SetAarFilter sets the aar filter.
func (e *Entry) SetAarFilter(list []string) { e.set(KindAar, list) }

// WarFilter returns the war filter, or nil.
func (e *Entry) WarFilter() []string { return e.get(KindWar) }

// SetWarFilter sets the war filter.
func (e *Entry) SetWarFilter(list []string) { e.set(KindWar, list) }

// EarFilter returns the ear filter, or nil.
func (e *Entry) EarFilter() []string { return e.get(KindEar) }

// SetEarFilter sets the ear filter.
func (e *Entry) SetEarFilter(list []string) { e.set(KindEar, list) }

// JmodFilter returns the jmod filter, or nil.
func (e *Entry) JmodFilter() []string { return e.get(KindJmod) }

// SetJmodFilter sets the jmod filter.
func (e *Entry) SetJmodFilter(list []string) { e.set(KindJmod, list) }

// ZipFilter returns the zip filter, or nil.
func (e *Entry) ZipFilter() []string { return e.get(KindZip) }

// SetZipFilter sets the zip filter.
func (e *Entry) SetZipFilter(list []string) { e.set(KindZip, list) }

// SetKindFilter sets the filter of kind k.
func (e *Entry) SetKindFilter(k Kind, list []string) {
	if k < 0 || k >= numKinds {
		return
	}
	e.set(k, list)
}

// IsFiltered reports whether the general file filter is set.
func (e *Entry) IsFiltered() bool {
	return e.Filter() != nil
}

// Accepts evaluates the filter of kind k against name. An unset filter
// accepts every name.
func (e *Entry) Accepts(k Kind, name string) bool {
	if k < 0 || k >= numKinds {
		return false
	}
	return e.compiled[k].Accepts(name)
}

// AcceptsNested reports whether a nested entry called name passes the
// filter for its own archive kind and the general file filter.
func (e *Entry) AcceptsNested(name string) bool {
	if k := KindOf(name); k != KindFile && !e.Accepts(k, name) {
		return false
	}
	return e.Accepts(KindFile, name)
}

// String returns the path followed by the set filters, in the usual
// "path(filter;filter...)" notation.
func (e *Entry) String() string {
	var parts []string
	last := -1
	for k := range e.filters {
		if e.filters[k] != nil {
			last = k
		}
	}
	if last < 0 {
		return e.Path
	}
	for k := 0; k <= last; k++ {
		parts = append(parts, strings.Join(e.filters[k], ","))
	}
	return e.Path + "(" + strings.Join(parts, ";") + ")"
}
