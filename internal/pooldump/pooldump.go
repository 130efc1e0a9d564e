// Package pooldump reads class pools from YAML dump files.
//
// A dump file is a stream of YAML documents, each listing classes:
//
//	classes:
//	  - name: com/example/Main
//	    access: [public, final]
//	    super: java/lang/Object
//	    interfaces: [java/lang/Runnable]
//	    annotations: [Keep]
//	    fields:
//	      - name: count
//	        descriptor: I
//	        access: private
//	    methods:
//	      - name: run
//	        descriptor: ()V
//	        access: 0x0001
//	        attributes:
//	          - name: Code
//
// Access flags are either a number or a list of modifier names.
package pooldump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/coregx/keepmatch/classpool"
)

// MaxWorkers caps the number of files decoded concurrently.
const MaxWorkers = 64

// ErrNoFiles is returned when no dump file matches the patterns.
var ErrNoFiles = errors.New("pooldump: no dump files matched")

// FileError reports a dump file that could not be read or decoded.
type FileError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("pooldump: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Err
}

// Options controls Load.
type Options struct {
	// Workers is the number of files decoded concurrently.
	// Zero means GOMAXPROCS.
	Workers int

	// Accept selects which matched files are read. Nil accepts all.
	Accept func(path string) bool

	Logger zerolog.Logger
}

// Result is a loaded pool with the files it came from.
type Result struct {
	Pool  *classpool.Pool
	Files []string

	// Duplicates lists class names dropped because an earlier file or
	// document already defined them.
	Duplicates []string
}

// Load decodes every file under root matching one of patterns and returns
// the pool of their classes. Files are added in lexical path order and
// classes in document order, whatever order the workers finish in.
func Load(ctx context.Context, root string, patterns []string, opts Options) (*Result, error) {
	fsys := os.DirFS(root)
	files, err := Glob(fsys, patterns)
	if err != nil {
		return nil, err
	}
	if opts.Accept != nil {
		kept := files[:0]
		for _, f := range files {
			if opts.Accept(f) {
				kept = append(kept, f)
			} else {
				opts.Logger.Trace().Str("file", f).Msg("dump file filtered out")
			}
		}
		files = kept
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, strings.Join(patterns, ", "))
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	decoded := make([][]*classpool.Class, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			classes, err := decodeFile(fsys, path)
			if err != nil {
				return err
			}
			decoded[i] = classes
			opts.Logger.Trace().Str("file", path).Int("classes", len(classes)).Msg("decoded dump file")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Pool: classpool.NewPool(), Files: files}
	for _, classes := range decoded {
		for _, c := range classes {
			if !res.Pool.Add(c) {
				res.Duplicates = append(res.Duplicates, c.Name)
			}
		}
	}
	opts.Logger.Debug().
		Int("files", len(files)).
		Int("classes", res.Pool.Len()).
		Int("duplicates", len(res.Duplicates)).
		Msg("loaded class pool")
	return res, nil
}

// Glob returns the sorted, de-duplicated paths in fsys matching any of
// patterns.
func Glob(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("pooldump: invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pooldump: glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func decodeFile(fsys fs.FS, path string) ([]*classpool.Class, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	classes, err := Decode(f)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return classes, nil
}

// Decode reads every document of a dump stream.
func Decode(r io.Reader) ([]*classpool.Class, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var classes []*classpool.Class
	for n := 0; ; n++ {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return classes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", n, err)
		}
		for _, cd := range doc.Classes {
			c, err := cd.class()
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", n, err)
			}
			classes = append(classes, c)
		}
	}
}
