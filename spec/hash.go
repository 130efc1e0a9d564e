package spec

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

type hasher struct {
	h   hash.Hash64
	buf [8]byte
}

func newHasher() *hasher {
	return &hasher{h: fnv.New64a()}
}

func (h *hasher) uint(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.h.Write(h.buf[:])
}

func (h *hasher) bool(v bool) {
	if v {
		h.uint(1)
	} else {
		h.uint(0)
	}
}

// str writes the length first so that ("ab", "c") and ("a", "bc") differ.
func (h *hasher) str(s string) {
	h.uint(uint64(len(s)))
	_, _ = h.h.Write([]byte(s))
}

// strs distinguishes a nil list from a list of empty strings.
func (h *hasher) strs(list []string) {
	if list == nil {
		h.uint(^uint64(0))
		return
	}
	h.uint(uint64(len(list)))
	for _, s := range list {
		h.str(s)
	}
}

func (h *hasher) sum() uint64 {
	return h.h.Sum64()
}

func normalize(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	return list
}

func equalStrings(a, b []string) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalMembers(a, b []*MemberSpecification) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
