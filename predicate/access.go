package predicate

import (
	"github.com/coregx/keepmatch/classpool"
)

// AccessFlags requires every bit of Set and no bit of Unset.
//
// A bit present in both masks is not an error; the predicate simply never
// matches.
type AccessFlags struct {
	Set   classpool.AccessFlags
	Unset classpool.AccessFlags
}

// Test reports whether flags satisfy the masks.
func (p AccessFlags) Test(flags classpool.AccessFlags) bool {
	return flags&p.Set == p.Set && flags&p.Unset == 0
}

// IsTrivial reports whether the predicate accepts every flag set.
func (p AccessFlags) IsTrivial() bool {
	return p.Set == 0 && p.Unset == 0
}
