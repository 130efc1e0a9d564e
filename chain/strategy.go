package chain

import (
	"github.com/coregx/keepmatch/wildcard"
)

// Strategy is the way a compiled specification finds its candidates.
type Strategy int

const (
	// UseScan tests every class of the pool.
	UseScan Strategy = iota

	// UseLiteralLookup fetches the single candidate by exact name.
	// Selected when the class name pattern has no wildcards and no
	// backreferences.
	UseLiteralLookup

	// UsePrefilteredScan scans the pool but skips names that do not
	// contain the longest literal of the class name pattern. The
	// prefilter retires itself when it stops rejecting names.
	UsePrefilteredScan
)

// String returns a human-readable representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case UseScan:
		return "UseScan"
	case UseLiteralLookup:
		return "UseLiteralLookup"
	case UsePrefilteredScan:
		return "UsePrefilteredScan"
	default:
		return "Unknown"
	}
}

// SelectStrategy picks the strategy for a class name pattern. A nil pattern
// stands for a specification without a class name.
//
// Algorithm:
//  1. No class name: UseScan
//  2. Literal class name and literal lookup enabled: UseLiteralLookup
//  3. Prefilter enabled and a literal of at least MinPrefilterLiteralLen
//     bytes: UsePrefilteredScan
//  4. Otherwise: UseScan
func SelectStrategy(className *wildcard.Pattern, config Config) Strategy {
	if className == nil {
		return UseScan
	}
	if className.IsLiteral() && config.EnableLiteralLookup {
		return UseLiteralLookup
	}
	if config.EnablePrefilter {
		if lit, ok := className.RequiredLiterals().Longest(); ok && lit.Len() >= config.MinPrefilterLiteralLen {
			return UsePrefilteredScan
		}
	}
	return UseScan
}
