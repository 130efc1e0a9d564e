package chain

import "sync/atomic"

// Stats tracks traversal statistics for tuning and reports.
type Stats struct {
	// Specs counts compiled class specifications, testers included.
	Specs uint64

	// LiteralLookups counts traversals that fetched their candidate by name.
	LiteralLookups uint64

	// Scans counts traversals that tested every class.
	Scans uint64

	// PrefilteredScans counts traversals guarded by a literal prefilter.
	PrefilteredScans uint64

	// Candidates counts classes tested against a class predicate.
	Candidates uint64

	// Matches counts classes that satisfied a class predicate.
	Matches uint64

	// PrefilterRejects counts classes skipped by a prefilter.
	PrefilterRejects uint64
}

// counters is the live, concurrently readable form of Stats.
type counters struct {
	specs            atomic.Uint64
	literalLookups   atomic.Uint64
	scans            atomic.Uint64
	prefilteredScans atomic.Uint64
	candidates       atomic.Uint64
	matches          atomic.Uint64
	prefilterRejects atomic.Uint64
}

func (c *counters) traversal(s Strategy) {
	switch s {
	case UseLiteralLookup:
		c.literalLookups.Add(1)
	case UsePrefilteredScan:
		c.prefilteredScans.Add(1)
	default:
		c.scans.Add(1)
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Specs:            c.specs.Load(),
		LiteralLookups:   c.literalLookups.Load(),
		Scans:            c.scans.Load(),
		PrefilteredScans: c.prefilteredScans.Load(),
		Candidates:       c.candidates.Load(),
		Matches:          c.matches.Load(),
		PrefilterRejects: c.prefilterRejects.Load(),
	}
}

func (c *counters) reset() {
	c.specs.Store(0)
	c.literalLookups.Store(0)
	c.scans.Store(0)
	c.prefilteredScans.Store(0)
	c.candidates.Store(0)
	c.matches.Store(0)
	c.prefilterRejects.Store(0)
}
