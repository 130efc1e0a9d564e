package prefilter

// Tracker wraps a Prefilter with effectiveness tracking.
//
// The tracker monitors how many names the prefilter lets through. When
// almost every name passes, the substring search is pure overhead, so the
// prefilter is retired and MayMatch answers true without searching. Retiring
// only makes the caller run the full matcher more often; results never
// change.
//
// Algorithm:
//  1. Count checks and passes
//  2. After the warmup period, every CheckInterval checks, compute the pass rate
//  3. If the rate exceeds MaxPassRate, retire the prefilter
//  4. Once retired, stay retired until Reset
//
// Example usage:
//
//	tracker := prefilter.NewTracker(pf)
//	for _, c := range pool.Classes() {
//	    if !tracker.MayMatch(c.Name) {
//	        continue
//	    }
//	    if pattern.Matches(c.Name, m) {
//	        tracker.ConfirmMatch()
//	    }
//	}
type Tracker struct {
	inner Prefilter

	checks   uint64
	passes   uint64
	confirms uint64

	checkInterval  uint64
	maxPassRate    float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in checks).
	// Default: 64
	CheckInterval uint64

	// MaxPassRate is the highest acceptable ratio of passes to checks.
	// Above it the prefilter is retired.
	// Default: 0.9
	MaxPassRate float64

	// WarmupPeriod is the minimum number of checks before the first evaluation.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MaxPassRate:   0.9,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker with the default configuration.
//
// Returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
//
// Returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	if config.CheckInterval == 0 {
		config.CheckInterval = 1
	}
	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		maxPassRate:   config.MaxPassRate,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// MayMatch implements Prefilter. A retired tracker always returns true.
func (t *Tracker) MayMatch(name string) bool {
	if !t.active {
		return true
	}
	t.checks++
	ok := t.inner.MayMatch(name)
	if ok {
		t.passes++
	}
	t.checkEffectiveness()
	return ok
}

// LiteralCount implements Prefilter.
func (t *Tracker) LiteralCount() int {
	return t.inner.LiteralCount()
}

// ConfirmMatch records that a name which passed also matched.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still consulted.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the current tracking statistics.
func (t *Tracker) Stats() (checks, passes, confirms uint64, active bool) {
	return t.checks, t.passes, t.confirms, t.active
}

// Reset clears statistics and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.checks = 0
	t.passes = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

// Inner returns the wrapped prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

func (t *Tracker) checkEffectiveness() {
	if t.checks < t.warmupPeriod {
		return
	}
	if t.checks-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.checks

	rate := float64(t.passes) / float64(t.checks)
	if rate > t.maxPassRate {
		t.active = false
	}
}
