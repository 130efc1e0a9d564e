// Package chain compiles class specifications into visitor pipelines over
// a class pool.
//
// A compiled pipeline walks the pool, tests each candidate class against
// the compiled predicate and, on a match, calls the caller's class visitor
// followed by member and attribute passes for the members the
// specification names.
//
// Each specification is executed with one of three strategies:
//   - UseLiteralLookup: the class name has no wildcards, so the candidate is
//     fetched from the pool by name
//   - UsePrefilteredScan: the pool is scanned, skipping names that lack the
//     longest literal of the class name pattern
//   - UseScan: every class of the pool is tested
//
// Strategies only change how candidates are found. They produce the same
// matches and the same callback order.
package chain

import "fmt"

// Config controls strategy selection and prefilter tuning.
//
// Example:
//
//	config := chain.DefaultConfig()
//	config.EnablePrefilter = false // plain scans for wildcard names
//	compiler, err := chain.NewCompiler(config)
type Config struct {
	// EnableLiteralLookup lets specifications with a wildcard-free class
	// name fetch their candidate by name.
	// Default: true
	EnableLiteralLookup bool

	// EnablePrefilter enables literal prefiltering of scanned names.
	// Default: true
	EnablePrefilter bool

	// MinPrefilterLiteralLen is the minimum length of the literal a
	// prefilter searches for. Shorter literals pass too many names.
	// Default: 3
	MinPrefilterLiteralLen int

	// TrackerWarmup is the number of names a prefilter sees before its pass
	// rate is judged.
	// Default: 128
	TrackerWarmup int

	// TrackerMaxPassRate retires a prefilter whose pass rate exceeds it.
	// Default: 0.9
	TrackerMaxPassRate float64
}

// DefaultConfig returns a configuration with both fast paths enabled.
func DefaultConfig() Config {
	return Config{
		EnableLiteralLookup:    true,
		EnablePrefilter:        true,
		MinPrefilterLiteralLen: 3,
		TrackerWarmup:          128,
		TrackerMaxPassRate:     0.9,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MinPrefilterLiteralLen: 1 to 64
//   - TrackerWarmup: 0 to 1,000,000
//   - TrackerMaxPassRate: greater than 0, at most 1
func (c Config) Validate() error {
	if !c.EnablePrefilter {
		return nil
	}
	if c.MinPrefilterLiteralLen < 1 || c.MinPrefilterLiteralLen > 64 {
		return &ConfigError{
			Field:   "MinPrefilterLiteralLen",
			Message: "must be between 1 and 64",
		}
	}
	if c.TrackerWarmup < 0 || c.TrackerWarmup > 1_000_000 {
		return &ConfigError{
			Field:   "TrackerWarmup",
			Message: "must be between 0 and 1,000,000",
		}
	}
	if c.TrackerMaxPassRate <= 0 || c.TrackerMaxPassRate > 1 {
		return &ConfigError{
			Field:   "TrackerMaxPassRate",
			Message: fmt.Sprintf("must be in (0, 1], got %g", c.TrackerMaxPassRate),
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "keepmatch: invalid config: " + e.Field + ": " + e.Message
}
