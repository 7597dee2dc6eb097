package mcmc

import "math"

// Settings store the chain configuration for a sampler.
type Settings struct {
	// ChainLength is the total number of chain elements to
	// generate, including the initial value.
	ChainLength int
	// Initial is the starting value of the chain. It should lie
	// within [Min, Max]; the first element is emitted
	// unconditionally.
	Initial float64
	// Min and Max are the domain bounds. A proposal outside
	// [Min, Max] is always rejected.
	Min float64
	Max float64
	// BurnIn is the number of leading chain elements to discard
	// from the result.
	BurnIn int
	// Seed is the random generator seed, negative means time
	// based.
	Seed int64
}

// NewSettings creates settings with the default values.
func NewSettings() *Settings {
	return &Settings{
		ChainLength: 5000,
		Initial:     0.5,
		Min:         math.Inf(-1),
		Max:         math.Inf(+1),
		BurnIn:      0,
		Seed:        -1,
	}
}

// Validate checks the settings and returns a ConfigurationError for
// the first invalid field.
func (s *Settings) Validate() error {
	switch {
	case s.ChainLength < 1:
		return &ConfigurationError{"ChainLength", "must be >= 1"}
	case s.BurnIn < 0:
		return &ConfigurationError{"BurnIn", "must be >= 0"}
	case s.BurnIn > s.ChainLength:
		return &ConfigurationError{"BurnIn", "must be <= ChainLength"}
	case s.Min > s.Max:
		return &ConfigurationError{"Min", "must be <= Max"}
	}
	return nil
}
