package mcmc

import (
	"math/rand"
)

// ProposalFunc draws an increment for the next proposal from the
// sampler's generator. The increment distribution must be symmetric
// around zero, otherwise the acceptance ratio is not a valid
// Metropolis ratio; this is a precondition, it is not enforced.
type ProposalFunc func(rng *rand.Rand) float64

// NormalProposal returns a proposal drawing increments from a normal
// distribution with mean zero and standard deviation sd.
func NormalProposal(sd float64) (ProposalFunc, error) {
	if sd <= 0 {
		return nil, &ConfigurationError{"sd", "must be > 0"}
	}
	return func(rng *rand.Rand) float64 {
		return rng.NormFloat64() * sd
	}, nil
}

// UniformProposal returns a proposal drawing increments uniformly
// from (-width/2, width/2).
func UniformProposal(width float64) (ProposalFunc, error) {
	if width <= 0 {
		return nil, &ConfigurationError{"width", "must be > 0"}
	}
	return func(rng *rand.Rand) float64 {
		return rng.Float64()*width - width/2
	}, nil
}
