package mcmc

import (
	"math"
)

// Metropolis is a random-walk Metropolis sampler for a scalar
// parameter.
type Metropolis struct {
	baseSampler
	density  DensityFunc
	proposal ProposalFunc
}

// NewMetropolis creates a new Metropolis sampler. The settings are
// validated eagerly; nil settings mean defaults.
func NewMetropolis(density DensityFunc, proposal ProposalFunc, settings *Settings) (*Metropolis, error) {
	if density == nil {
		return nil, &ConfigurationError{"density", "must not be nil"}
	}
	if proposal == nil {
		return nil, &ConfigurationError{"proposal", "must not be nil"}
	}
	if settings == nil {
		settings = NewSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Metropolis{
		baseSampler: newBaseSampler(settings),
		density:     density,
		proposal:    proposal,
	}, nil
}

// eval evaluates the density, turning a contract violation into an
// EvaluationError.
func (m *Metropolis) eval(theta float64, generated int) (float64, error) {
	d := m.density(theta)
	switch {
	case math.IsNaN(d):
		return 0, &EvaluationError{generated, theta, "density returned NaN"}
	case d < 0:
		return 0, &EvaluationError{generated, theta, "density returned a negative value"}
	}
	return d, nil
}

// Run generates the chain and returns it with the first BurnIn
// elements discarded.
func (m *Metropolis) Run() ([]float64, error) {
	s := m.settings

	chain, cur, resumed, err := m.resume()
	if err != nil {
		return nil, err
	}
	if !resumed {
		cur = s.Initial
		chain = make([]float64, 0, s.ChainLength)
		chain = append(chain, cur)
	}

	m.printHeader()
	periodAccepted := 0
	for len(chain) < s.ChainLength {
		i := len(chain)
		m.reportAcceptance(i, &periodAccepted)

		pro := cur + m.proposal(m.rng)

		var p float64
		if pro < s.Min || pro > s.Max {
			// Out of the domain, never evaluate the density
			// there.
			p = 0
		} else {
			dcur, err := m.eval(cur, i)
			if err != nil {
				return nil, err
			}
			dpro, err := m.eval(pro, i)
			if err != nil {
				return nil, err
			}
			if dcur == 0 {
				// The ratio is undefined at a zero-density
				// point; accept unconditionally so the
				// chain can leave the region.
				p = 1
			} else {
				p = math.Min(1, dpro/dcur)
			}
		}

		u := m.rng.Float64()
		// u can be exactly zero, p > 0 keeps zero-probability
		// moves rejected.
		if p > 0 && u <= p {
			cur = pro
			m.accepted++
			periodAccepted++
		}
		chain = append(chain, cur)
		m.printLine(i, cur)

		m.saveCheckpoint(cur, chain, false)
		if err := m.interrupted(len(chain)); err != nil {
			return nil, err
		}
	}

	m.saveCheckpoint(cur, chain, true)
	if !m.Quiet {
		log.Noticef("Finished sampling, %d/%d proposals accepted",
			m.accepted, s.ChainLength-1)
	}

	return chain[s.BurnIn:], nil
}
