package mcmc

import (
	"math"
)

// GradFunc is the derivative of the potential U(theta) = -log
// density(theta), supplied by the caller when it is known in closed
// form.
type GradFunc func(theta float64) float64

// HMC is a Hamiltonian Monte Carlo sampler for a scalar parameter.
// It shares the chain, bounds and burn-in semantics with Metropolis,
// but proposes states by simulating Hamiltonian dynamics with a
// leapfrog integrator.
type HMC struct {
	baseSampler
	density DensityFunc
	grad    GradFunc
	// Eps is the leapfrog step size.
	Eps float64
	// Steps is the number of leapfrog steps per trajectory.
	Steps int
	// dH is the step of numerical differentiation, used when no
	// gradient is supplied.
	dH float64
}

// NewHMC creates a new HMC sampler. If grad is nil, the gradient of
// the potential is approximated by central differences.
func NewHMC(density DensityFunc, grad GradFunc, settings *Settings) (*HMC, error) {
	if density == nil {
		return nil, &ConfigurationError{"density", "must not be nil"}
	}
	if settings == nil {
		settings = NewSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &HMC{
		baseSampler: newBaseSampler(settings),
		density:     density,
		grad:        grad,
		Eps:         1e-1,
		Steps:       10,
		dH:          1e-6,
	}, nil
}

// potential returns -log density, +Inf at zero-density points.
func (h *HMC) potential(theta float64, generated int) (float64, error) {
	d := h.density(theta)
	switch {
	case math.IsNaN(d):
		return 0, &EvaluationError{generated, theta, "density returned NaN"}
	case d < 0:
		return 0, &EvaluationError{generated, theta, "density returned a negative value"}
	case d == 0:
		return math.Inf(+1), nil
	}
	return -math.Log(d), nil
}

// gradient returns dU/dtheta. The numeric difference is clamped to
// [Min, Max] so the density is never evaluated out of its domain.
func (h *HMC) gradient(theta float64, generated int) (float64, error) {
	if h.grad != nil {
		g := h.grad(theta)
		if math.IsNaN(g) {
			return 0, &EvaluationError{generated, theta, "gradient returned NaN"}
		}
		return g, nil
	}
	lo := math.Max(theta-h.dH, h.settings.Min)
	hi := math.Min(theta+h.dH, h.settings.Max)
	if hi <= lo {
		return 0, nil
	}
	u1, err := h.potential(lo, generated)
	if err != nil {
		return 0, err
	}
	u2, err := h.potential(hi, generated)
	if err != nil {
		return 0, err
	}
	return (u2 - u1) / (hi - lo), nil
}

// Run generates the chain and returns it with the first BurnIn
// elements discarded.
func (h *HMC) Run() ([]float64, error) {
	if h.Eps <= 0 {
		return nil, &ConfigurationError{"Eps", "must be > 0"}
	}
	if h.Steps < 1 {
		return nil, &ConfigurationError{"Steps", "must be >= 1"}
	}
	s := h.settings

	chain, cur, resumed, err := h.resume()
	if err != nil {
		return nil, err
	}
	if !resumed {
		cur = s.Initial
		chain = make([]float64, 0, s.ChainLength)
		chain = append(chain, cur)
	}

	h.printHeader()
	periodAccepted := 0
	for len(chain) < s.ChainLength {
		i := len(chain)
		h.reportAcceptance(i, &periodAccepted)

		q := cur
		p := h.rng.NormFloat64()
		curK := p * p / 2

		// Leapfrog trajectory: half step for the momentum,
		// alternating full steps, half step at the end. A
		// position out of [Min, Max] abandons the trajectory
		// before the density is evaluated there.
		inBounds := true
		g, err := h.gradient(q, i)
		if err != nil {
			return nil, err
		}
		p -= h.Eps * g / 2
		for l := 0; l < h.Steps-1; l++ {
			q += h.Eps * p
			if q < s.Min || q > s.Max {
				inBounds = false
				break
			}
			if g, err = h.gradient(q, i); err != nil {
				return nil, err
			}
			p -= h.Eps * g
		}
		if inBounds {
			q += h.Eps * p
			if q < s.Min || q > s.Max {
				inBounds = false
			}
		}

		var a float64
		if inBounds {
			if g, err = h.gradient(q, i); err != nil {
				return nil, err
			}
			p -= h.Eps * g / 2

			curU, err := h.potential(cur, i)
			if err != nil {
				return nil, err
			}
			proU, err := h.potential(q, i)
			if err != nil {
				return nil, err
			}
			proK := p * p / 2
			a = math.Exp(curU - proU + curK - proK)
		}

		u := h.rng.Float64()
		if inBounds && u < a {
			cur = q
			h.accepted++
			periodAccepted++
		}
		chain = append(chain, cur)
		h.printLine(i, cur)

		h.saveCheckpoint(cur, chain, false)
		if err := h.interrupted(len(chain)); err != nil {
			return nil, err
		}
	}

	h.saveCheckpoint(cur, chain, true)
	if !h.Quiet {
		log.Noticef("Finished sampling, %d/%d trajectories accepted",
			h.accepted, s.ChainLength-1)
	}

	return chain[s.BurnIn:], nil
}
