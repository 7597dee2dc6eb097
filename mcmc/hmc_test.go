package mcmc

import (
	"errors"
	"math"
	"testing"
)

// stdNormal is the unnormalized standard normal density.
func stdNormal(x float64) float64 {
	return math.Exp(-x * x / 2)
}

// stdNormalGrad is the derivative of -log stdNormal.
func stdNormalGrad(x float64) float64 {
	return x
}

func TestHMCChain(tst *testing.T) {
	s := newSettings(2000, 0, math.Inf(-1), math.Inf(+1), 200)
	h, err := NewHMC(stdNormal, stdNormalGrad, s)
	if err != nil {
		tst.Error("Error: ", err)
	}
	h.Quiet = true
	chain, err := h.Run()
	if err != nil {
		tst.Error("Error: ", err)
	}
	if len(chain) != 1800 {
		tst.Errorf("Incorrect chain length: %v", len(chain))
	}
	for i, v := range chain {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tst.Errorf("Chain element %v is not finite: %v", i, v)
		}
	}
	if h.Accepted() == 0 {
		tst.Error("No trajectory was accepted")
	}
}

func TestHMCZeroBurnInIdentity(tst *testing.T) {
	s := newSettings(10, 1.5, math.Inf(-1), math.Inf(+1), 0)
	h, err := NewHMC(stdNormal, stdNormalGrad, s)
	if err != nil {
		tst.Error("Error: ", err)
	}
	h.Quiet = true
	chain, err := h.Run()
	if err != nil {
		tst.Error("Error: ", err)
	}
	if chain[0] != 1.5 {
		tst.Errorf("Incorrect first chain element: %v", chain[0])
	}
}

func TestHMCDeterminism(tst *testing.T) {
	run := func() []float64 {
		s := newSettings(500, 0, math.Inf(-1), math.Inf(+1), 0)
		s.Seed = 11
		h, err := NewHMC(stdNormal, stdNormalGrad, s)
		if err != nil {
			tst.Error("Error: ", err)
		}
		h.Quiet = true
		chain, err := h.Run()
		if err != nil {
			tst.Error("Error: ", err)
		}
		return chain
	}
	c1 := run()
	c2 := run()
	for i := range c1 {
		if c1[i] != c2[i] {
			tst.Errorf("Chains differ at %v: %v vs %v", i, c1[i], c2[i])
		}
	}
}

func TestHMCNumericGradient(tst *testing.T) {
	// No explicit gradient, central differences instead.
	s := newSettings(200, 0.5, 0, 1, 0)
	h, err := NewHMC(uniform01, nil, s)
	if err != nil {
		tst.Error("Error: ", err)
	}
	h.Quiet = true
	h.Eps = 0.05
	chain, err := h.Run()
	if err != nil {
		tst.Error("Error: ", err)
	}
	if len(chain) != 200 {
		tst.Errorf("Incorrect chain length: %v", len(chain))
	}
	for i, v := range chain {
		if v < 0 || v > 1 {
			tst.Errorf("Chain element %v out of bounds: %v", i, v)
		}
	}
}

func TestHMCDomainGuard(tst *testing.T) {
	// The density is undefined outside [0, 1]; no leapfrog position
	// out of bounds may ever reach it.
	density := func(x float64) float64 {
		if x < 0 || x > 1 {
			return math.NaN()
		}
		return 1
	}
	h, err := NewHMC(density, nil, newSettings(500, 0.5, 0, 1, 0))
	if err != nil {
		tst.Error("Error: ", err)
	}
	h.Quiet = true
	h.Eps = 0.2
	chain, err := h.Run()
	if err != nil {
		tst.Error("Error: ", err)
	}
	if len(chain) != 500 {
		tst.Errorf("Incorrect chain length: %v", len(chain))
	}
	for i, v := range chain {
		if v < 0 || v > 1 {
			tst.Errorf("Chain element %v out of bounds: %v", i, v)
		}
	}
}

func TestHMCBadConfiguration(tst *testing.T) {
	if _, err := NewHMC(nil, nil, nil); err == nil {
		tst.Error("Expected error for nil density")
	}
	h, err := NewHMC(stdNormal, stdNormalGrad, newSettings(10, 0, -1, 1, 0))
	if err != nil {
		tst.Error("Error: ", err)
	}
	h.Eps = 0
	if _, err := h.Run(); err == nil {
		tst.Error("Expected error for zero step size")
	}
	h.Eps = 0.1
	h.Steps = 0
	if _, err := h.Run(); err == nil {
		tst.Error("Expected error for zero leapfrog steps")
	}
}

func TestHMCBadDensity(tst *testing.T) {
	density := func(x float64) float64 { return -1 }
	h, err := NewHMC(density, nil, newSettings(10, 0, -1, 1, 0))
	if err != nil {
		tst.Error("Error: ", err)
	}
	h.Quiet = true
	_, err = h.Run()
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		tst.Errorf("Expected evaluation error, got %v", err)
	}
}
