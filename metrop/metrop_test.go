package main

import (
	"math"
	"testing"
)

func TestGetDensityFromString(tst *testing.T) {
	d, err := getDensityFromString("beta", []float64{2, 2})
	if err != nil {
		tst.Error("Error: ", err)
	}
	if math.Abs(d.density(0.5)-1.5) > 1e-12 {
		tst.Errorf("Incorrect beta density at 0.5: %v", d.density(0.5))
	}
	if math.Abs(d.cdf(0.5)-0.5) > 1e-12 {
		tst.Errorf("Incorrect beta CDF at 0.5: %v", d.cdf(0.5))
	}
	if math.Abs(d.quantile(0.5)-0.5) > 1e-12 {
		tst.Errorf("Incorrect beta median: %v", d.quantile(0.5))
	}

	d, err = getDensityFromString("normal", nil)
	if err != nil {
		tst.Error("Error: ", err)
	}
	if d.density(0) <= 0 {
		tst.Errorf("Incorrect default normal density at 0: %v", d.density(0))
	}
	if math.Abs(d.cdf(0)-0.5) > 1e-12 {
		tst.Errorf("Incorrect normal CDF at 0: %v", d.cdf(0))
	}
	if math.Abs(d.quantile(0.975)-1.959964) > 1e-5 {
		tst.Errorf("Incorrect normal 97.5%% quantile: %v", d.quantile(0.975))
	}

	d, err = getDensityFromString("gamma", []float64{2, 3, 1})
	if err != nil {
		tst.Error("Error: ", err)
	}
	q := d.quantile(0.9)
	if math.Abs(d.cdf(q)-0.9) > 1e-9 {
		tst.Errorf("Gamma quantile and CDF disagree: %v -> %v", q, d.cdf(q))
	}

	d, err = getDensityFromString("uniform", []float64{2, 4})
	if err != nil {
		tst.Error("Error: ", err)
	}
	if d.cdf(3) != 0.5 || d.quantile(0.25) != 2.5 {
		tst.Errorf("Incorrect uniform CDF or quantile: %v, %v", d.cdf(3), d.quantile(0.25))
	}

	if _, err := getDensityFromString("cauchy", nil); err == nil {
		tst.Error("Expected error for unknown density")
	}
	if _, err := getDensityFromString("normal", []float64{0, -1}); err == nil {
		tst.Error("Expected error for invalid density parameters")
	}
}

func TestResolveSeed(tst *testing.T) {
	if s := resolveSeed(42); s != 42 {
		tst.Errorf("Incorrect seed: %v", s)
	}
	for _, s := range []int64{-1, -5} {
		if r := resolveSeed(s); r < 0 {
			tst.Errorf("Seed %v not replaced: %v", s, r)
		}
	}
}

func TestGetProposalFromString(tst *testing.T) {
	if _, err := getProposalFromString("normal", 0.2, 1); err != nil {
		tst.Error("Error: ", err)
	}
	if _, err := getProposalFromString("uniform", 0.2, 1); err != nil {
		tst.Error("Error: ", err)
	}
	if _, err := getProposalFromString("cauchy", 0.2, 1); err == nil {
		tst.Error("Expected error for unknown proposal")
	}
	if _, err := getProposalFromString("normal", -1, 1); err == nil {
		tst.Error("Expected error for invalid sd")
	}
}

func TestChainSummary(tst *testing.T) {
	chain := make([]float64, 100)
	for i := range chain {
		chain[i] = float64(i + 1)
	}
	s, err := newChainSummary(chain)
	if err != nil {
		tst.Error("Error: ", err)
	}
	if s.N != 100 || s.Mean != 50.5 || s.Median != 50.5 || s.Min != 1 || s.Max != 100 {
		tst.Errorf("Incorrect summary: %+v", s)
	}
	if s.Q025 != 2.5 || s.Q975 != 97.5 {
		tst.Errorf("Incorrect quantiles: %+v", s)
	}
	if s.SD < 28 || s.SD > 29 {
		tst.Errorf("Incorrect standard deviation: %v", s.SD)
	}
}
