package main

import (
	"github.com/montanaflynn/stats"
)

// RunSummary stores metrop run summary information.
type RunSummary struct {
	// Version stores metrop version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seed is the seed used for random number generation initialization.
	Seed int64 `json:"seed"`
	// Method is the sampling method used.
	Method string `json:"method"`
	// ChainLength is the requested chain length, including burn-in.
	ChainLength int `json:"chain"`
	// BurnIn is the number of discarded leading samples.
	BurnIn int `json:"burnin"`
	// AcceptanceRate is the fraction of accepted proposals.
	AcceptanceRate float64 `json:"acceptanceRate"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
	// Chain is the summary of the sampled chain.
	Chain *ChainSummary `json:"chainSummary,omitempty"`
}

// ChainSummary stores statistics of the sampled chain after burn-in.
type ChainSummary struct {
	// N is the number of samples after burn-in.
	N int `json:"n"`
	// Mean is the sample mean.
	Mean float64 `json:"mean"`
	// Median is the sample median.
	Median float64 `json:"median"`
	// SD is the sample standard deviation.
	SD float64 `json:"sd"`
	// Min and Max are the extreme samples.
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	// Q025 and Q975 bound the equal-tailed 95% interval.
	Q025 float64 `json:"q2.5"`
	Q975 float64 `json:"q97.5"`
	// Q025Target and Q975Target bound the theoretical 95% interval
	// of the target distribution.
	Q025Target float64 `json:"q2.5Target"`
	Q975Target float64 `json:"q97.5Target"`
	// IntervalMass is the target probability mass inside the
	// sampled interval.
	IntervalMass float64 `json:"intervalMass"`
}

// newChainSummary computes statistics of a chain.
func newChainSummary(chain []float64) (*ChainSummary, error) {
	s := &ChainSummary{N: len(chain)}
	var err error
	if s.Mean, err = stats.Mean(chain); err != nil {
		return nil, err
	}
	if s.Median, err = stats.Median(chain); err != nil {
		return nil, err
	}
	if s.SD, err = stats.StandardDeviation(chain); err != nil {
		return nil, err
	}
	if s.Min, err = stats.Min(chain); err != nil {
		return nil, err
	}
	if s.Max, err = stats.Max(chain); err != nil {
		return nil, err
	}
	if s.Q025, err = stats.Percentile(chain, 2.5); err != nil {
		return nil, err
	}
	if s.Q975, err = stats.Percentile(chain, 97.5); err != nil {
		return nil, err
	}
	return s, nil
}
