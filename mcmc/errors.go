package mcmc

import "fmt"

// ConfigurationError reports invalid sampler settings. It is always
// detected before the chain starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
}

// EvaluationError reports a failure of a caller-supplied function
// during sampling. Iter is the number of samples generated before the
// failure.
type EvaluationError struct {
	Iter   int
	Theta  float64
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation at theta=%v (after %d samples): %s",
		e.Theta, e.Iter, e.Reason)
}
