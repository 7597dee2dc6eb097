// Package optimize finds the mode of a target density, which is a
// good starting point for a chain.
package optimize

import (
	"fmt"
	"math"

	lbfgsb "github.com/idavydov/go-lbfgsb"
	"github.com/op/go-logging"

	"bitbucket.org/Davydov/metrop/mcmc"
)

// log is the global logging variable.
var log = logging.MustGetLogger("optimize")

// modeObjective is the negative log density with a central-difference
// gradient, as expected by the L-BFGS-B bindings.
type modeObjective struct {
	density mcmc.DensityFunc
	dH      float64
	calls   int
}

// EvaluateFunction returns -log density, +Inf outside the support.
func (m *modeObjective) EvaluateFunction(x []float64) float64 {
	m.calls++
	d := m.density(x[0])
	if d <= 0 || math.IsNaN(d) {
		return math.Inf(+1)
	}
	return -math.Log(d)
}

// EvaluateGradient computes the gradient using the method of finite
// differences.
func (m *modeObjective) EvaluateGradient(x []float64) []float64 {
	l1 := m.EvaluateFunction([]float64{x[0] - m.dH})
	l2 := m.EvaluateFunction([]float64{x[0] + m.dH})
	return []float64{(l2 - l1) / 2 / m.dH}
}

// FindMode maximizes the density on [min, max] starting from x0 using
// bounded L-BFGS-B.
func FindMode(density mcmc.DensityFunc, min, max, x0 float64) (float64, error) {
	obj := &modeObjective{
		density: density,
		dH:      1e-6,
	}

	opt := new(lbfgsb.Lbfgsb)
	opt.SetApproximationSize(10)
	opt.SetFTolerance(1e-9)
	opt.SetGTolerance(1e-9)
	opt.SetBounds([][2]float64{{min + 1e-5, max - 1e-5}})

	minimum, exitStatus := opt.Minimize(obj, []float64{x0})

	log.Debugf("Exit status: %v", exitStatus)
	log.Infof("Density function calls: %v", obj.calls)

	if len(minimum.X) != 1 || math.IsNaN(minimum.X[0]) || math.IsInf(minimum.X[0], 0) {
		return x0, fmt.Errorf("mode search failed: %v", exitStatus)
	}
	return minimum.X[0], nil
}
