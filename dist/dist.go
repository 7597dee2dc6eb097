// Package dist provides target densities and distribution functions
// for the samplers.
package dist

import (
	"math"

	"github.com/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"

	"bitbucket.org/Davydov/metrop/mcmc"
)

// Normal returns the density of the normal distribution with mean mu
// and standard deviation sd.
func Normal(mu, sd float64) (mcmc.DensityFunc, error) {
	if sd <= 0 {
		return nil, &mcmc.ConfigurationError{Field: "sd", Reason: "must be > 0"}
	}
	d := distuv.Normal{Mu: mu, Sigma: sd}
	return func(x float64) float64 {
		return d.Prob(x)
	}, nil
}

// Gamma returns the density of the gamma distribution with the given
// shape and scale, shifted by loc.
func Gamma(shape, scale, loc float64) (mcmc.DensityFunc, error) {
	if shape <= 0 || scale <= 0 {
		return nil, &mcmc.ConfigurationError{Field: "shape/scale", Reason: "must be > 0"}
	}
	d := distuv.Gamma{Alpha: shape, Beta: 1 / scale}
	return func(x float64) float64 {
		return d.Prob(x - loc)
	}, nil
}

// Beta returns the density of the beta distribution with parameters p
// and q; it is zero outside [0, 1].
func Beta(p, q float64) (mcmc.DensityFunc, error) {
	if p <= 0 || q <= 0 {
		return nil, &mcmc.ConfigurationError{Field: "p/q", Reason: "must be > 0"}
	}
	d := distuv.Beta{Alpha: p, Beta: q}
	return func(x float64) float64 {
		if x < 0 || x > 1 {
			return 0
		}
		return d.Prob(x)
	}, nil
}

// Uniform returns the density of the uniform distribution on
// [min, max].
func Uniform(min, max float64) (mcmc.DensityFunc, error) {
	if max <= min {
		return nil, &mcmc.ConfigurationError{Field: "min", Reason: "must be < max"}
	}
	d := distuv.Uniform{Min: min, Max: max}
	return func(x float64) float64 {
		return d.Prob(x)
	}, nil
}

// CDFGamma returns the distribution function of the gamma
// distribution, that is the incomplete gamma ratio.
func CDFGamma(x, shape, scale float64) float64 {
	if x <= 0 {
		return 0
	}
	return mathext.GammaInc(shape, x/scale)
}

// CDFBeta returns the distribution function of the standard form of
// the beta distribution, that is the incomplete beta ratio I_x(p,q).
func CDFBeta(x, p, q float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return mathext.RegIncBeta(p, q, x)
}

// CDFNormal returns the distribution function of the normal
// distribution with mean mu and standard deviation sd.
func CDFNormal(x, mu, sd float64) float64 {
	return 0.5 * math.Erfc(-(x-mu)/(sd*math.Sqrt2))
}

// QuantileBeta calculates the quantile of the beta distribution.
func QuantileBeta(prob, p, q float64) float64 {
	return mathext.InvRegIncBeta(p, q, prob)
}

// QuantileGamma calculates the quantile of the gamma distribution by
// bisection on the incomplete gamma ratio.
func QuantileGamma(prob, shape, scale float64) float64 {
	if prob <= 0 {
		return 0
	}
	if prob >= 1 {
		return math.Inf(+1)
	}
	lo, hi := 0.0, shape*scale+1
	for CDFGamma(hi, shape, scale) < prob {
		hi *= 2
	}
	for hi-lo > 1e-12*(1+hi) {
		mid := (lo + hi) / 2
		if CDFGamma(mid, shape, scale) < prob {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// QuantileNormal returns the quantile of the standard normal
// distribution.
func QuantileNormal(prob float64) float64 {
	return mathext.NormalQuantile(prob)
}
