package survival

import "math"

// Survivorship returns the fraction of a cohort still active after `year`
// elapsed years, per the Weibull survival function S(t) = exp(-(t/scale)^shape).
//
// A non-positive scale returns 0 (total attrition) instead of dividing by
// zero; the sampler's structural clamp keeps that path unreachable under
// correct configuration. The shape's sign is not special-cased: the formula
// is evaluated as given and the result clamped to [0, 1].
func Survivorship(year int, shape, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	s := math.Exp(-math.Pow(float64(year)/scale, shape))
	switch {
	case math.IsNaN(s) || s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}
