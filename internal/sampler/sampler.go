package sampler

import (
	"math"
	"math/rand"

	"portfoliosim/internal/model"
)

// Structural clamp ranges for the survival curve. These apply regardless of
// any configured bounds: a zero or negative shape or scale would degenerate
// the survivorship formula.
const (
	ShapeMin = 0.01
	ShapeMax = 1000
	ScaleMin = 0.01
	ScaleMax = 10000
)

// Clamp constrains v to [lo, hi], i.e. max(lo, min(v, hi)). The lower bound
// is applied last, so it wins when lo > hi. A NaN draw resolves to a bound
// rather than propagating.
func Clamp(v, lo, hi float64) float64 {
	if v > hi || math.IsNaN(v) {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// draw pulls one value from N(d.Mean, d.SD).
func draw(d model.Distribution, rng *rand.Rand) float64 {
	return rng.NormFloat64()*d.SD + d.Mean
}

// sampleSurvival draws a segment's survival shape and scale, clamped to the
// structural ranges. Configured Min/Max on these two tuples are ignored.
func sampleSurvival(seg model.SegmentConfig, rng *rand.Rand) (shape, scale float64) {
	shape = Clamp(draw(seg.SurvivalShape, rng), ShapeMin, ShapeMax)
	scale = Clamp(draw(seg.SurvivalScale, rng), ScaleMin, ScaleMax)
	return shape, scale
}

// sampleRates draws a segment's four financial rates, each clamped to its
// configured [Min, Max].
func sampleRates(seg model.SegmentConfig, rng *rand.Rand) (interest, fee, interchange, servicing float64) {
	interest = Clamp(draw(seg.InterestRate, rng), seg.InterestRate.Min, seg.InterestRate.Max)
	fee = Clamp(draw(seg.FeeRate, rng), seg.FeeRate.Min, seg.FeeRate.Max)
	interchange = Clamp(draw(seg.InterchangeRate, rng), seg.InterchangeRate.Min, seg.InterchangeRate.Max)
	servicing = Clamp(draw(seg.ServicingCost, rng), seg.ServicingCost.Min, seg.ServicingCost.Max)
	return interest, fee, interchange, servicing
}

// SampleAll draws one full SegmentParameters per segment for one simulation.
//
// The draw order is the reproducibility contract: survival shape and scale
// for every segment in declaration order first, then the four financial
// rates for every segment in declaration order. Callers that need bit-exact
// replays must not reorder draws.
func SampleAll(segments []model.SegmentConfig, rng *rand.Rand) []model.SegmentParameters {
	params := make([]model.SegmentParameters, len(segments))
	for i, seg := range segments {
		params[i].SurvivalShape, params[i].SurvivalScale = sampleSurvival(seg, rng)
	}
	for i, seg := range segments {
		params[i].InterestRate, params[i].FeeRate, params[i].InterchangeRate, params[i].ServicingCost = sampleRates(seg, rng)
	}
	return params
}
