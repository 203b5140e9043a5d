package summary

import (
	"math"
	"sort"

	"portfoliosim/internal/model"
)

// SegmentYear aggregates one (year, segment) cell across all simulations.
type SegmentYear struct {
	Year    int
	Segment string

	MeanAccounts  float64
	MeanRevenue   float64
	MeanCost      float64
	MeanNetProfit float64

	ProfitP10 float64
	ProfitP50 float64
	ProfitP90 float64
}

// YearTotal aggregates the whole portfolio for one year across all
// simulations.
type YearTotal struct {
	Year int

	MeanAccounts  float64
	MeanRevenue   float64
	MeanCost      float64
	MeanNetProfit float64
}

// RunSummary is the ordering-independent aggregation of a result table,
// grouped by (year, segment) and by year.
type RunSummary struct {
	Sims     int
	Years    int
	Segments []string

	BySegmentYear []SegmentYear
	ByYear        []YearTotal
}

type cellKey struct {
	year    int
	segment string
}

type cell struct {
	accounts float64
	revenue  float64
	cost     float64
	profit   float64
	profits  []float64
	n        int
}

// Summarize reduces a result table to per-(year, segment) means and net
// profit percentiles, plus per-year portfolio totals. Segment order follows
// first appearance in the rows, which for projector output is declaration
// order.
func Summarize(rows []model.ResultRow) *RunSummary {
	s := &RunSummary{}
	if len(rows) == 0 {
		return s
	}

	cells := make(map[cellKey]*cell)
	seenSegment := make(map[string]bool)
	for _, row := range rows {
		if row.Sim > s.Sims {
			s.Sims = row.Sim
		}
		if row.Year > s.Years {
			s.Years = row.Year
		}
		if !seenSegment[row.Segment] {
			seenSegment[row.Segment] = true
			s.Segments = append(s.Segments, row.Segment)
		}
		k := cellKey{row.Year, row.Segment}
		c := cells[k]
		if c == nil {
			c = &cell{}
			cells[k] = c
		}
		c.accounts += row.AccountsSurvived
		c.revenue += row.Revenue
		c.cost += row.Cost
		c.profit += row.NetProfit
		c.profits = append(c.profits, row.NetProfit)
		c.n++
	}

	for year := 1; year <= s.Years; year++ {
		var total YearTotal
		total.Year = year
		for _, segment := range s.Segments {
			c := cells[cellKey{year, segment}]
			if c == nil || c.n == 0 {
				continue
			}
			n := float64(c.n)
			sy := SegmentYear{
				Year:          year,
				Segment:       segment,
				MeanAccounts:  c.accounts / n,
				MeanRevenue:   c.revenue / n,
				MeanCost:      c.cost / n,
				MeanNetProfit: c.profit / n,
				ProfitP10:     Quantile(c.profits, 0.10),
				ProfitP50:     Quantile(c.profits, 0.50),
				ProfitP90:     Quantile(c.profits, 0.90),
			}
			s.BySegmentYear = append(s.BySegmentYear, sy)
			total.MeanAccounts += sy.MeanAccounts
			total.MeanRevenue += sy.MeanRevenue
			total.MeanCost += sy.MeanCost
			total.MeanNetProfit += sy.MeanNetProfit
		}
		s.ByYear = append(s.ByYear, total)
	}
	return s
}

// Quantile returns the q-th quantile of values (0 <= q <= 1) using linear
// interpolation between order statistics. Returns 0 for an empty slice.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
