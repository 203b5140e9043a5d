package summary

import (
	"math"
	"testing"

	"portfoliosim/internal/model"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Sims != 0 || s.Years != 0 || len(s.Segments) != 0 || len(s.BySegmentYear) != 0 {
		t.Errorf("expected zero-value summary for empty input, got %+v", s)
	}
}

func TestSummarize_MeansAndGrouping(t *testing.T) {
	rows := []model.ResultRow{
		{Sim: 1, Year: 1, Segment: "High", AccountsSurvived: 100, Revenue: 30, Cost: 10, NetProfit: 20},
		{Sim: 1, Year: 1, Segment: "Low", AccountsSurvived: 50, Revenue: 12, Cost: 4, NetProfit: 8},
		{Sim: 2, Year: 1, Segment: "High", AccountsSurvived: 200, Revenue: 50, Cost: 20, NetProfit: 30},
		{Sim: 2, Year: 1, Segment: "Low", AccountsSurvived: 70, Revenue: 20, Cost: 8, NetProfit: 12},
	}
	s := Summarize(rows)

	if s.Sims != 2 || s.Years != 1 {
		t.Fatalf("expected 2 sims x 1 year, got %d x %d", s.Sims, s.Years)
	}
	if len(s.Segments) != 2 || s.Segments[0] != "High" || s.Segments[1] != "Low" {
		t.Fatalf("segment order should follow first appearance, got %v", s.Segments)
	}
	if len(s.BySegmentYear) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(s.BySegmentYear))
	}

	high := s.BySegmentYear[0]
	if high.MeanAccounts != 150 || high.MeanRevenue != 40 || high.MeanCost != 15 || high.MeanNetProfit != 25 {
		t.Errorf("unexpected High means: %+v", high)
	}
	if high.ProfitP50 != 25 {
		t.Errorf("High profit p50 = %v, want 25", high.ProfitP50)
	}

	if len(s.ByYear) != 1 {
		t.Fatalf("expected 1 year total, got %d", len(s.ByYear))
	}
	total := s.ByYear[0]
	if total.MeanAccounts != 150+60 || total.MeanNetProfit != 25+10 {
		t.Errorf("unexpected year totals: %+v", total)
	}
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{3}, 0.9, 3},
		{"median odd", []float64{5, 1, 3}, 0.5, 3},
		{"median interpolated", []float64{0, 10}, 0.5, 5},
		{"min", []float64{4, 2, 9}, 0, 2},
		{"max", []float64{4, 2, 9}, 1, 9},
		{"p25 interpolated", []float64{0, 1, 2, 3}, 0.25, 0.75},
	}
	for _, tt := range tests {
		if got := Quantile(tt.values, tt.q); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: Quantile(%v, %v) = %v, want %v", tt.name, tt.values, tt.q, got, tt.want)
		}
	}
}

func TestQuantile_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input slice mutated: %v", values)
	}
}
