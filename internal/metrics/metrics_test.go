package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"portfoliosim/internal/summary"
)

func TestRecordRun(t *testing.T) {
	c := NewCollector()

	s := &summary.RunSummary{
		Sims:     10,
		Years:    2,
		Segments: []string{"High", "Low"},
		BySegmentYear: []summary.SegmentYear{
			{Year: 1, Segment: "High", MeanNetProfit: 100, MeanAccounts: 3000},
			{Year: 2, Segment: "High", MeanNetProfit: 90, MeanAccounts: 2500},
			{Year: 2, Segment: "Low", MeanNetProfit: 40, MeanAccounts: 1200},
		},
	}
	c.RecordRun(250*time.Millisecond, 40, s)

	if got := testutil.ToFloat64(c.runsTotal); got != 1 {
		t.Errorf("runs total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.lastRunRows); got != 40 {
		t.Errorf("last run rows = %v, want 40", got)
	}
	if got := testutil.ToFloat64(c.lastRunDuration); got != 0.25 {
		t.Errorf("last run duration = %v, want 0.25", got)
	}

	// Only final-year cells are published per segment.
	if got := testutil.ToFloat64(c.finalYearNetProfit.WithLabelValues("High")); got != 90 {
		t.Errorf("High final-year net profit = %v, want 90", got)
	}
	if got := testutil.ToFloat64(c.finalYearAccounts.WithLabelValues("Low")); got != 1200 {
		t.Errorf("Low final-year accounts = %v, want 1200", got)
	}
}
