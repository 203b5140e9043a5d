package report

import (
	"bytes"
	"strings"
	"testing"

	"portfoliosim/internal/model"
	"portfoliosim/internal/summary"
)

func sampleRows() []model.ResultRow {
	return []model.ResultRow{
		{Sim: 1, Year: 1, Segment: "High", AccountsSurvived: 2882.4, Revenue: 720.6, Cost: 115.3, NetProfit: 605.3},
		{Sim: 1, Year: 1, Segment: "Low", AccountsSurvived: 1920.1, Revenue: 672.0, Cost: 134.4, NetProfit: 537.6},
		{Sim: 2, Year: 1, Segment: "High", AccountsSurvived: 2901.7, Revenue: 725.4, Cost: 116.1, NetProfit: 609.3},
		{Sim: 2, Year: 1, Segment: "Low", AccountsSurvived: 1899.8, Revenue: 664.9, Cost: 133.0, NetProfit: 531.9},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d lines", len(lines))
	}
	if lines[0] != "sim,year,segment,accounts_survived,revenue,cost,net_profit" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,1,High,2882.4,") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestWriteCSV_EmptyRowsStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected exactly the header line, got %q", buf.String())
	}
}

func TestFormatRunReport(t *testing.T) {
	s := summary.Summarize(sampleRows())
	out := FormatRunReport(s)

	for _, want := range []string{"2 simulations", "Year 1", "High", "Low", "total", "2,892"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
