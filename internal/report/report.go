package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"portfoliosim/internal/model"
	"portfoliosim/internal/summary"
)

// FormatRunReport renders a run summary as a plain-text report: one block
// per year with per-segment means and net profit percentiles, and a
// portfolio total line.
func FormatRunReport(s *summary.RunSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Portfolio projection | %s simulations x %d years x %d segments\n",
		humanize.Comma(int64(s.Sims)), s.Years, len(s.Segments)))

	bySegmentYear := make(map[int][]summary.SegmentYear, s.Years)
	for _, sy := range s.BySegmentYear {
		bySegmentYear[sy.Year] = append(bySegmentYear[sy.Year], sy)
	}

	for _, total := range s.ByYear {
		b.WriteString(fmt.Sprintf("\nYear %d\n", total.Year))
		b.WriteString(fmt.Sprintf("  %-8s %14s %14s %14s %14s %14s %14s\n",
			"segment", "accounts", "revenue", "cost", "net profit", "profit p10", "profit p90"))
		for _, sy := range bySegmentYear[total.Year] {
			b.WriteString(fmt.Sprintf("  %-8s %14s %14s %14s %14s %14s %14s\n",
				sy.Segment,
				humanize.CommafWithDigits(sy.MeanAccounts, 1),
				humanize.CommafWithDigits(sy.MeanRevenue, 2),
				humanize.CommafWithDigits(sy.MeanCost, 2),
				humanize.CommafWithDigits(sy.MeanNetProfit, 2),
				humanize.CommafWithDigits(sy.ProfitP10, 2),
				humanize.CommafWithDigits(sy.ProfitP90, 2)))
		}
		b.WriteString(fmt.Sprintf("  %-8s %14s %14s %14s %14s\n",
			"total",
			humanize.CommafWithDigits(total.MeanAccounts, 1),
			humanize.CommafWithDigits(total.MeanRevenue, 2),
			humanize.CommafWithDigits(total.MeanCost, 2),
			humanize.CommafWithDigits(total.MeanNetProfit, 2)))
	}

	return b.String()
}

// WriteCSV emits the full result table with the columns
// {sim, year, segment, accounts_survived, revenue, cost, net_profit}.
func WriteCSV(w io.Writer, rows []model.ResultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sim", "year", "segment", "accounts_survived", "revenue", "cost", "net_profit"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Sim),
			strconv.Itoa(row.Year),
			row.Segment,
			strconv.FormatFloat(row.AccountsSurvived, 'f', -1, 64),
			strconv.FormatFloat(row.Revenue, 'f', -1, 64),
			strconv.FormatFloat(row.Cost, 'f', -1, 64),
			strconv.FormatFloat(row.NetProfit, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
