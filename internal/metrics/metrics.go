package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfoliosim/internal/summary"
)

// Collector exposes projection run metrics on a dedicated registry.
type Collector struct {
	registry *prometheus.Registry

	runsTotal       prometheus.Counter
	lastRunDuration prometheus.Gauge
	lastRunRows     prometheus.Gauge

	finalYearNetProfit *prometheus.GaugeVec
	finalYearAccounts  *prometheus.GaugeVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	return &Collector{
		registry: registry,
		runsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "projection_runs_total",
			Help: "Total number of completed projection runs",
		}),
		lastRunDuration: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "projection_last_run_duration_seconds",
			Help: "Wall-clock duration of the most recent projection run",
		}),
		lastRunRows: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "projection_last_run_rows",
			Help: "Result rows produced by the most recent projection run",
		}),
		finalYearNetProfit: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "projection_final_year_mean_net_profit",
			Help: "Mean net profit in the final projection year, by segment",
		}, []string{"segment"}),
		finalYearAccounts: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "projection_final_year_mean_accounts",
			Help: "Mean surviving accounts in the final projection year, by segment",
		}, []string{"segment"}),
	}
}

// RecordRun publishes the outcome of one projection run.
func (c *Collector) RecordRun(duration time.Duration, rows int, s *summary.RunSummary) {
	c.runsTotal.Inc()
	c.lastRunDuration.Set(duration.Seconds())
	c.lastRunRows.Set(float64(rows))

	for _, sy := range s.BySegmentYear {
		if sy.Year != s.Years {
			continue
		}
		c.finalYearNetProfit.WithLabelValues(sy.Segment).Set(sy.MeanNetProfit)
		c.finalYearAccounts.WithLabelValues(sy.Segment).Set(sy.MeanAccounts)
	}
}

// Handler returns the /metrics handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr in the background and returns the
// server for shutdown.
func (c *Collector) StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Printf("[INFO] metrics server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()
	return server
}
