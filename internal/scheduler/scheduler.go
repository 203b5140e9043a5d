package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"portfoliosim/internal/config"
	"portfoliosim/internal/metrics"
	"portfoliosim/internal/projector"
	"portfoliosim/internal/summary"
)

// Scheduler re-runs the configured projection on a cron schedule and
// publishes the headline numbers to the metrics collector. Results live only
// in memory between runs.
type Scheduler struct {
	Cron    *cron.Cron
	Config  *config.Config
	Metrics *metrics.Collector
}

// NewScheduler creates a new Scheduler.
func NewScheduler(cfg *config.Config, collector *metrics.Collector) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Config:  cfg,
		Metrics: collector,
	}
}

// Register registers the refresh task with the given cron expression.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.RunNow); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the projection immediately (also used for RUN_ON_START).
func (s *Scheduler) RunNow() {
	log.Printf("[INFO] running projection refresh: %d sims x %d years x %d segments",
		s.Config.Simulation.Sims, s.Config.Simulation.Years, len(s.Config.Segments))

	start := time.Now()
	rows := projector.RunConfigured(s.Config)
	elapsed := time.Since(start)

	sum := summary.Summarize(rows)
	s.Metrics.RecordRun(elapsed, len(rows), sum)

	if len(sum.ByYear) > 0 {
		final := sum.ByYear[len(sum.ByYear)-1]
		log.Printf("[INFO] refresh done in %v: year %d mean accounts %.1f, mean net profit %.2f",
			elapsed, final.Year, final.MeanAccounts, final.MeanNetProfit)
	} else {
		log.Printf("[INFO] refresh done in %v: empty run", elapsed)
	}
}
