package scheduler

import (
	"testing"

	"portfoliosim/internal/config"
	"portfoliosim/internal/metrics"
)

func testScheduler() *Scheduler {
	cfg := config.Default()
	cfg.Simulation.Sims = 5
	cfg.Simulation.Years = 3
	cfg.Simulation.Workers = 2
	return NewScheduler(cfg, metrics.NewCollector())
}

func TestRegister_InvalidCronExpression(t *testing.T) {
	s := testScheduler()
	if err := s.Register("not a cron expression"); err == nil {
		t.Error("expected error for an invalid cron expression")
	}
}

func TestRegister_ValidCronExpression(t *testing.T) {
	s := testScheduler()
	if err := s.Register("0 0 6 * * *"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunNow_CompletesSmallRun(t *testing.T) {
	// RunNow must complete a full refresh cycle without the cron loop
	// running (matching the RUN_ON_START path).
	s := testScheduler()
	s.RunNow()
}
