package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"portfoliosim/internal/metrics"
	"portfoliosim/internal/scheduler"
)

// serveCmd runs the projection refresh daemon.
type serveCmd struct {
	configPath string
	scenario   string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the scheduled projection refresh daemon" }
func (*serveCmd) Usage() string {
	return `portfoliosim serve [-config <file>] [-scenario <name>]

  Re-runs the projection on the configured cron schedule and exposes run
  metrics on /metrics. Results are kept in memory only.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "Path to the YAML configuration file")
	f.StringVar(&c.scenario, "scenario", "", "Serve a stored scenario instead of the config file")
}

func (c *serveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log.Println("[INFO] portfoliosim starting...")

	cfg, err := loadConfig(c.configPath, c.scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	collector := metrics.NewCollector()
	metricsServer := collector.StartServer(cfg.Metrics.Addr)

	sched := scheduler.NewScheduler(cfg, collector)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Printf("[FATAL] register refresh task: %v", err)
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh now")
		go sched.RunNow()
	}

	log.Println("[INFO] portfoliosim is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] metrics server shutdown: %v", err)
	}
	log.Println("[INFO] portfoliosim stopped")
	return subcommands.ExitSuccess
}
