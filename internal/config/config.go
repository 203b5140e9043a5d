package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"portfoliosim/internal/model"
)

// Config holds all application configuration: the portfolio and simulation
// inputs consumed by the projector, plus tool-level settings for the
// scenario store, the refresh daemon, and metrics.
type Config struct {
	Portfolio struct {
		InitialNewAccounts float64 `yaml:"initial_new_accounts"`
		AnnualNewAccounts  float64 `yaml:"annual_new_accounts"`
	} `yaml:"portfolio"`
	Simulation struct {
		Sims    int   `yaml:"sims"`
		Years   int   `yaml:"years"`
		Seed    int64 `yaml:"seed"`
		Workers int   `yaml:"workers"`
	} `yaml:"simulation"`
	Segments []model.SegmentConfig `yaml:"segments"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

// DefaultSegments returns the base three-segment book: High, Medium, Low.
// The Low segment's shape mean is negative on purpose; the sampler's
// structural floor of 0.01 is what keeps the drawn shape valid.
func DefaultSegments() []model.SegmentConfig {
	return []model.SegmentConfig{
		{
			Name:            "High",
			Proportion:      0.30,
			SurvivalShape:   model.Distribution{Mean: 1.5, SD: 0.2},
			SurvivalScale:   model.Distribution{Mean: 8.0, SD: 1.0},
			InterestRate:    model.Distribution{Mean: 0.18, SD: 0.02, Min: 0.10, Max: 0.30},
			FeeRate:         model.Distribution{Mean: 0.05, SD: 0.01, Min: 0.00, Max: 0.10},
			InterchangeRate: model.Distribution{Mean: 0.020, SD: 0.005, Min: 0.00, Max: 0.05},
			ServicingCost:   model.Distribution{Mean: 0.04, SD: 0.01, Min: 0.01, Max: 0.10},
		},
		{
			Name:            "Medium",
			Proportion:      0.50,
			SurvivalShape:   model.Distribution{Mean: 1.0, SD: 0.25},
			SurvivalScale:   model.Distribution{Mean: 5.0, SD: 1.0},
			InterestRate:    model.Distribution{Mean: 0.21, SD: 0.03, Min: 0.10, Max: 0.33},
			FeeRate:         model.Distribution{Mean: 0.06, SD: 0.015, Min: 0.00, Max: 0.12},
			InterchangeRate: model.Distribution{Mean: 0.018, SD: 0.005, Min: 0.00, Max: 0.05},
			ServicingCost:   model.Distribution{Mean: 0.05, SD: 0.012, Min: 0.01, Max: 0.12},
		},
		{
			Name:            "Low",
			Proportion:      0.20,
			SurvivalShape:   model.Distribution{Mean: -1.0, SD: 0.3},
			SurvivalScale:   model.Distribution{Mean: 3.0, SD: 0.8},
			InterestRate:    model.Distribution{Mean: 0.26, SD: 0.04, Min: 0.12, Max: 0.36},
			FeeRate:         model.Distribution{Mean: 0.08, SD: 0.02, Min: 0.00, Max: 0.15},
			InterchangeRate: model.Distribution{Mean: 0.015, SD: 0.005, Min: 0.00, Max: 0.05},
			ServicingCost:   model.Distribution{Mean: 0.07, SD: 0.015, Min: 0.01, Max: 0.15},
		},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.Seed = seed
		}
	}
	if v := os.Getenv("SIM_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Workers = workers
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Portfolio.InitialNewAccounts == 0 {
		c.Portfolio.InitialNewAccounts = 10000
	}
	if c.Portfolio.AnnualNewAccounts == 0 {
		c.Portfolio.AnnualNewAccounts = 2000
	}
	if c.Simulation.Sims == 0 {
		c.Simulation.Sims = 1000
	}
	if c.Simulation.Years == 0 {
		c.Simulation.Years = 10
	}
	if c.Simulation.Seed == 0 {
		c.Simulation.Seed = 42
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 1
	}
	if len(c.Segments) == 0 {
		c.Segments = DefaultSegments()
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/portfoliosim.db"
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 0 6 * * *"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}
}

// Default returns the default configuration without touching the filesystem.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Validate checks the configuration for caller mistakes the projector itself
// will not catch. The projector deliberately runs whatever it is given, so
// this is only called at the CLI boundary. Zero sims or years are legal and
// produce an empty run.
func (c *Config) Validate() error {
	if c.Portfolio.InitialNewAccounts < 0 {
		return fmt.Errorf("portfolio.initial_new_accounts must not be negative")
	}
	if c.Portfolio.AnnualNewAccounts < 0 {
		return fmt.Errorf("portfolio.annual_new_accounts must not be negative")
	}
	if c.Simulation.Sims < 0 || c.Simulation.Years < 0 {
		return fmt.Errorf("simulation.sims and simulation.years must not be negative")
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation.workers must be at least 1")
	}
	if len(c.Segments) == 0 {
		return fmt.Errorf("at least one segment is required")
	}
	var total float64
	for i, seg := range c.Segments {
		if seg.Name == "" {
			return fmt.Errorf("segments[%d].name is required", i)
		}
		if seg.Proportion < 0 {
			return fmt.Errorf("segment %q: proportion must not be negative", seg.Name)
		}
		dists := []struct {
			field string
			dist  model.Distribution
		}{
			{"survival_shape", seg.SurvivalShape},
			{"survival_scale", seg.SurvivalScale},
			{"interest_rate", seg.InterestRate},
			{"fee_rate", seg.FeeRate},
			{"interchange_rate", seg.InterchangeRate},
			{"servicing_cost", seg.ServicingCost},
		}
		for _, d := range dists {
			if d.dist.SD < 0 {
				return fmt.Errorf("segment %q: %s.sd must not be negative", seg.Name, d.field)
			}
		}
		total += seg.Proportion
	}
	if math.Abs(total-1.0) > 1e-6 {
		return fmt.Errorf("segment proportions must sum to 1, got %.6f", total)
	}
	return nil
}
