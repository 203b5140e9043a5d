package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"

	"portfoliosim/internal/config"
	"portfoliosim/internal/scenario"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&runCmd{}, "projection")
	commander.Register(&serveCmd{}, "projection")

	commander.Register(&saveCmd{}, "scenarios")
	commander.Register(&scenariosCmd{}, "scenarios")
	commander.Register(&deleteCmd{}, "scenarios")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// defaultConfigPath resolves the config file path the way the rest of the
// tooling expects: flag value first, CONFIG_PATH second, then the conventional
// location.
func defaultConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// loadConfig loads either a stored scenario (when name is non-empty) or the
// YAML config at path.
func loadConfig(path, scenarioName string) (*config.Config, error) {
	if scenarioName == "" {
		return config.Load(defaultConfigPath(path))
	}

	base, err := config.Load(defaultConfigPath(path))
	if err != nil {
		return nil, err
	}
	store, err := scenario.Open(base.Database.SQLitePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(scenarioName)
}
