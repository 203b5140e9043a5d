package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"portfoliosim/internal/config"
	"portfoliosim/internal/scenario"
)

// openStore opens the scenario store configured at path (or defaults).
func openStore(configPath string) (*scenario.Store, error) {
	cfg, err := config.Load(defaultConfigPath(configPath))
	if err != nil {
		return nil, err
	}
	return scenario.Open(cfg.Database.SQLitePath)
}

// saveCmd stores the current configuration as a named scenario.
type saveCmd struct {
	configPath string
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "store the current configuration as a named scenario" }
func (*saveCmd) Usage() string {
	return `portfoliosim save [-config <file>] <name>

  Saves the configuration (assumption set) to the scenario library under the
  given name, overwriting any scenario with that name.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "Path to the YAML configuration file")
}

func (c *saveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one scenario name is required")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	cfg, err := config.Load(defaultConfigPath(c.configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := scenario.Open(cfg.Database.SQLitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	id, err := store.Save(name, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("saved scenario %q (%s)\n", name, id)
	return subcommands.ExitSuccess
}

// scenariosCmd lists stored scenarios.
type scenariosCmd struct {
	configPath string
}

func (*scenariosCmd) Name() string     { return "scenarios" }
func (*scenariosCmd) Synopsis() string { return "list stored scenarios" }
func (*scenariosCmd) Usage() string {
	return `portfoliosim scenarios [-config <file>]

  Lists every scenario in the library, most recently updated first.
`
}

func (c *scenariosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "Path to the YAML configuration file")
}

func (c *scenariosCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	infos, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(infos) == 0 {
		fmt.Println("no stored scenarios")
		return subcommands.ExitSuccess
	}
	for _, info := range infos {
		fmt.Printf("%-24s %s  updated %s\n", info.Name, info.ID, info.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return subcommands.ExitSuccess
}

// deleteCmd removes a stored scenario.
type deleteCmd struct {
	configPath string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a stored scenario" }
func (*deleteCmd) Usage() string {
	return `portfoliosim delete [-config <file>] <name>

  Removes the named scenario from the library.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "Path to the YAML configuration file")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one scenario name is required")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	store, err := openStore(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if err := store.Delete(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("deleted scenario %q\n", name)
	return subcommands.ExitSuccess
}
