package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/smartchain/surplusnet/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioFile = flag.String(
			"scenario",
			"",
			"Path to YAML scenario file",
		)
		configFile  = flag.String("config", "", "Path to YAML engine config file (optional)")
		format      = flag.String("format", "text", "Output format: text, json")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
		proposeBest = flag.Bool("propose-best", false, "Propose the highest-scoring match")
		autoAccept  = flag.Bool("auto-accept", false, "Accept the proposed match (with -propose-best)")
		marketSeed  = flag.Int64("market-seed", 0, "Seed for randomized market estimates (0 = deterministic)")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioFile: *scenarioFile,
		ConfigFile:   *configFile,
		Format:       *format,
		Verbose:      *verbose,
		ProposeBest:  *proposeBest,
		AutoAccept:   *autoAccept,
		MarketSeed:   *marketSeed,
		Help:         *help,
	}

	// Create and execute command
	cmd := commands.NewNetworkCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
