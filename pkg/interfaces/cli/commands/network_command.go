package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	appservices "github.com/smartchain/surplusnet/pkg/application/services"
	"github.com/smartchain/surplusnet/pkg/application/services/matching"
	"github.com/smartchain/surplusnet/pkg/domain/entities"
	domainservices "github.com/smartchain/surplusnet/pkg/domain/services"
	"github.com/smartchain/surplusnet/pkg/infrastructure/events"
	"github.com/smartchain/surplusnet/pkg/infrastructure/repositories/memory"
	"github.com/smartchain/surplusnet/pkg/infrastructure/repositories/yamlrepo"
	"github.com/smartchain/surplusnet/pkg/interfaces/cli/output"
)

// Config holds configuration for the network command
type Config struct {
	ScenarioFile string
	ConfigFile   string
	Format       string
	Verbose      bool
	ProposeBest  bool
	AutoAccept   bool
	MarketSeed   int64
	Help         bool
}

// NetworkCommand runs a full engine pass over a scenario: load, generate
// matches, optionally settle the best one, then derive recommended actions.
type NetworkCommand struct {
	config Config
}

// NewNetworkCommand creates a new network command with the given configuration
func NewNetworkCommand(config Config) *NetworkCommand {
	return &NetworkCommand{
		config: config,
	}
}

// Execute runs the network command
func (c *NetworkCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.ScenarioFile == "" {
		return fmt.Errorf("validation error: must specify a -scenario file")
	}
	if c.config.Format != "text" && c.config.Format != "json" {
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}

	logger := zap.NewNop()
	if c.config.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync()
	}

	// Load scenario
	loader := yamlrepo.NewLoader()
	scenario, err := loader.Load(c.config.ScenarioFile)
	if err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}

	cfg, err := c.resolveConfig(scenario)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		logger.Info("scenario loaded",
			zap.String("file", c.config.ScenarioFile),
			zap.Int("locations", len(scenario.Locations)),
			zap.Int("surplus", len(scenario.Surplus)),
			zap.Int("needs", len(scenario.Needs)))
	}

	// Wire the engine
	inventory := memory.NewInventoryRepository()
	matches := memory.NewMatchRepository()
	connections := memory.NewConnectionRepository()
	notifications := memory.NewNotificationRepository()
	distance := domainservices.NewDistanceEstimator()

	if err := scenario.Populate(inventory, distance); err != nil {
		return fmt.Errorf("error seeding registry: %w", err)
	}

	var market domainservices.MarketEstimator = domainservices.NewFixedMarketEstimator()
	if c.config.MarketSeed != 0 {
		market = domainservices.NewSeededMarketEstimator(c.config.MarketSeed)
	}

	journal := events.NewInMemoryEventStore()
	svc := appservices.NewNetworkService(appservices.NetworkServiceDeps{
		Config:        cfg,
		Inventory:     inventory,
		Matches:       matches,
		Connections:   connections,
		Notifications: notifications,
		Distance:      distance,
		Market:        market,
		Journal:       journal,
		Logger:        logger,
	})

	// Run the pass
	startTime := time.Now()
	generated, err := svc.GenerateMatches(ctx)
	if err != nil {
		return fmt.Errorf("error generating matches: %w", err)
	}
	if c.config.Verbose {
		logger.Info("matching pass complete",
			zap.Int("matches", len(generated)),
			zap.Duration("elapsed", time.Since(startTime)))
	}

	if c.config.ProposeBest && len(generated) > 0 {
		best := generated[0]
		if svc.ProposeMatch(best.ID, best.FromLocation, "auto-proposed by CLI") {
			if c.config.AutoAccept {
				svc.RespondToMatch(best.ID, true, "auto-accepted by CLI")
			}
		}
	}

	return c.render(ctx, svc, scenario, journal)
}

// resolveConfig layers the defaults, the optional -config file and the
// scenario's embedded config block, in that order
func (c *NetworkCommand) resolveConfig(scenario *yamlrepo.Scenario) (matching.Config, error) {
	cfg := matching.DefaultConfig()

	if c.config.ConfigFile != "" {
		loaded, err := matching.LoadConfig(c.config.ConfigFile)
		if err != nil {
			return cfg, fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
	}

	if scenario.HasConfig() {
		if err := scenario.Config.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("error parsing scenario config block: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid scenario config: %w", err)
		}
	}

	return cfg, nil
}

func (c *NetworkCommand) render(ctx context.Context, svc *appservices.NetworkService, scenario *yamlrepo.Scenario, journal events.EventStore) error {
	surplus, err := svc.ListSurplus(ctx)
	if err != nil {
		return err
	}
	needs, err := svc.ListNeeds(ctx)
	if err != nil {
		return err
	}
	matchList, err := svc.ListMatches(ctx)
	if err != nil {
		return err
	}
	actions, err := svc.GetRecommendedActions(ctx)
	if err != nil {
		return fmt.Errorf("error deriving actions: %w", err)
	}
	conns, err := svc.ListConnections(ctx)
	if err != nil {
		return err
	}
	analytics, err := svc.Analytics(ctx)
	if err != nil {
		return err
	}

	if c.config.Format == "json" {
		return output.WriteJSON(os.Stdout, output.Report{
			Surplus:     surplus,
			Needs:       needs,
			Matches:     matchList,
			Actions:     actions,
			Connections: conns,
			Analytics:   analytics,
		})
	}

	output.RenderSurplus(os.Stdout, surplus)
	output.RenderNeeds(os.Stdout, needs)
	output.RenderMatches(os.Stdout, matchList)
	output.RenderActions(os.Stdout, actions)
	if len(conns) > 0 {
		output.RenderConnections(os.Stdout, conns)
	}
	output.RenderAnalytics(os.Stdout, analytics)

	if c.config.Verbose {
		for _, loc := range scenario.Locations {
			c.renderNotifications(ctx, svc, loc.ID)
		}
		if recorded, err := journal.ReadAllEvents(0); err == nil && len(recorded) > 0 {
			output.RenderJournal(os.Stdout, recorded)
		}
	}
	return nil
}

func (c *NetworkCommand) renderNotifications(ctx context.Context, svc *appservices.NetworkService, locationID entities.LocationID) {
	notifs, err := svc.ListNotifications(ctx, locationID)
	if err != nil || len(notifs) == 0 {
		return
	}
	output.RenderNotifications(os.Stdout, locationID, notifs)
}

// showHelp displays the help message
func (c *NetworkCommand) showHelp() {
	fmt.Printf(`Surplus Network CLI - Inter-Location Surplus Matching

USAGE:
    surplusnet -scenario <file>            # Run a matching pass over a scenario

OPTIONS:
    -scenario <file>    Path to YAML scenario file
    -config <file>      Path to YAML engine config file (optional)
    -format <fmt>       Output format: text, json (default: text)
    -verbose            Enable verbose output
    -propose-best       Propose the highest-scoring match
    -auto-accept        Accept the proposed match (with -propose-best)
    -market-seed <n>    Seed for randomized market estimates (0 = deterministic)
    -help               Show this help message

SCENARIO FILE FORMAT:

    config:                        # optional engine overrides
      score_threshold: 0.5
    locations:
      - id: store-sf
        name: Downtown SF
        city: San Francisco
        categories:
          electronics: {current: 30, min: 20, max: 100}
    distances:
      - {from: store-sf, to: store-ny, miles: 2900}
    surplus:
      - location: store-sf
        sku: WIDGET-01
        product: Widget
        category: electronics
        quantity: 150
        unit_price: "25.50"
        condition: good
    needs:
      - location: store-ny
        category: electronics
        product: Widget
        quantity: 100
        urgency: critical
        max_price: "30.00"

EXAMPLES:
    # Run a scenario and print tables
    surplusnet -scenario example/coastal_network.yaml -verbose

    # Settle the best match and show the resulting connection
    surplusnet -scenario example/coastal_network.yaml -propose-best -auto-accept

    # Machine-readable output
    surplusnet -scenario example/coastal_network.yaml -format json
`)
}
