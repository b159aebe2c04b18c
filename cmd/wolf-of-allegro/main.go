package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	"code.cloudfoundry.org/workpool"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/http_server"
	"github.com/tedsuo/ifrit/sigmon"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctionrunner"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/catalog"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/communication/http/llmclient"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/communication/http/sinkhandlers"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ledger"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/visualization"
)

var scenarioPath = flag.String("scenario", "", "path to the scenario JSON file")
var promptsDir = flag.String("prompts", "prompts", "directory of team strategy prompt files")
var teamList = flag.String("teams", "", "comma-separated team names (prompt file stems); all prompts if empty")
var configPath = flag.String("config", "", "optional YAML game config file")
var outputDir = flag.String("output", "output", "output directory for session artifacts")
var iterationLimit = flag.Int("iterations", 0, "max bidding iterations per item (overrides env/config)")
var budgetOverride = flag.Int("budget", 0, "fixed starting budget per team (overrides the scaling policy)")
var requiredSetSize = flag.Int("required-set-size", 0, "number of required items that counts as a complete collection")
var serveAddress = flag.String("serve", "", "if set, serve the finished game's log and rankings on this address")
var seed = flag.Int64("seed", 0, "ordering seed; 0 picks one from the wall clock")
var verbose = flag.Bool("verbose", false, "enable debug logging")

func main() {
	flag.Parse()

	logger := lager.NewLogger("wolf-of-allegro")
	logLevel := lager.INFO
	if *verbose {
		logLevel = lager.DEBUG
	}
	logger.RegisterSink(lager.NewWriterSink(os.Stderr, logLevel))

	if err := run(logger); err != nil {
		logger.Error("game-failed", err)
		os.Exit(1)
	}
}

func run(logger lager.Logger) error {
	if *scenarioPath == "" {
		return fmt.Errorf("-scenario is required")
	}

	cfg, err := loadEnvConfig()
	if err != nil {
		return err
	}
	var fileCfg fileConfig
	if *configPath != "" {
		fileCfg, err = loadFileConfig(*configPath)
		if err != nil {
			return err
		}
		cfg.applyFile(fileCfg)
	}
	if *iterationLimit > 0 {
		cfg.MaxIterations = *iterationLimit
	}

	budget := *budgetOverride
	if budget == 0 {
		budget = fileCfg.StartingBudget
	}
	setSize := *requiredSetSize
	if setSize == 0 {
		setSize = fileCfg.RequiredSetSize
	}

	teams, err := resolveTeams(*promptsDir, *teamList)
	if err != nil {
		return err
	}
	if len(teams) < 2 {
		return fmt.Errorf("at least 2 teams required, found %d", len(teams))
	}

	gameConfig := auctiontypes.GameConfig{
		StartingBudget:  startingBudget(budget, cfg.BaseBudget, cfg.BudgetPerTeam, len(teams)),
		IterationLimit:  cfg.MaxIterations,
		RequiredSetSize: setSize,
		BidTimeout:      cfg.BidTimeout,
	}
	if err := gameConfig.Validate(); err != nil {
		return err
	}

	cat, err := catalog.LoadFile(*scenarioPath, gameConfig.RequiredSetSize)
	if err != nil {
		return err
	}

	workPool, err := workpool.NewWorkPool(len(teams))
	if err != nil {
		return err
	}
	defer workPool.Stop()

	client := llmclient.New(
		&http.Client{Timeout: cfg.BidTimeout},
		cfg.LLMAddress,
		cfg.LLMModel,
		cfg.LLMAPIKey,
		cfg.LLMTemperature,
		logger,
	)

	engineTeams := make([]*auctionrunner.Team, 0, len(teams))
	for _, team := range teams {
		strategyText, err := os.ReadFile(filepath.Join(*promptsDir, team+".txt"))
		if err != nil {
			return fmt.Errorf("loading strategy for team %q: %w", team, err)
		}

		source, err := llmclient.NewSource(client, team, strings.TrimSpace(string(strategyText)), cat.ItemsInAuctionOrder(), logger)
		if err != nil {
			return err
		}

		engineTeams = append(engineTeams, auctionrunner.NewTeam(
			team,
			ledger.New(team, gameConfig.StartingBudget),
			source,
		))
	}

	runner := auctionrunner.NewAuctionRunner(
		logger,
		cat,
		engineTeams,
		gameConfig,
		auctionrunner.NewShuffleOrderer(*seed),
		workPool,
		clock.NewClock(),
	)

	sessionDir, err := makeSessionDir(*outputDir, *scenarioPath, runner.GameID())
	if err != nil {
		return err
	}
	if err := writeRunConfig(sessionDir, teams, gameConfig, cfg); err != nil {
		return err
	}

	started := time.Now()
	result, runErr := runner.Run(context.Background())
	report := visualization.NewGameReport(result, time.Since(started))

	// Artifacts are written even when the game aborted.
	if err := writeArtifacts(sessionDir, result, report); err != nil {
		logger.Error("failed-to-write-artifacts", err)
	}
	visualization.PrintReport(os.Stdout, report)
	fmt.Printf("\nSession artifacts: %s\n", sessionDir)

	if runErr != nil {
		return runErr
	}

	if *serveAddress != "" {
		return serveResults(logger, *serveAddress, result)
	}
	return nil
}

func resolveTeams(promptsDir, teamList string) ([]string, error) {
	if teamList != "" {
		return strings.Split(teamList, ","), nil
	}

	matches, err := filepath.Glob(filepath.Join(promptsDir, "*.txt"))
	if err != nil {
		return nil, err
	}
	teams := make([]string, 0, len(matches))
	for _, match := range matches {
		teams = append(teams, strings.TrimSuffix(filepath.Base(match), ".txt"))
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("no team prompts found in %s", promptsDir)
	}
	return teams, nil
}

func makeSessionDir(outputDir, scenarioPath, gameID string) (string, error) {
	scenario := strings.TrimSuffix(filepath.Base(scenarioPath), filepath.Ext(scenarioPath))
	name := fmt.Sprintf("%s_%s_%s", time.Now().Format("20060102_150405"), scenario, gameID[:8])
	dir := filepath.Join(outputDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeRunConfig(sessionDir string, teams []string, gameConfig auctiontypes.GameConfig, cfg envConfig) error {
	f, err := os.Create(filepath.Join(sessionDir, "run_config.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]interface{}{
		"teams":             teams,
		"starting_budget":   gameConfig.StartingBudget,
		"iteration_limit":   gameConfig.IterationLimit,
		"required_set_size": gameConfig.RequiredSetSize,
		"bid_timeout":       gameConfig.BidTimeout.String(),
		"llm_address":       cfg.LLMAddress,
		"llm_model":         cfg.LLMModel,
	})
}

func writeArtifacts(sessionDir string, result auctionrunner.GameResult, report *visualization.GameReport) error {
	if err := visualization.WriteBidLogCSV(filepath.Join(sessionDir, "bid_log.csv"), result); err != nil {
		return err
	}
	if err := visualization.WriteRankingsCSV(filepath.Join(sessionDir, "final_rankings.csv"), result.Rankings); err != nil {
		return err
	}
	return visualization.WriteSVGReport(filepath.Join(sessionDir, "report.svg"), report)
}

func serveResults(logger lager.Logger, address string, result auctionrunner.GameResult) error {
	handler, err := sinkhandlers.New(result, logger)
	if err != nil {
		return err
	}

	logger.Info("serving-results", lager.Data{"address": address})
	process := ifrit.Invoke(sigmon.New(http_server.New(address, handler)))
	return <-process.Wait()
}
