package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// envConfig carries settings taken from the process environment. Flags and
// the optional YAML file override these.
type envConfig struct {
	LLMAddress     string        `env:"LLM_BASE_URL" envDefault:"http://localhost:11434/v1"`
	LLMModel       string        `env:"LLM_MODEL" envDefault:"qwen2.5:14b"`
	LLMAPIKey      string        `env:"LLM_API_KEY"`
	LLMTemperature float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	BidTimeout     time.Duration `env:"BID_TIMEOUT" envDefault:"60s"`
	BaseBudget     int           `env:"BASE_BUDGET" envDefault:"1500"`
	BudgetPerTeam  int           `env:"BUDGET_PER_TEAM" envDefault:"200"`
	MaxIterations  int           `env:"MAX_ITERATIONS" envDefault:"45"`
}

func loadEnvConfig() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

type llmFileConfig struct {
	Address     string  `yaml:"address"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	Temperature float64 `yaml:"temperature"`
}

// fileConfig is the optional YAML game configuration. Zero values mean
// "not set" and leave the environment-derived value in place.
type fileConfig struct {
	StartingBudget  int           `yaml:"starting_budget"`
	BaseBudget      int           `yaml:"base_budget"`
	BudgetPerTeam   int           `yaml:"budget_per_team"`
	IterationLimit  int           `yaml:"iteration_limit"`
	RequiredSetSize int           `yaml:"required_set_size"`
	BidTimeout      time.Duration `yaml:"bid_timeout"`
	LLM             llmFileConfig `yaml:"llm"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

func (e *envConfig) applyFile(f fileConfig) {
	if f.BaseBudget != 0 {
		e.BaseBudget = f.BaseBudget
	}
	if f.BudgetPerTeam != 0 {
		e.BudgetPerTeam = f.BudgetPerTeam
	}
	if f.IterationLimit != 0 {
		e.MaxIterations = f.IterationLimit
	}
	if f.BidTimeout != 0 {
		e.BidTimeout = f.BidTimeout
	}
	if f.LLM.Address != "" {
		e.LLMAddress = f.LLM.Address
	}
	if f.LLM.Model != "" {
		e.LLMModel = f.LLM.Model
	}
	if f.LLM.APIKey != "" {
		e.LLMAPIKey = f.LLM.APIKey
	}
	if f.LLM.Temperature != 0 {
		e.LLMTemperature = f.LLM.Temperature
	}
}

// startingBudget applies the budget policy: an explicit override wins,
// otherwise the pot scales with the field size.
func startingBudget(override int, base, perTeam, numTeams int) int {
	if override > 0 {
		return override
	}
	return base + perTeam*numTeams
}
