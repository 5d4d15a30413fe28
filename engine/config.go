package engine

import (
	"fmt"
	"os"
	"time"

	"amazons/searcher"

	"gopkg.in/yaml.v3"
)

// Config carries the tuning knobs for a turn controller. Budgets are the
// wall-clock allowances the external judge grants; the safety margin is
// subtracted so the answer is on the wire before the judge's clock runs
// out.
type Config struct {
	FirstTurnBudget time.Duration
	TurnBudget      time.Duration
	SafetyMargin    time.Duration
	ArenaCapacity   int
	Seed            uint64
	ListenAddr      string
}

func DefaultConfig() Config {
	return Config{
		FirstTurnBudget: 1900 * time.Millisecond,
		TurnBudget:      950 * time.Millisecond,
		SafetyMargin:    50 * time.Millisecond,
		ArenaCapacity:   searcher.DefaultArenaCapacity,
		ListenAddr:      "localhost:8080",
	}
}

// fileConfig is the YAML shape; durations are plain milliseconds so config
// files stay free of unit-suffix parsing.
type fileConfig struct {
	FirstTurnBudgetMS int    `yaml:"first_turn_budget_ms"`
	TurnBudgetMS      int    `yaml:"turn_budget_ms"`
	SafetyMarginMS    int    `yaml:"safety_margin_ms"`
	ArenaCapacity     int    `yaml:"arena_capacity"`
	Seed              uint64 `yaml:"seed"`
	ListenAddr        string `yaml:"listen_addr"`
}

// LoadConfig reads a YAML config file over the defaults. Absent or zero
// fields keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if fc.FirstTurnBudgetMS > 0 {
		cfg.FirstTurnBudget = time.Duration(fc.FirstTurnBudgetMS) * time.Millisecond
	}
	if fc.TurnBudgetMS > 0 {
		cfg.TurnBudget = time.Duration(fc.TurnBudgetMS) * time.Millisecond
	}
	if fc.SafetyMarginMS > 0 {
		cfg.SafetyMargin = time.Duration(fc.SafetyMarginMS) * time.Millisecond
	}
	if fc.ArenaCapacity > 0 {
		cfg.ArenaCapacity = fc.ArenaCapacity
	}
	if fc.Seed != 0 {
		cfg.Seed = fc.Seed
	}
	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	return cfg, nil
}
