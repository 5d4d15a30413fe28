package experiments

import (
	"fmt"
	"time"

	"amazons/engine"
	"amazons/experiments/metrics"
	"amazons/game"

	"github.com/rs/zerolog/log"
)

const (
	NumGames  = 30 // Per match up
	ResultDir = "results"
)

var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, TurnBudget: 50 * time.Millisecond},
	{ID: 2, TurnBudget: 100 * time.Millisecond},
	{ID: 3, TurnBudget: 250 * time.Millisecond},
	{ID: 4, TurnBudget: 500 * time.Millisecond},
	{ID: 5, TurnBudget: 950 * time.Millisecond},
}

// RunBudgetExperiment measures how playing strength scales with the
// per-turn time budget. Each matchup pairs the smallest-budget baseline
// against a larger budget.
func RunBudgetExperiment() {
	baseline := budgetConfigs[0]
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range budgetConfigs[1:] {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	runExperiment("budget_to_strength", budgetConfigs, matchUps)
}

// RunArenaExperiment measures the effect of the node arena ceiling: a
// starved tree stops expanding and has to decide from shallower
// statistics.
func RunArenaExperiment() {
	budget := 250 * time.Millisecond
	configs := []metrics.AgentConfig{
		{ID: 1, TurnBudget: budget, ArenaCapacity: 1_000},
		{ID: 2, TurnBudget: budget, ArenaCapacity: 10_000},
		{ID: 3, TurnBudget: budget, ArenaCapacity: 50_000},
		{ID: 4, TurnBudget: budget, ArenaCapacity: 250_000},
	}
	baseline := configs[len(configs)-1]
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs[:len(configs)-1] {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	runExperiment("arena_to_strength", configs, matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) {
	writer, err := metrics.NewWriter(ResultDir, name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}
	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}

	log.Info().Msgf("starting %s experiment...", name)

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...",
			mi+1, len(matchUps), config1, config2)

		matchStart := len(moveRecords)
		for i := 0; i < NumGames; i++ {
			// Alternate the starting agent so first-move advantage
			// cancels out across the matchup.
			black, white := config1, config2
			if i%2 == 1 {
				black, white = config2, config1
			}

			count++
			gameRecord, gameMoves := runGame(count, black, white)
			gameRecords = append(gameRecords, gameRecord)
			moveRecords = append(moveRecords, gameMoves...)

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s",
				mi+1, len(matchUps), i+1, NumGames, gameRecord.Winner)
		}

		logMatchupSummary(moveRecords[matchStart:])
	}

	log.Info().Msgf("completed %s experiment", name)

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write game records: %v", err))
	}
	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write move records: %v", err))
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
}

// runGame executes a single self-play game and returns its records.
func runGame(id int, blackConfig, whiteConfig metrics.AgentConfig) (metrics.GameRecord, []metrics.MoveRecord) {
	moveRecords := []metrics.MoveRecord{}
	observer := func(pm engine.PlayedMove) {
		moveRecords = append(moveRecords, metrics.MoveRecord{
			Game:       id,
			Turn:       pm.Turn,
			Side:       pm.Side.String(),
			Move:       pm.Move.String(),
			Iterations: pm.Metrics.Iterations,
			Expansions: pm.Metrics.Expansions,
			TreeSize:   pm.Metrics.TreeSize,
			TreeReused: pm.Metrics.TreeReused,
			Duration:   pm.Metrics.Duration,
		})
	}

	start := time.Now()
	result, err := engine.PlayLocalGame(
		controllerConfig(blackConfig), controllerConfig(whiteConfig), observer)
	if err != nil {
		panic(fmt.Sprintf("self-play game failed: %v", err))
	}
	end := time.Now()

	agent1, agent2 := blackConfig.ID, whiteConfig.ID
	winner := blackConfig
	if result.Winner == game.White {
		winner = whiteConfig
	}
	return metrics.GameRecord{
		ID:         id,
		Agent1:     agent1,
		Agent2:     agent2,
		Winner:     fmt.Sprintf("agent%d", winner.ID),
		Rounds:     result.Rounds,
		TotalMoves: len(result.Moves),
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
	}, moveRecords
}

func controllerConfig(config metrics.AgentConfig) engine.Config {
	cfg := engine.DefaultConfig()
	if config.TurnBudget > 0 {
		cfg.TurnBudget = config.TurnBudget
	}
	if config.FirstTurnBudget > 0 {
		cfg.FirstTurnBudget = config.FirstTurnBudget
	} else if config.TurnBudget > 0 {
		cfg.FirstTurnBudget = 2 * config.TurnBudget
	}
	if config.ArenaCapacity > 0 {
		cfg.ArenaCapacity = config.ArenaCapacity
	}
	cfg.Seed = config.Seed
	return cfg
}
