package metrics

import "time"

// AgentConfig identifies one agent variant under experiment. The zero
// values fall back to the engine defaults.
type AgentConfig struct {
	ID              int
	TurnBudget      time.Duration
	FirstTurnBudget time.Duration
	ArenaCapacity   int
	Seed            uint64
}

// GameRecord is one finished self-play game.
type GameRecord struct {
	ID         int
	Agent1     int // AgentConfig.ID playing black
	Agent2     int // AgentConfig.ID playing white
	Winner     string
	Rounds     int
	TotalMoves int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// MoveRecord is one committed move with its search metrics.
type MoveRecord struct {
	Game       int // GameRecord.ID
	Turn       int
	Side       string
	Move       string
	Iterations int64
	Expansions int64
	TreeSize   int
	TreeReused bool
	Duration   time.Duration
}
