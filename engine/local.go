package engine

import (
	"amazons/game"
	"amazons/searcher"

	"github.com/rs/zerolog/log"
)

// maxRounds guards the game loop; an Amazons game on 8×8 cannot outlast
// the empty squares, but a driver bug should not spin forever.
const maxRounds = 200

// PlayedMove is one committed ply with its search metrics, as delivered to
// game observers.
type PlayedMove struct {
	Turn    int
	Side    game.Player
	Move    game.Move
	Metrics searcher.SearchMetrics
}

// GameResult summarizes a finished local game.
type GameResult struct {
	Winner game.Player
	Rounds int
	Moves  []PlayedMove
}

// PlayLocalGame runs a full game between two in-process controllers and
// returns the result. Black moves first; the side that cannot move loses.
// The observer, when non-nil, sees every move as it is committed.
func PlayLocalGame(blackCfg, whiteCfg Config, observer func(PlayedMove)) (GameResult, error) {
	black := NewTurnController(blackCfg)
	white := NewTurnController(whiteCfg)
	if err := black.Initialize(1, nil, game.Black); err != nil {
		return GameResult{}, err
	}
	if err := white.Initialize(1, nil, game.White); err != nil {
		return GameResult{}, err
	}

	log.Info().Msg("local game started")

	result := GameResult{}
	for round := 1; round <= maxRounds; round++ {
		for _, tc := range [2]*TurnController{black, white} {
			move, metrics, ok := tc.DecideWithBudget()
			if !ok {
				other := tc.Side().Opponent()
				result.Winner = other
				result.Rounds = round
				log.Info().
					Stringer("winner", other).
					Int("rounds", round).
					Int("moves", len(result.Moves)).
					Msg("local game over")
				return result, nil
			}

			played := PlayedMove{Turn: tc.Turn(), Side: tc.Side(), Move: move, Metrics: metrics}
			result.Moves = append(result.Moves, played)
			if observer != nil {
				observer(played)
			}

			other := white
			if tc == white {
				other = black
			}
			if err := other.PlayOpponent(move); err != nil {
				return result, err
			}
		}
	}
	// Unreachable for a correct board engine.
	result.Rounds = maxRounds
	return result, nil
}
