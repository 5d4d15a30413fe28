package engine

import (
	"fmt"
	"time"

	"amazons/game"
	"amazons/searcher"

	"github.com/rs/zerolog/log"
)

// TurnController owns the board, the turn counter, and the persistent
// search tree for one side of a game. It is the single entry point the
// protocol layer drives: replay history, feed opponent moves, ask for a
// decision.
type TurnController struct {
	config Config
	search *searcher.MCTS
	board  *game.Board
	side   game.Player
	turn   int
	// movedThisRound distinguishes an opponent reply (advances the round)
	// from the opponent move that opens our round.
	movedThisRound bool
	// corrupt is set when replay hands us an impossible move; from then on
	// the controller forfeits instead of searching a broken position.
	corrupt bool
}

func NewTurnController(cfg Config) *TurnController {
	options := []searcher.Option{searcher.WithArenaCapacity(cfg.ArenaCapacity)}
	if cfg.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Seed))
	}
	return &TurnController{
		config: cfg,
		search: searcher.NewMCTS(options...),
		board:  game.NewBoard(),
		side:   game.Black,
		turn:   1,
	}
}

// Initialize replays a move history onto a fresh starting position so a
// cold-started process and a long-running one converge on identical state.
// The history is the full alternating sequence from the first move of the
// game; turn is the controller's current (1-based) turn number.
func (tc *TurnController) Initialize(turn int, history []game.Move, side game.Player) error {
	tc.board = game.NewBoard()
	tc.search.Reset()
	tc.side = side
	tc.turn = turn
	tc.movedThisRound = false
	tc.corrupt = false

	for i, m := range history {
		if m.IsNone() {
			continue
		}
		if err := tc.apply(m); err != nil {
			return fmt.Errorf("failed to replay move %d: %w", i, err)
		}
	}
	return nil
}

// InitializePosition starts the controller from an arbitrary position
// instead of a replayed history, discarding any retained tree.
func (tc *TurnController) InitializePosition(board *game.Board, turn int, side game.Player) {
	tc.board = board.Clone()
	tc.search.Reset()
	tc.side = side
	tc.turn = turn
	tc.movedThisRound = false
	tc.corrupt = false
}

// PlayOpponent records the opponent's move. When it follows our own move
// it opens the next round and the turn counter advances, which in turn
// shifts the evaluation phase and the exploration constant.
func (tc *TurnController) PlayOpponent(m game.Move) error {
	if tc.movedThisRound {
		tc.turn++
		tc.movedThisRound = false
	}
	return tc.apply(m)
}

func (tc *TurnController) apply(m game.Move) error {
	cell := tc.board.Cell(m.FromRow, m.FromCol)
	if cell != int8(game.Black) && cell != int8(game.White) {
		// Historically a replay/tree index mismatch here meant every later
		// decision was derived from garbage; refuse to continue.
		tc.corrupt = true
		return fmt.Errorf("move %v origin holds no piece", m)
	}
	tc.board.Apply(m)
	tc.search.Advance(m)
	return nil
}

// Decide searches until deadline, commits the chosen move to the board and
// the tree, and returns it. The boolean is false when the side has no
// legal move (the loss signal) or the controller state is corrupt; the
// move is then NoMove, to be propagated verbatim.
func (tc *TurnController) Decide(deadline time.Time) (game.Move, searcher.SearchMetrics, bool) {
	if tc.corrupt {
		log.Error().Int("turn", tc.turn).Msg("controller state corrupt, forfeiting move")
		return game.NoMove, searcher.SearchMetrics{}, false
	}
	if !tc.board.HasLegalMove(tc.side) {
		// Lost position; skip the search instead of building a root with an
		// empty move list.
		log.Info().Int("turn", tc.turn).Stringer("side", tc.side).Msg("no legal move")
		return game.NoMove, searcher.SearchMetrics{}, false
	}

	move, metrics := tc.search.Search(tc.board, tc.side, tc.turn, deadline)
	if move.IsNone() {
		log.Info().Int("turn", tc.turn).Stringer("side", tc.side).Msg("no legal move")
		return game.NoMove, metrics, false
	}

	tc.board.Apply(move)
	tc.search.Advance(move)
	tc.movedThisRound = true

	log.Info().
		Int("turn", tc.turn).
		Stringer("side", tc.side).
		Stringer("move", move).
		Int64("iterations", metrics.Iterations).
		Int("tree", metrics.TreeSize).
		Bool("reused", metrics.TreeReused).
		Dur("elapsed", metrics.Duration).
		Msg("move decided")
	return move, metrics, true
}

// nextDeadline derives the per-turn deadline from the configured budgets:
// a larger allowance for the very first turn, minus the safety margin.
func (tc *TurnController) nextDeadline() time.Time {
	budget := tc.config.TurnBudget
	if tc.turn == 1 && !tc.movedThisRound {
		budget = tc.config.FirstTurnBudget
	}
	return time.Now().Add(budget - tc.config.SafetyMargin)
}

// DecideWithBudget is Decide with the deadline taken from the configured
// turn budgets.
func (tc *TurnController) DecideWithBudget() (game.Move, searcher.SearchMetrics, bool) {
	return tc.Decide(tc.nextDeadline())
}

// Value returns the searcher's win estimate for this side's latest
// decision, 0.5 before any search has run.
func (tc *TurnController) Value() float64 {
	return tc.search.RootValue()
}

// Board returns a copy of the current position.
func (tc *TurnController) Board() *game.Board {
	return tc.board.Clone()
}

// Side returns the side this controller plays.
func (tc *TurnController) Side() game.Player {
	return tc.side
}

// Turn returns the current 1-based turn number.
func (tc *TurnController) Turn() int {
	return tc.turn
}
