package engine

import (
	"testing"
	"time"

	"amazons/game"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FirstTurnBudget = 100 * time.Millisecond
	cfg.TurnBudget = 50 * time.Millisecond
	cfg.SafetyMargin = 5 * time.Millisecond
	cfg.Seed = 17
	return cfg
}

func TestInitializeReplay(t *testing.T) {
	t.Run("history replay rebuilds the position", func(t *testing.T) {
		history := []game.Move{
			game.NewMove(0, 2, 3, 5, 3, 1),
			game.NewMove(0, 5, 4, 1, 4, 6),
			game.NewMove(2, 0, 2, 4, 6, 0),
		}
		cold := NewTurnController(testConfig())
		require.NoError(t, cold.Initialize(2, history, game.White))

		board := game.NewBoard()
		for _, m := range history {
			board.Apply(m)
		}
		require.Equal(t, board.String(), cold.Board().String(),
			"replayed history should rebuild the identical position")
		require.Equal(t, 2, cold.Turn())
	})

	t.Run("replaying an impossible move fails and poisons the controller", func(t *testing.T) {
		tc := NewTurnController(testConfig())
		err := tc.Initialize(1, []game.Move{game.NewMove(4, 4, 4, 5, 4, 4)}, game.Black)
		require.Error(t, err, "origin (4,4) is empty at the start")

		move, _, ok := tc.Decide(time.Now().Add(time.Second))
		require.False(t, ok, "a corrupt controller must forfeit")
		require.True(t, move.IsNone())
	})
}

func TestDecide(t *testing.T) {
	t.Run("opening decision plays a legal move and commits it", func(t *testing.T) {
		tc := NewTurnController(testConfig())
		require.NoError(t, tc.Initialize(1, nil, game.Black))
		start := tc.Board()

		move, metrics, ok := tc.Decide(time.Now().Add(120 * time.Millisecond))

		require.True(t, ok)
		require.Equal(t, int8(game.Black), start.Cell(move.FromRow, move.FromCol),
			"move should originate from a black starting piece")
		require.Greater(t, metrics.Iterations, int64(0))

		after := tc.Board()
		require.Equal(t, int8(game.Black), after.Cell(move.ToRow, move.ToCol),
			"the decided move should be applied to the controller board")
		require.Equal(t, game.Obstacle, after.Cell(move.ArrowRow, move.ArrowCol))
	})

	t.Run("enclosed side forfeits with NoMove", func(t *testing.T) {
		board, err := game.ParseBoard([]string{
			"BBX..W..",
			"BBX.....",
			"XXX..W..",
			"........",
			".....W..",
			"........",
			".....W..",
			"........",
		})
		require.NoError(t, err)
		tc := NewTurnController(testConfig())
		tc.InitializePosition(board, 12, game.Black)

		move, metrics, ok := tc.Decide(time.Now().Add(50 * time.Millisecond))
		require.False(t, ok)
		require.True(t, move.IsNone())
		require.Zero(t, metrics.Iterations, "a lost position is detected without searching")
	})

	t.Run("past deadline still answers", func(t *testing.T) {
		tc := NewTurnController(testConfig())
		require.NoError(t, tc.Initialize(1, nil, game.Black))

		move, metrics, ok := tc.Decide(time.Now().Add(-time.Second))
		require.True(t, ok)
		require.False(t, move.IsNone())
		require.Zero(t, metrics.Iterations)
	})
}

func TestTurnCounting(t *testing.T) {
	tc := NewTurnController(testConfig())
	require.NoError(t, tc.Initialize(1, nil, game.White))
	require.Equal(t, 1, tc.Turn())

	// Black opens our round: still turn 1.
	require.NoError(t, tc.PlayOpponent(game.NewMove(0, 2, 0, 3, 0, 2)))
	require.Equal(t, 1, tc.Turn())

	_, _, ok := tc.Decide(time.Now().Add(30 * time.Millisecond))
	require.True(t, ok)
	require.Equal(t, 1, tc.Turn(), "deciding does not advance the round")

	// The next black move opens round 2.
	require.NoError(t, tc.PlayOpponent(game.NewMove(2, 0, 2, 1, 2, 0)))
	require.Equal(t, 2, tc.Turn())
}
