package experiments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"amazons/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func TestRunGame(t *testing.T) {
	config := metrics.AgentConfig{ID: 1, TurnBudget: 10 * time.Millisecond, Seed: 5}

	record, moves := runGame(7, config, config)

	require.Equal(t, 7, record.ID)
	require.Equal(t, "agent1", record.Winner, "both sides share the agent ID")
	require.Equal(t, len(moves), record.TotalMoves)
	require.NotEmpty(t, moves)
	require.Equal(t, "black", moves[0].Side, "black opens the game")
	for _, m := range moves {
		require.Equal(t, 7, m.Game)
		require.NotEmpty(t, m.Move)
	}
}

func TestSummarizeIterations(t *testing.T) {
	records := []metrics.MoveRecord{
		{Iterations: 100, TreeReused: false},
		{Iterations: 200, TreeReused: true},
		{Iterations: 300, TreeReused: true},
	}

	s := summarizeIterations(records)

	require.Equal(t, 3, s.Moves)
	require.InDelta(t, 200.0, s.Mean, 1e-9)
	require.InDelta(t, 100.0, s.StdDev, 1e-9)
	require.InDelta(t, 2.0/3.0, s.ReusedFrac, 1e-9)

	require.Zero(t, summarizeIterations(nil))
}

func TestWriter(t *testing.T) {
	base := t.TempDir()
	writer, err := metrics.NewWriter(base, "unit")
	require.NoError(t, err)

	require.NoError(t, writer.WriteAgentConfigs([]metrics.AgentConfig{
		{ID: 1, TurnBudget: 50 * time.Millisecond, ArenaCapacity: 1000, Seed: 2},
	}))
	require.NoError(t, writer.WriteGameRecords([]metrics.GameRecord{
		{ID: 1, Agent1: 1, Agent2: 2, Winner: "agent1", Rounds: 30, TotalMoves: 59},
	}))
	require.NoError(t, writer.WriteMoveRecords([]metrics.MoveRecord{
		{Game: 1, Turn: 1, Side: "black", Move: "(0,2)->(3,5)x(3,1)", Iterations: 42},
	}))

	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		data, err := os.ReadFile(filepath.Join(writer.Dir(), name))
		require.NoError(t, err, "expected %s in the result dir", name)
		require.NotEmpty(t, data)
	}
}
