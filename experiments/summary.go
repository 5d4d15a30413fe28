package experiments

import (
	"amazons/experiments/metrics"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// iterationStats summarizes search throughput over a set of moves.
type iterationStats struct {
	Moves      int
	Mean       float64
	StdDev     float64
	ReusedFrac float64
}

func summarizeIterations(records []metrics.MoveRecord) iterationStats {
	if len(records) == 0 {
		return iterationStats{}
	}

	iterations := make([]float64, len(records))
	reused := 0
	for i, r := range records {
		iterations[i] = float64(r.Iterations)
		if r.TreeReused {
			reused++
		}
	}

	mean, std := stat.MeanStdDev(iterations, nil)
	return iterationStats{
		Moves:      len(records),
		Mean:       mean,
		StdDev:     std,
		ReusedFrac: float64(reused) / float64(len(records)),
	}
}

func logMatchupSummary(records []metrics.MoveRecord) {
	s := summarizeIterations(records)
	log.Info().
		Int("moves", s.Moves).
		Float64("mean_iterations", s.Mean).
		Float64("stddev_iterations", s.StdDev).
		Float64("tree_reused_frac", s.ReusedFrac).
		Msg("matchup summary")
}
