package searcher

import "math"

// Hyperparameters for the search.

// DefaultArenaCapacity bounds worst-case memory at roughly
// 250k nodes × node size, the ceiling the engine was tuned against.
const DefaultArenaCapacity = 250_000

// arenaReserve is the headroom below the ceiling at which a retained tree
// is discarded before the next search rather than reused: a turn that can
// barely expand is worth less than a cold tree with room to grow. The
// reserve scales down with small arenas so a tight ceiling does not turn
// every reuse into a cold start.
func arenaReserve(capacity int) int {
	if reserve := capacity / 8; reserve < arenaChunkSize {
		return reserve
	}
	return arenaChunkSize
}

// Exploration constant decay. Early turns explore more; as the game
// matures the constant shrinks toward exploitation.
const (
	explorationBase  = 0.177
	explorationDecay = 0.008
	explorationShift = 1.41
)

func explorationConstant(turn int) float64 {
	return explorationBase * math.Exp(-explorationDecay*(float64(turn)-explorationShift))
}
