package game

// Evaluation weights depend on how far the game has progressed. Each row
// weights the five components (queen territory, king territory, queen
// position, king position, mobility). Turns are 1-based as delivered by the
// protocol; early covers turns 1-10, middle 11-20, late everything after.
var (
	earlyWeights  = [5]float64{0.08, 0.06, 0.60, 0.68, 0.02}
	middleWeights = [5]float64{0.13, 0.15, 0.45, 0.51, 0.07}
	lateWeights   = [5]float64{0.11, 0.15, 0.38, 0.45, 0.10}
)

const (
	earlyPhaseLastTurn  = 10
	middlePhaseLastTurn = 20
)

func phaseWeights(turn int) *[5]float64 {
	switch {
	case turn <= earlyPhaseLastTurn:
		return &earlyWeights
	case turn <= middlePhaseLastTurn:
		return &middleWeights
	default:
		return &lateWeights
	}
}
