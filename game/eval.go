package game

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// unreachable marks squares the BFS never reached.
const unreachable = 99

// evalScale compresses the weighted component sum before the sigmoid so
// mid-game scores land on the informative part of the curve.
const evalScale = 0.2

// pow2[d] = 2^-d for the queen-position decay, distances 1..7.
var pow2 = [8]float64{0, 0.5, 0.25, 0.125, 0.0625, 0.03125, 0.015625, 0.0078125}

// Evaluator turns a position into a win-probability estimate for one side.
// It owns its BFS scratch buffers, so a single Evaluator value evaluates
// any number of positions without allocating; it is not safe for concurrent
// use.
type Evaluator struct {
	dist   [2][NumSquares]int8
	queue  [NumSquares]int16
	pieces [2][PiecesPerSide]int16
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the probability in (0,1) that perspective wins, given
// the turn number for phase weighting. The board is never mutated.
//
// Five components are computed as perspective-minus-opponent differences
// from two multi-source king-step BFS runs over empty squares:
//
//  1. queen territory: squares reachable at any finite distance
//  2. king territory: squares at distance 1-3, weighted 3/2/1
//  3. queen position: squares at distance 1-7, weighted 2^-d
//  4. king position: squares at distance 1-6, weighted 1/(d+1)
//  5. mobility: single queen-slide squares per piece, capped at 7 per
//     direction, ignoring the arrow leg
//
// The phase-weighted sum is squashed by a logistic, so 0.5 is an even
// position.
func (e *Evaluator) Evaluate(b *Board, perspective Player, turn int) float64 {
	var counts [2]int
	for i := 0; i < NumSquares; i++ {
		switch b.cells[i] {
		case int8(perspective):
			e.pieces[0][counts[0]] = int16(i)
			counts[0]++
		case int8(perspective.Opponent()):
			e.pieces[1][counts[1]] = int16(i)
			counts[1]++
		}
	}

	e.bfs(b, e.pieces[0][:counts[0]], &e.dist[0])
	e.bfs(b, e.pieces[1][:counts[1]], &e.dist[1])

	var comps [5]float64
	for side := 0; side < 2; side++ {
		sign := 1.0
		if side == 1 {
			sign = -1.0
		}
		dist := &e.dist[side]
		for i := 0; i < NumSquares; i++ {
			if b.cells[i] != Empty {
				continue
			}
			d := int(dist[i])
			if d >= unreachable {
				continue
			}
			comps[0] += sign
			if d <= 3 {
				comps[1] += sign * float64(4-d)
			}
			if d <= 7 {
				comps[2] += sign * pow2[d]
			}
			if d <= 6 {
				comps[3] += sign / float64(d+1)
			}
		}
	}
	comps[4] = float64(e.mobility(b, e.pieces[0][:counts[0]]) - e.mobility(b, e.pieces[1][:counts[1]]))

	weights := phaseWeights(turn)
	score := floats.Dot(weights[:], comps[:]) * evalScale
	return 1.0 / (1.0 + math.Exp(-score))
}

// bfs runs a multi-source breadth-first search from all source squares at
// once, expanding king-step over empty squares only. Distances increase
// monotonically along the queue, so each square is pushed at most once.
func (e *Evaluator) bfs(b *Board, sources []int16, dist *[NumSquares]int8) {
	for i := range dist {
		dist[i] = unreachable
	}
	head, tail := 0, 0
	for _, s := range sources {
		dist[s] = 0
		e.queue[tail] = s
		tail++
	}
	for head < tail {
		cur := int(e.queue[head])
		head++
		next := dist[cur] + 1
		row := int8(cur / GridSize)
		col := int8(cur % GridSize)
		for d := 0; d < 8; d++ {
			nr := row + directions[d][0]
			nc := col + directions[d][1]
			if !inBounds(nr, nc) {
				continue
			}
			idx := int(nr)*GridSize + int(nc)
			if b.cells[idx] == Empty && dist[idx] > next {
				dist[idx] = next
				e.queue[tail] = int16(idx)
				tail++
			}
		}
	}
}

func (e *Evaluator) mobility(b *Board, pieces []int16) int {
	total := 0
	for _, p := range pieces {
		row := int8(p / GridSize)
		col := int8(p % GridSize)
		for d := 0; d < 8; d++ {
			dr, dc := directions[d][0], directions[d][1]
			steps := 0
			for nr, nc := row+dr, col+dc; inBounds(nr, nc) && steps < 7; nr, nc = nr+dr, nc+dc {
				if b.cells[int(nr)*GridSize+int(nc)] != Empty {
					break
				}
				total++
				steps++
			}
		}
	}
	return total
}
