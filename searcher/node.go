package searcher

import (
	"math"

	"amazons/game"

	"golang.org/x/exp/rand"
)

// Node is one ply of the search tree. All nodes live in an Arena; parent
// and children are non-owning pointers into it. score accumulates
// continuous evaluation outputs (not win/loss counts), from the viewpoint
// of mover, so score/visits always lies in [0,1].
type Node struct {
	parent   *Node
	move     game.Move
	mover    game.Player // the player who made move
	children []*Node
	untried  []game.Move
	// generated distinguishes "untried not yet computed" from "computed and
	// empty"; the latter is the terminal (loss) signal.
	generated bool
	score     float64
	visits    int
}

// Move returns the move that led to this node.
func (n *Node) Move() game.Move {
	return n.move
}

// Visits returns the number of completed backpropagation passes through n.
func (n *Node) Visits() int {
	return n.visits
}

// Mean returns the average evaluation outcome for n's mover.
func (n *Node) Mean() float64 {
	return n.score / float64(n.visits)
}

// selectChild returns the child maximizing the UCB1 score
// mean + c*sqrt(ln(parentVisits)/childVisits). Ties resolve to the first
// child encountered, which keeps selection deterministic. Every child has
// been visited by its creating iteration, so child visits are never zero.
func (n *Node) selectChild(c float64) *Node {
	if n.visits == 0 {
		panic("selectChild on unvisited node")
	}
	logVisits := math.Log(float64(n.visits))
	var best *Node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		cv := float64(child.visits)
		score := child.score/cv + c*math.Sqrt(logVisits/cv)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// takeUntried removes and returns a uniformly random untried move using
// swap-with-last, an O(1) removal that does not preserve order.
func (n *Node) takeUntried(rng *rand.Rand) game.Move {
	i := rng.Intn(len(n.untried))
	last := len(n.untried) - 1
	m := n.untried[i]
	n.untried[i] = n.untried[last]
	n.untried = n.untried[:last]
	return m
}

// bestChild returns the most-visited child, or nil when there are none.
// Visit count, not mean value, picks the final move: under UCB1 bad lines
// stop accumulating visits, so the count is the de-biased proxy.
func (n *Node) bestChild() *Node {
	var best *Node
	maxVisits := -1
	for _, child := range n.children {
		if child.visits > maxVisits {
			maxVisits = child.visits
			best = child
		}
	}
	return best
}
