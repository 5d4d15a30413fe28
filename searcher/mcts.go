package searcher

import (
	"time"

	"amazons/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(*MCTS)

// WithArenaCapacity bounds the node arena. The ceiling is hard: once
// reached, searches keep refining the existing tree without expanding.
func WithArenaCapacity(capacity int) Option {
	return func(m *MCTS) {
		if capacity > 0 {
			m.arena = NewArena(capacity)
		}
	}
}

// WithSeed fixes the expansion-sampling RNG so searches are reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMaxIterations caps the number of iterations per search in addition
// to the deadline. Zero means deadline-only. Combined with WithSeed this
// makes a search fully reproducible.
func WithMaxIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.maxIterations = int64(iterations)
		}
	}
}

// MCTS runs deadline-bounded Monte-Carlo tree search with a static
// evaluator in place of rollouts. The tree persists across searches: after
// each played move, Advance re-roots the tree on the matching child so the
// next search starts from accumulated statistics instead of cold.
//
// MCTS is single-threaded; the arena and tree are mutated only by the
// running search.
type MCTS struct {
	arena         *Arena
	root          *Node
	rng           *rand.Rand
	eval          *game.Evaluator
	maxIterations int64
	metrics       metricsCollector
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		eval: game.NewEvaluator(),
	}
	for _, option := range options {
		option(m)
	}
	if m.arena == nil {
		m.arena = NewArena(DefaultArenaCapacity)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Search iterates until deadline and returns the most-visited root child's
// move. The board is never mutated; player is the side to move and turn
// drives the evaluation phase and the exploration constant. A NoMove
// result means player has no legal move at all. With an expired deadline
// the search still answers: the first untried root move is the fallback
// when not a single iteration completed.
func (m *MCTS) Search(board *game.Board, player game.Player, turn int, deadline time.Time) (game.Move, SearchMetrics) {
	m.metrics.start()

	if m.root != nil && m.root.mover != player.Opponent() {
		// The replayed history and the retained tree disagree; a search from
		// this root would produce moves for the wrong side.
		log.Warn().Msg("retained root does not match side to move, discarding tree")
		m.Reset()
	}
	if m.root != nil && m.arena.Remaining() < arenaReserve(m.arena.capacity) {
		log.Debug().Int("nodes", m.arena.Len()).Msg("arena nearly exhausted, discarding retained tree")
		m.Reset()
	}

	if m.root == nil {
		m.root = m.arena.NewNode(nil, game.NoMove, player.Opponent())
	} else {
		m.metrics.reusedTree()
	}
	if !m.root.generated {
		m.root.untried = board.AppendLegalMoves(m.root.untried[:0], player)
		m.root.generated = true
	}

	c := explorationConstant(turn)
	for time.Now().Before(deadline) {
		if m.maxIterations > 0 && m.metrics.iterations.Load() >= m.maxIterations {
			break
		}
		if !m.simulate(board, player, turn, c, deadline) {
			break
		}
	}

	metrics := m.metrics.complete(m.arena.Len())
	if best := m.root.bestChild(); best != nil {
		return best.move, metrics
	}
	if len(m.root.untried) > 0 {
		// Deadline expired before a single expansion completed; any legal
		// move beats forfeiting.
		return m.root.untried[0], metrics
	}
	return game.NoMove, metrics
}

// simulate runs one selection/expansion/evaluation/backpropagation pass.
// It returns false when the deadline interrupted the pass before any node
// statistics were touched; once a child has been created the pass always
// runs to completion so the tree never holds an unvisited node.
func (m *MCTS) simulate(rootBoard *game.Board, rootPlayer game.Player, turn int, c float64, deadline time.Time) bool {
	node := m.root
	board := *rootBoard
	toMove := rootPlayer

	for node.generated && len(node.untried) == 0 && len(node.children) > 0 {
		node = node.selectChild(c)
		board.Apply(node.move)
		toMove = toMove.Opponent()
	}

	var value float64
	terminal := false
	committed := false

	if len(node.untried) > 0 {
		// Move generation for the new child is the expensive sub-step;
		// don't start it once the clock has run out.
		if time.Now().After(deadline) {
			return false
		}
		if m.arena.Remaining() > 0 {
			mover := toMove
			mv := node.takeUntried(m.rng)
			board.Apply(mv)
			toMove = toMove.Opponent()

			child := m.arena.NewNode(node, mv, mover)
			child.untried = board.AppendLegalMoves(child.untried[:0], toMove)
			child.generated = true
			node.children = append(node.children, child)
			node = child
			committed = true
			m.metrics.addExpansion()

			if len(child.untried) == 0 {
				// toMove is stuck, so the mover who stranded them wins.
				terminal = true
				if mover == rootPlayer {
					value = 1.0
				}
			}
		}
		// At capacity the tree stops growing, but the iteration still
		// evaluates the selected node and backpropagates, spending the
		// remaining budget on refining existing statistics.
	} else if len(node.children) == 0 {
		// Terminal node reached again through selection.
		terminal = true
		if node.mover == rootPlayer {
			value = 1.0
		}
	}

	if !terminal {
		if !committed && time.Now().After(deadline) {
			return false
		}
		value = m.eval.Evaluate(&board, rootPlayer, turn)
	}

	for n := node; n != nil; n = n.parent {
		n.visits++
		if n.mover == rootPlayer {
			n.score += value
		} else {
			n.score += 1 - value
		}
	}
	m.metrics.addIteration()
	return true
}

// Advance maps an actually-played move onto the tree. When the move matches
// a root child, that child becomes the new root and its siblings become
// unreachable garbage, collected wholesale at the next Reset. When it does
// not, the whole tree is discarded and the next search starts cold.
func (m *MCTS) Advance(move game.Move) {
	if m.root == nil {
		return
	}
	for _, child := range m.root.children {
		if child.move == move {
			child.parent = nil
			m.root = child
			return
		}
	}
	m.Reset()
}

// Reset discards the tree and invalidates the arena in one step.
func (m *MCTS) Reset() {
	m.arena.Reset()
	m.root = nil
}

// TreeSize returns the number of arena nodes allocated since the last
// reset, reachable or not.
func (m *MCTS) TreeSize() int {
	return m.arena.Len()
}

// RootValue returns the mean score of the current root from the
// perspective of the side that moved into it, or 0.5 when there is no
// sampled root. After Advance it is the win estimate for the move just
// played.
func (m *MCTS) RootValue() float64 {
	if m.root == nil || m.root.Visits() == 0 {
		return 0.5
	}
	return m.root.Mean()
}
