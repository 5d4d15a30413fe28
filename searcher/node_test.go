package searcher

import (
	"testing"

	"amazons/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSelectChild(t *testing.T) {
	t.Run("picks the child with the highest UCB score", func(t *testing.T) {
		strong := &Node{move: game.NewMove(0, 2, 0, 3, 0, 2), score: 3.0, visits: 4}
		weak := &Node{move: game.NewMove(2, 0, 2, 1, 2, 0), score: 0.5, visits: 4}
		parent := &Node{visits: 8, children: []*Node{weak, strong}}

		require.Same(t, strong, parent.selectChild(0.1),
			"higher mean at equal visits should win")
	})

	t.Run("exploration bonus favors the unvisited line", func(t *testing.T) {
		exploited := &Node{score: 9.0, visits: 100}
		neglected := &Node{score: 0.6, visits: 1}
		parent := &Node{visits: 101, children: []*Node{exploited, neglected}}

		require.Same(t, neglected, parent.selectChild(2.0),
			"a large exploration constant should pull selection to the rare child")
	})

	t.Run("ties resolve to the first child encountered", func(t *testing.T) {
		first := &Node{score: 1.0, visits: 2}
		second := &Node{score: 1.0, visits: 2}
		parent := &Node{visits: 4, children: []*Node{first, second}}

		require.Same(t, first, parent.selectChild(0.177))
	})

	t.Run("panics on an unvisited node", func(t *testing.T) {
		parent := &Node{children: []*Node{{score: 1, visits: 1}}}
		require.Panics(t, func() { parent.selectChild(0.177) })
	})
}

func TestTakeUntried(t *testing.T) {
	moves := []game.Move{
		game.NewMove(0, 2, 0, 3, 0, 2),
		game.NewMove(2, 0, 2, 1, 2, 0),
		game.NewMove(5, 0, 5, 1, 5, 0),
	}
	node := &Node{untried: append([]game.Move(nil), moves...)}
	rng := rand.New(rand.NewSource(1))

	seen := map[game.Move]bool{}
	for i := len(moves); i > 0; i-- {
		m := node.takeUntried(rng)
		require.False(t, seen[m], "each move should be taken once")
		seen[m] = true
		require.Len(t, node.untried, i-1, "removal should be by swap-with-last")
	}
	require.Len(t, seen, len(moves))
}

func TestBestChild(t *testing.T) {
	t.Run("most visited wins regardless of mean value", func(t *testing.T) {
		visited := &Node{score: 40, visits: 100}
		lucky := &Node{score: 4.9, visits: 5}
		parent := &Node{children: []*Node{lucky, visited}}

		require.Same(t, visited, parent.bestChild(),
			"visit count, not mean value, should pick the final move")
	})

	t.Run("nil without children", func(t *testing.T) {
		require.Nil(t, (&Node{}).bestChild())
	})
}
