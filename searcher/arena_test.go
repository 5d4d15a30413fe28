package searcher

import (
	"testing"

	"amazons/game"

	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	t.Run("issued pointers survive arena growth", func(t *testing.T) {
		a := NewArena(3 * arenaChunkSize)

		first := a.NewNode(nil, game.NewMove(0, 2, 0, 3, 0, 2), game.Black)
		require.NotNil(t, first)
		// Force growth across multiple chunks.
		for i := 0; i < 2*arenaChunkSize; i++ {
			require.NotNil(t, a.NewNode(first, game.NoMove, game.White))
		}

		require.Equal(t, game.NewMove(0, 2, 0, 3, 0, 2), first.move,
			"pointer issued before growth should still read its own node")
		require.Equal(t, game.Black, first.mover)
	})

	t.Run("capacity is a hard ceiling", func(t *testing.T) {
		a := NewArena(3)
		for i := 0; i < 3; i++ {
			require.NotNil(t, a.NewNode(nil, game.NoMove, game.Black))
		}
		require.Equal(t, 0, a.Remaining())
		require.Nil(t, a.NewNode(nil, game.NoMove, game.Black),
			"allocation at the ceiling should fail, not grow")
	})

	t.Run("reset is wholesale and reuses storage", func(t *testing.T) {
		a := NewArena(100)
		first := a.NewNode(nil, game.NoMove, game.Black)
		child := a.NewNode(first, game.NewMove(2, 0, 2, 1, 2, 0), game.White)
		first.children = append(first.children, child)
		first.visits = 7
		first.score = 3.5

		a.Reset()
		require.Equal(t, 0, a.Len())

		recycled := a.NewNode(nil, game.NoMove, game.White)
		require.Same(t, first, recycled, "reset should hand back the same storage slot")
		require.Empty(t, recycled.children, "recycled node should carry no stale children")
		require.Zero(t, recycled.visits)
		require.Zero(t, recycled.score)
		require.False(t, recycled.generated)
	})
}
