package searcher

import "amazons/game"

// arenaChunkSize is the number of nodes per slab chunk. Chunks are never
// reallocated or moved once created, which is what keeps issued *Node
// pointers valid while the arena grows.
const arenaChunkSize = 4096

// Arena hands out Node storage from fixed-size chunks. Any pointer returned
// by NewNode stays dereferenceable until Reset, no matter how much the
// arena grows afterwards. Reset invalidates everything at once and reuses
// the chunks, so tearing down a large tree costs nothing proportional to
// its node count.
type Arena struct {
	chunks   [][]Node
	capacity int
	used     int
}

// NewArena creates an arena with a hard node ceiling. Storage is grown
// chunk by chunk on demand, so an oversized capacity costs nothing until
// the tree actually reaches it.
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultArenaCapacity
	}
	return &Arena{capacity: capacity}
}

// NewNode allocates an initialized node, or returns nil when the arena is
// at capacity. Child and untried-move slices retained by a recycled node
// keep their backing arrays, so long-running searches stop allocating once
// the slices have grown to their working sizes.
func (a *Arena) NewNode(parent *Node, move game.Move, mover game.Player) *Node {
	if a.used >= a.capacity {
		return nil
	}
	chunk := a.used / arenaChunkSize
	if chunk == len(a.chunks) {
		a.chunks = append(a.chunks, make([]Node, arenaChunkSize))
	}
	n := &a.chunks[chunk][a.used%arenaChunkSize]
	a.used++

	n.parent = parent
	n.move = move
	n.mover = mover
	n.children = n.children[:0]
	n.untried = n.untried[:0]
	n.generated = false
	n.score = 0
	n.visits = 0
	return n
}

// Len returns the number of live allocations since the last Reset.
func (a *Arena) Len() int {
	return a.used
}

// Remaining returns how many more nodes fit before the ceiling.
func (a *Arena) Remaining() int {
	return a.capacity - a.used
}

// Reset invalidates every outstanding node at once. Storage is kept for
// reuse; the cost is O(1) regardless of how large the tree was.
func (a *Arena) Reset() {
	a.used = 0
}
