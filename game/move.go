package game

import "fmt"

// Move is one ply: slide a piece from the origin to the destination, then
// shoot an arrow from the destination to the obstacle square.
type Move struct {
	FromRow, FromCol   int8
	ToRow, ToCol       int8
	ArrowRow, ArrowCol int8
}

// NoMove is the sentinel for "no legal move", using the out-of-range value
// agreed with the protocol layer.
var NoMove = Move{-1, -1, -1, -1, -1, -1}

// IsNone reports whether m is the NoMove sentinel.
func (m Move) IsNone() bool {
	return m.FromRow < 0
}

// NewMove builds a move from six int coordinates in wire order.
func NewMove(fromRow, fromCol, toRow, toCol, arrowRow, arrowCol int) Move {
	return Move{
		FromRow: int8(fromRow), FromCol: int8(fromCol),
		ToRow: int8(toRow), ToCol: int8(toCol),
		ArrowRow: int8(arrowRow), ArrowCol: int8(arrowCol),
	}
}

// Coords returns the six coordinates in wire order.
func (m Move) Coords() [6]int {
	return [6]int{
		int(m.FromRow), int(m.FromCol),
		int(m.ToRow), int(m.ToCol),
		int(m.ArrowRow), int(m.ArrowCol),
	}
}

func (m Move) String() string {
	if m.IsNone() {
		return "none"
	}
	return fmt.Sprintf("(%d,%d)->(%d,%d)x(%d,%d)",
		m.FromRow, m.FromCol, m.ToRow, m.ToCol, m.ArrowRow, m.ArrowCol)
}
