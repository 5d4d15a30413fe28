package game

import (
	"fmt"
	"strings"
)

const (
	// GridSize is the board edge length.
	GridSize = 8
	// NumSquares is the total number of board squares.
	NumSquares = GridSize * GridSize
	// PiecesPerSide is the number of amazons each side owns for the whole game.
	PiecesPerSide = 4
)

// Cell values stored in the grid. Piece cells hold the owning player's value
// directly, so int8(player) round-trips.
const (
	Empty    int8 = 0
	Obstacle int8 = 2
)

// Player identifies a side. The values are chosen so that the opponent is
// the negation, matching the cell encoding.
type Player int8

const (
	Black Player = 1
	White Player = -1
)

func (p Player) Opponent() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return fmt.Sprintf("player(%d)", int8(p))
}

// ParsePlayer converts "black" or "white" into a Player.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	}
	return 0, fmt.Errorf("unknown player %q", s)
}

// directions lists the 8 queen directions in a fixed order. Move generation
// iterates them in this order, which keeps move ordering stable for a fixed
// position.
var directions = [8][2]int8{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board holds an 8×8 Amazons position as a flat grid. The zero value is an
// empty board; use NewBoard for the starting position. Boards are plain
// values: copying the struct is a full, independent clone.
type Board struct {
	cells [NumSquares]int8
}

// NewBoard returns the canonical starting position: four amazons per side on
// the symmetric corner-of-half squares.
func NewBoard() *Board {
	b := &Board{}
	b.cells[0*GridSize+2] = int8(Black)
	b.cells[2*GridSize+0] = int8(Black)
	b.cells[5*GridSize+0] = int8(Black)
	b.cells[7*GridSize+2] = int8(Black)
	b.cells[0*GridSize+5] = int8(White)
	b.cells[2*GridSize+7] = int8(White)
	b.cells[5*GridSize+7] = int8(White)
	b.cells[7*GridSize+5] = int8(White)
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// Cell returns the raw cell value at (row, col).
func (b *Board) Cell(row, col int8) int8 {
	return b.cells[int(row)*GridSize+int(col)]
}

func inBounds(row, col int8) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// Apply plays a move: the origin is vacated, the destination takes the
// moving piece, and the arrow square becomes an obstacle. Apply never
// validates; callers must only pass moves drawn from AppendLegalMoves or
// verified external input.
func (b *Board) Apply(m Move) {
	from := int(m.FromRow)*GridSize + int(m.FromCol)
	to := int(m.ToRow)*GridSize + int(m.ToCol)
	arrow := int(m.ArrowRow)*GridSize + int(m.ArrowCol)
	b.cells[to] = b.cells[from]
	b.cells[from] = Empty
	b.cells[arrow] = Obstacle
}

// AppendLegalMoves appends every legal move for player to dst and returns
// the extended slice. For each piece it slides along the 8 queen directions
// over empty squares; from each landing square it slides again for the
// arrow, with the vacated origin counting as empty for this second leg
// only. An empty result means player has lost.
//
// The dst buffer exists because move generation dominates search cost:
// early positions produce thousands of moves and the caller reuses one
// backing array across iterations.
func (b *Board) AppendLegalMoves(dst []Move, player Player) []Move {
	piece := int8(player)
	for row := int8(0); row < GridSize; row++ {
		for col := int8(0); col < GridSize; col++ {
			if b.cells[int(row)*GridSize+int(col)] != piece {
				continue
			}
			for d := 0; d < 8; d++ {
				dr, dc := directions[d][0], directions[d][1]
				for tr, tc := row+dr, col+dc; inBounds(tr, tc); tr, tc = tr+dr, tc+dc {
					if b.cells[int(tr)*GridSize+int(tc)] != Empty {
						break
					}
					for a := 0; a < 8; a++ {
						ar, ac := directions[a][0], directions[a][1]
						for sr, sc := tr+ar, tc+ac; inBounds(sr, sc); sr, sc = sr+ar, sc+ac {
							cell := b.cells[int(sr)*GridSize+int(sc)]
							if cell != Empty && !(sr == row && sc == col) {
								break
							}
							dst = append(dst, Move{
								FromRow: row, FromCol: col,
								ToRow: tr, ToCol: tc,
								ArrowRow: sr, ArrowCol: sc,
							})
						}
					}
				}
			}
		}
	}
	return dst
}

// LegalMoves returns all legal moves for player in a fresh slice.
func (b *Board) LegalMoves(player Player) []Move {
	return b.AppendLegalMoves(nil, player)
}

// HasLegalMove reports whether player can move at all. It short-circuits on
// the first movable piece, so it is much cheaper than generating the full
// move list when only the terminal condition matters.
func (b *Board) HasLegalMove(player Player) bool {
	piece := int8(player)
	for row := int8(0); row < GridSize; row++ {
		for col := int8(0); col < GridSize; col++ {
			if b.cells[int(row)*GridSize+int(col)] != piece {
				continue
			}
			for d := 0; d < 8; d++ {
				tr := row + directions[d][0]
				tc := col + directions[d][1]
				if inBounds(tr, tc) && b.cells[int(tr)*GridSize+int(tc)] == Empty {
					// Landing square found; the vacated origin is always a
					// legal arrow target from there.
					return true
				}
			}
		}
	}
	return false
}

// String renders the board as 8 rows of 8 runes: '.' empty, 'B'/'W' pieces,
// 'X' obstacles. The format round-trips through ParseBoard.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			switch b.cells[row*GridSize+col] {
			case int8(Black):
				sb.WriteByte('B')
			case int8(White):
				sb.WriteByte('W')
			case Obstacle:
				sb.WriteByte('X')
			default:
				sb.WriteByte('.')
			}
		}
		if row < GridSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard builds a board from 8 rows of 8 runes in the String format.
func ParseBoard(rows []string) (*Board, error) {
	if len(rows) != GridSize {
		return nil, fmt.Errorf("expected %d rows, got %d", GridSize, len(rows))
	}
	b := &Board{}
	var black, white int
	for row, line := range rows {
		if len(line) != GridSize {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", row, GridSize, len(line))
		}
		for col := 0; col < GridSize; col++ {
			switch line[col] {
			case '.':
				b.cells[row*GridSize+col] = Empty
			case 'B':
				b.cells[row*GridSize+col] = int8(Black)
				black++
			case 'W':
				b.cells[row*GridSize+col] = int8(White)
				white++
			case 'X':
				b.cells[row*GridSize+col] = Obstacle
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell %q", row, col, line[col])
			}
		}
	}
	// The evaluator sizes its piece buffers for PiecesPerSide; an overfull
	// board must be rejected here, not crash there.
	if black > PiecesPerSide {
		return nil, fmt.Errorf("%d black pieces, at most %d allowed", black, PiecesPerSide)
	}
	if white > PiecesPerSide {
		return nil, fmt.Errorf("%d white pieces, at most %d allowed", white, PiecesPerSide)
	}
	return b, nil
}
