package chess

import (
	"fmt"
	"strings"
)

// Square addresses a board cell by array indices. Row 0 is Black's home row,
// row 7 is White's; a display layer maps this to algebraic notation.
type Square struct {
	Row int
	Col int
}

func Sq(row, col int) Square { return Square{Row: row, Col: col} }

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// Offset returns the square shifted by (dr, dc); the result may be off-board.
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// String renders algebraic coordinates: file 'a'+col, rank 8-row.
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{byte('a' + s.Col), byte('0' + 8 - s.Row)})
}

// ParseSquare converts "e2" style coordinates into a Square.
func ParseSquare(raw string) (Square, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if len(v) != 2 {
		return Square{}, false
	}
	file, rank := v[0], v[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, false
	}
	return Square{Row: 8 - int(rank-'0'), Col: int(file - 'a')}, true
}

// Move is a relocation request; it only has meaning relative to a Board.
type Move struct {
	From Square
	To   Square
}

// String renders coordinate notation, e.g. "e2e4".
func (m Move) String() string { return m.From.String() + m.To.String() }

// ParseMove accepts coordinate notation ("e2e4", "e2-e4").
func ParseMove(raw string) (Move, bool) {
	v := strings.ReplaceAll(strings.TrimSpace(raw), "-", "")
	if len(v) != 4 {
		return Move{}, false
	}
	from, ok := ParseSquare(v[:2])
	if !ok {
		return Move{}, false
	}
	to, ok := ParseSquare(v[2:])
	if !ok {
		return Move{}, false
	}
	return Move{From: from, To: to}, true
}
