package chess

import (
	"errors"
	"fmt"
)

var ErrDuplicateKing = errors.New("board has more than one king of a color")

// Board maps every square to a piece or empty. It is a value type: assigning or
// returning a Board copies all 64 cells, so no two boards ever share rows.
type Board struct {
	cells [8][8]Piece
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StandardBoard returns the initial position.
func StandardBoard() Board {
	var b Board
	for col, t := range backRank {
		b.cells[0][col] = Piece{Type: t, Color: Black}
		b.cells[1][col] = Piece{Type: Pawn, Color: Black}
		b.cells[6][col] = Piece{Type: Pawn, Color: White}
		b.cells[7][col] = Piece{Type: t, Color: White}
	}
	return b
}

// PieceAt reports the piece on sq. Off-board squares read as empty.
func (b Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b.cells[sq.Row][sq.Col]
	return p, !p.IsEmpty()
}

func (b Board) IsEmpty(sq Square) bool {
	_, ok := b.PieceAt(sq)
	return !ok
}

// Clone returns an independent copy.
func (b Board) Clone() Board { return b }

// WithMove relocates the piece at m.From onto m.To, overwriting whatever stood
// there, and clears m.From. No legality checking happens here.
func (b Board) WithMove(m Move) Board {
	mustBeOnBoard(m.From)
	mustBeOnBoard(m.To)
	p := b.cells[m.From.Row][m.From.Col]
	b.cells[m.From.Row][m.From.Col] = Piece{}
	b.cells[m.To.Row][m.To.Col] = p
	return b
}

// With returns a copy with p placed on sq.
func (b Board) With(sq Square, p Piece) Board {
	mustBeOnBoard(sq)
	b.cells[sq.Row][sq.Col] = p
	return b
}

// Without returns a copy with sq cleared.
func (b Board) Without(sq Square) Board { return b.With(sq, Piece{}) }

// Each calls fn for every occupied square in row-major order.
func (b Board) Each(fn func(sq Square, p Piece)) {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if p := b.cells[r][c]; !p.IsEmpty() {
				fn(Square{Row: r, Col: c}, p)
			}
		}
	}
}

// Squares lists the squares holding pieces of color c in row-major order.
func (b Board) Squares(c Color) []Square {
	out := make([]Square, 0, 16)
	b.Each(func(sq Square, p Piece) {
		if p.Color == c {
			out = append(out, sq)
		}
	})
	return out
}

// Validate rejects boards that can never come from legal play in a way the
// engine relies on. Missing kings are tolerated.
func (b Board) Validate() error {
	var kings [2]int
	b.Each(func(_ Square, p Piece) {
		if p.Type == King {
			kings[p.Color]++
		}
	})
	for c, n := range kings {
		if n > 1 {
			return fmt.Errorf("%w: %d %s kings", ErrDuplicateKing, n, Color(c))
		}
	}
	return nil
}

// Material sums piece values per color.
func (b Board) Material() (white, black int) {
	b.Each(func(_ Square, p Piece) {
		if p.Color == White {
			white += p.Type.Value()
		} else {
			black += p.Type.Value()
		}
	})
	return white, black
}

// Letters projects the board into piece letters ("" for empty), row 0 first.
func (b Board) Letters() [8][8]string {
	var out [8][8]string
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			out[r][c] = b.cells[r][c].Letter()
		}
	}
	return out
}

func (b Board) String() string { return b.Placement() }

func mustBeOnBoard(sq Square) {
	if !sq.Valid() {
		panic(fmt.Sprintf("chess: square %v out of bounds", sq))
	}
}
