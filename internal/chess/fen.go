package chess

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// Placement renders the piece-placement field of FEN, rank 8 (row 0) first.
func (b Board) Placement() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		empty := 0
		for c := 0; c < 8; c++ {
			p := b.cells[r][c]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FEN renders a full FEN record. Castling and en passant are not modeled, so
// those fields are always "-".
func (b Board) FEN(side Color) string {
	turn := "w"
	if side == Black {
		turn = "b"
	}
	return b.Placement() + " " + turn + " - - 0 1"
}

// ParseFEN reads the placement and side-to-move fields of a FEN record; the
// remaining fields are ignored. A bare placement defaults to White to move.
func ParseFEN(raw string) (Board, Color, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Board{}, White, fmt.Errorf("%w: empty", ErrInvalidFEN)
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Board{}, White, fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	var b Board
	for r, rank := range ranks {
		c := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			p, ok := PieceFromLetter(ch)
			if !ok {
				return Board{}, White, fmt.Errorf("%w: bad piece %q", ErrInvalidFEN, ch)
			}
			if c > 7 {
				return Board{}, White, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, 8-r)
			}
			b.cells[r][c] = p
			c++
		}
		if c != 8 {
			return Board{}, White, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-r, c)
		}
	}

	side := White
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
		case "b":
			side = Black
		default:
			return Board{}, White, fmt.Errorf("%w: bad side %q", ErrInvalidFEN, fields[1])
		}
	}
	if err := b.Validate(); err != nil {
		return Board{}, White, err
	}
	return b, side, nil
}
