package chess

import (
	"fmt"
	"strings"
)

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Title is the capitalised side name used in move notes.
func (c Color) Title() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// ParseColor accepts "white"/"w" and "black"/"b" in any case.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return White, false
}

// PieceType is the kind of a piece. The zero value means "no piece".
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	case NoPieceType:
		return ""
	default:
		return fmt.Sprintf("piece(%d)", p)
	}
}

// Value is the conventional material value; kings count zero.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

// Piece is an immutable colored piece. Piece{} is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

func NewPiece(c Color, t PieceType) Piece { return Piece{Type: t, Color: c} }

func (p Piece) IsEmpty() bool { return p.Type == NoPieceType }

// Letter returns the piece letter, upper case for White and lower case for Black.
// Empty squares yield "".
func (p Piece) Letter() string {
	s := p.Type.String()
	if p.IsEmpty() || p.Color == White {
		return s
	}
	return string(s[0] + ('a' - 'A'))
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + pieceNames[p.Type]
}

var pieceNames = map[PieceType]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

// PieceFromLetter is the inverse of Letter.
func PieceFromLetter(r byte) (Piece, bool) {
	c := White
	if r >= 'a' && r <= 'z' {
		c = Black
		r -= 'a' - 'A'
	}
	var t PieceType
	switch r {
	case 'P':
		t = Pawn
	case 'N':
		t = Knight
	case 'B':
		t = Bishop
	case 'R':
		t = Rook
	case 'Q':
		t = Queen
	case 'K':
		t = King
	default:
		return Piece{}, false
	}
	return Piece{Type: t, Color: c}, true
}
