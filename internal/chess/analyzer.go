package chess

import "fmt"

// FindKing locates c's king. A board holding two kings of one color is an
// engine bug and panics.
func FindKing(b Board, c Color) (Square, bool) {
	var (
		found Square
		ok    bool
	)
	b.Each(func(sq Square, p Piece) {
		if p.Type != King || p.Color != c {
			return
		}
		if ok {
			panic(fmt.Sprintf("chess: multiple %s kings (%s, %s)", c, found, sq))
		}
		found, ok = sq, true
	})
	return found, ok
}

// IsSquareAttacked reports whether any piece of color by could capture an
// opposing piece standing on sq. Only capture geometry is consulted, never the
// self-check filter.
func IsSquareAttacked(b Board, sq Square, by Color) bool {
	if !sq.Valid() {
		return false
	}
	if b.IsEmpty(sq) {
		// pawns only move diagonally onto occupied squares
		b = b.With(sq, Piece{Type: Pawn, Color: by.Opposite()})
	}
	for _, from := range b.Squares(by) {
		if IsPseudoLegalMove(b, from, sq) {
			return true
		}
	}
	return false
}

// IsKingInCheck reports whether c's king is attacked. A board without a king of
// that color is never in check.
func IsKingInCheck(b Board, c Color) bool {
	kingSq, ok := FindKing(b, c)
	if !ok {
		return false
	}
	return IsSquareAttacked(b, kingSq, c.Opposite())
}

// LegalMoves filters PseudoLegalMoves down to the destinations that do not
// leave the mover's own king in check.
func LegalMoves(b Board, from Square) []Square {
	p, ok := b.PieceAt(from)
	if !ok {
		return nil
	}
	candidates := PseudoLegalMoves(b, from)
	out := candidates[:0]
	for _, to := range candidates {
		if !IsKingInCheck(b.WithMove(Move{From: from, To: to}), p.Color) {
			out = append(out, to)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsLegalMove reports whether from→to is in LegalMoves(b, from).
func IsLegalMove(b Board, from, to Square) bool {
	if !IsPseudoLegalMove(b, from, to) {
		return false
	}
	p, _ := b.PieceAt(from)
	return !IsKingInCheck(b.WithMove(Move{From: from, To: to}), p.Color)
}

// AllLegalMoves flattens LegalMoves over every piece of color c, in row-major
// order of the origin square.
func AllLegalMoves(b Board, c Color) []Move {
	var out []Move
	for _, from := range b.Squares(c) {
		for _, to := range LegalMoves(b, from) {
			out = append(out, Move{From: from, To: to})
		}
	}
	return out
}

func HasAnyLegalMove(b Board, c Color) bool {
	for _, from := range b.Squares(c) {
		if len(LegalMoves(b, from)) > 0 {
			return true
		}
	}
	return false
}

// Classify evaluates the position for c, the side about to move.
func Classify(b Board, c Color) Status {
	inCheck := IsKingInCheck(b, c)
	if HasAnyLegalMove(b, c) {
		if inCheck {
			return Check
		}
		return Ongoing
	}
	if inCheck {
		return Checkmate
	}
	return Stalemate
}
