package chess

type offset struct{ dr, dc int }

var (
	knightOffsets = [8]offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8]offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	rookDirs      = [4]offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs    = [4]offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// pawnDirection is the row delta of a forward pawn step.
func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// PseudoLegalMoves lists every destination the piece on from can reach by its
// movement rules, ignoring whether its own king would be left in check.
// An empty or off-board from yields nil.
func PseudoLegalMoves(b Board, from Square) []Square {
	p, ok := b.PieceAt(from)
	if !ok {
		return nil
	}

	var out []Square
	switch p.Type {
	case Pawn:
		out = pawnMoves(b, from, p.Color)
	case Knight:
		out = stepMoves(b, from, p.Color, knightOffsets[:])
	case King:
		out = stepMoves(b, from, p.Color, kingOffsets[:])
	case Rook:
		out = slideMoves(b, from, p.Color, rookDirs[:], nil)
	case Bishop:
		out = slideMoves(b, from, p.Color, bishopDirs[:], nil)
	case Queen:
		out = slideMoves(b, from, p.Color, rookDirs[:], nil)
		out = slideMoves(b, from, p.Color, bishopDirs[:], out)
	}
	return out
}

func pawnMoves(b Board, from Square, c Color) []Square {
	var out []Square
	dir := pawnDirection(c)

	one := from.Offset(dir, 0)
	if one.Valid() && b.IsEmpty(one) {
		out = append(out, one)
		two := from.Offset(2*dir, 0)
		if from.Row == pawnStartRow(c) && two.Valid() && b.IsEmpty(two) {
			out = append(out, two)
		}
	}
	for _, dc := range [2]int{-1, 1} {
		diag := from.Offset(dir, dc)
		if target, ok := b.PieceAt(diag); ok && target.Color != c {
			out = append(out, diag)
		}
	}
	return out
}

func stepMoves(b Board, from Square, c Color, offsets []offset) []Square {
	out := make([]Square, 0, len(offsets))
	for _, o := range offsets {
		to := from.Offset(o.dr, o.dc)
		if !to.Valid() {
			continue
		}
		if target, ok := b.PieceAt(to); ok && target.Color == c {
			continue
		}
		out = append(out, to)
	}
	return out
}

func slideMoves(b Board, from Square, c Color, dirs []offset, out []Square) []Square {
	for _, d := range dirs {
		for to := from.Offset(d.dr, d.dc); to.Valid(); to = to.Offset(d.dr, d.dc) {
			target, ok := b.PieceAt(to)
			if !ok {
				out = append(out, to)
				continue
			}
			if target.Color != c {
				out = append(out, to)
			}
			break
		}
	}
	return out
}

// IsPseudoLegalMove reports whether the piece on from may move to to under its
// movement rules alone. It is the predicate form of PseudoLegalMoves and is
// also the capture geometry used for attack detection.
func IsPseudoLegalMove(b Board, from, to Square) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	p, ok := b.PieceAt(from)
	if !ok {
		return false
	}
	target, occupied := b.PieceAt(to)
	if occupied && target.Color == p.Color {
		return false
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col
	adr, adc := abs(dr), abs(dc)

	switch p.Type {
	case Pawn:
		dir := pawnDirection(p.Color)
		if dc == 0 && !occupied {
			if dr == dir {
				return true
			}
			return from.Row == pawnStartRow(p.Color) && dr == 2*dir && b.IsEmpty(from.Offset(dir, 0))
		}
		return adc == 1 && dr == dir && occupied
	case Knight:
		return (adr == 1 && adc == 2) || (adr == 2 && adc == 1)
	case King:
		return adr <= 1 && adc <= 1
	case Rook:
		return (dr == 0 || dc == 0) && pathClear(b, from, to)
	case Bishop:
		return adr == adc && pathClear(b, from, to)
	case Queen:
		return (dr == 0 || dc == 0 || adr == adc) && pathClear(b, from, to)
	}
	return false
}

// pathClear reports whether every square strictly between from and to is
// empty. from and to must share a row, column or diagonal.
func pathClear(b Board, from, to Square) bool {
	step := offset{sign(to.Row - from.Row), sign(to.Col - from.Col)}
	for sq := from.Offset(step.dr, step.dc); sq != to; sq = sq.Offset(step.dr, step.dc) {
		if !b.IsEmpty(sq) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
