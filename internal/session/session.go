package session

import (
	"fmt"
	"slices"

	"github.com/park285/gamehub/internal/chess"
)

// GameSession is an immutable game snapshot. Every transition returns a new
// session and leaves the receiver untouched.
type GameSession struct {
	board     chess.Board
	side      chess.Color
	status    chess.Status
	winner    chess.Color
	hasWinner bool
	records   []MoveRecord
	captured  [2][]chess.Piece // indexed by capturing color
	notes     Notes
}

type Option func(*GameSession)

// WithNotes sets the renderer for annotations and notes. A nil Notes keeps the
// built-in English text.
func WithNotes(n Notes) Option {
	return func(s *GameSession) { s.notes = n }
}

// New starts a game from the standard position with White to move.
func New(opts ...Option) *GameSession {
	return FromPosition(chess.StandardBoard(), chess.White, opts...)
}

// FromPosition starts a game from an arbitrary board. The status is classified
// for side; a board that fails Validate panics.
func FromPosition(b chess.Board, side chess.Color, opts ...Option) *GameSession {
	if err := b.Validate(); err != nil {
		panic(fmt.Sprintf("session: %v", err))
	}
	s := &GameSession{board: b, side: side, notes: defaultNotes()}
	for _, opt := range opts {
		opt(s)
	}
	s.status = chess.Classify(b, side)
	if s.status == chess.Checkmate {
		s.winner, s.hasWinner = side.Opposite(), true
	}
	return s
}

func (s *GameSession) Board() chess.Board      { return s.board }
func (s *GameSession) SideToMove() chess.Color { return s.side }
func (s *GameSession) Status() chess.Status    { return s.status }
func (s *GameSession) Over() bool              { return s.status.Terminal() }

// Winner is unset while the game runs and after a stalemate.
func (s *GameSession) Winner() (chess.Color, bool) { return s.winner, s.hasWinner }

func (s *GameSession) FEN() string { return s.board.FEN(s.side) }

// Records returns a copy of the move log.
func (s *GameSession) Records() []MoveRecord { return slices.Clone(s.records) }

// Plies counts board moves, excluding resignations.
func (s *GameSession) Plies() int {
	n := 0
	for _, r := range s.records {
		if r.Kind == KindMove {
			n++
		}
	}
	return n
}

// LastMove returns the most recent board move.
func (s *GameSession) LastMove() (MoveRecord, bool) {
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].Kind == KindMove {
			return s.records[i], true
		}
	}
	return MoveRecord{}, false
}

// Annotations flattens the log into display lines: each move text followed by
// its note when present.
func (s *GameSession) Annotations() []string {
	out := make([]string, 0, len(s.records))
	for _, r := range s.records {
		if r.Annotation != "" {
			out = append(out, r.Annotation)
		}
		if r.Note != "" {
			out = append(out, r.Note)
		}
	}
	return out
}

// Captured returns the pieces taken by c, in capture order.
func (s *GameSession) Captured(c chess.Color) []chess.Piece {
	return slices.Clone(s.captured[c])
}

// Material returns the point totals still on the board.
func (s *GameSession) Material() (white, black int) { return s.board.Material() }

// LegalMoves lists destinations for the piece on from. It is empty unless the
// square holds a piece of the side to move in a running game.
func (s *GameSession) LegalMoves(from chess.Square) []chess.Square {
	if s.status.Terminal() {
		return nil
	}
	p, ok := s.board.PieceAt(from)
	if !ok || p.Color != s.side {
		return nil
	}
	return chess.LegalMoves(s.board, from)
}

// AllLegalMoves lists every legal move of the side to move.
func (s *GameSession) AllLegalMoves() []chess.Move {
	if s.status.Terminal() {
		return nil
	}
	return chess.AllLegalMoves(s.board, s.side)
}

// ApplyMove plays from→to for the side to move.
func (s *GameSession) ApplyMove(from, to chess.Square) (*GameSession, error) {
	if s.status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrGameAlreadyOver, s.status)
	}
	p, ok := s.board.PieceAt(from)
	if !ok || p.Color != s.side {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelection, from)
	}
	if !chess.IsLegalMove(s.board, from, to) {
		return nil, fmt.Errorf("%w: %s-%s", ErrIllegalMove, from, to)
	}

	mv := chess.Move{From: from, To: to}
	captured, _ := s.board.PieceAt(to)
	next := s.clone()
	next.board = s.board.WithMove(mv)
	if !captured.IsEmpty() {
		next.captured[s.side] = append(next.captured[s.side], captured)
	}

	if captured.Type == chess.King {
		// only reachable from injected positions
		next.status = chess.KingCaptured
		next.winner, next.hasWinner = s.side, true
	} else {
		next.side = s.side.Opposite()
		next.status = chess.Classify(next.board, next.side)
		if next.status == chess.Checkmate {
			next.winner, next.hasWinner = s.side, true
		}
	}

	next.records = append(next.records, MoveRecord{
		Kind:       KindMove,
		Move:       mv,
		Piece:      p,
		Captured:   captured,
		Check:      next.status == chess.Check || next.status == chess.Checkmate,
		Annotation: annotate(s.notes, p, mv),
		Note:       note(s.notes, next.status, s.side),
	})
	return next, nil
}

// Resign ends the game in favour of the side not to move.
func (s *GameSession) Resign() (*GameSession, error) {
	if s.status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrGameAlreadyOver, s.status)
	}
	next := s.clone()
	next.status = chess.Resigned
	next.winner, next.hasWinner = s.side.Opposite(), true
	next.records = append(next.records, MoveRecord{
		Kind: KindResign,
		Note: note(s.notes, chess.Resigned, s.side),
	})
	return next, nil
}

// clone copies the session. Slices are clipped so appends on the copy never
// write into the receiver's backing arrays.
func (s *GameSession) clone() *GameSession {
	next := *s
	next.records = slices.Clip(s.records)
	for c := range next.captured {
		next.captured[c] = slices.Clip(s.captured[c])
	}
	return &next
}
