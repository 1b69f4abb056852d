package session

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/park285/gamehub/internal/chess"
)

func sameState(a, b *GameSession) bool {
	return a.Board() == b.Board() && a.SideToMove() == b.SideToMove() && a.Status() == b.Status()
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(New())
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("fresh history should not undo or redo")
	}
	if _, err := h.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("undo on fresh history: %v", err)
	}
	first, err := h.Apply(chess.Sq(6, 4), chess.Sq(4, 4))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if h.Len() != 2 || h.Step() != 1 || h.Current() != first {
		t.Fatalf("len=%d step=%d", h.Len(), h.Step())
	}

	back, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if back.Board() != chess.StandardBoard() || back.SideToMove() != chess.White {
		t.Fatalf("undo did not restore the start position")
	}
	if h.Len() != 2 {
		t.Fatalf("undo dropped snapshots")
	}

	fwd, err := h.Redo()
	if err != nil || fwd != first {
		t.Fatalf("Redo = %p, %v; want %p", fwd, err, first)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("redo at end: %v", err)
	}
}

func TestHistoryUndoAllRestoresInitial(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	initial := New()
	h := NewHistory(initial)
	const n = 30
	for i := 0; i < n; i++ {
		moves := h.Current().AllLegalMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[r.Intn(len(moves))]
		if _, err := h.Apply(m.From, m.To); err != nil {
			t.Fatalf("Apply(%v): %v", m, err)
		}
	}
	played := h.Len() - 1
	for i := 0; i < played; i++ {
		if _, err := h.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if !sameState(h.Current(), initial) {
		t.Fatalf("after %d undos: %s", played, h.Current().FEN())
	}
	for i := 0; i < played; i++ {
		if _, err := h.Redo(); err != nil {
			t.Fatalf("redo %d: %v", i, err)
		}
	}
	if h.Step() != played {
		t.Fatalf("step = %d after redoing everything", h.Step())
	}
}

func TestHistoryNewMoveTruncatesRedo(t *testing.T) {
	h := NewHistory(New())
	if _, err := h.Apply(chess.Sq(6, 4), chess.Sq(4, 4)); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if _, err := h.Apply(chess.Sq(1, 4), chess.Sq(3, 4)); err != nil {
		t.Fatalf("e7e5: %v", err)
	}
	if _, err := h.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	alt, err := h.Apply(chess.Sq(1, 3), chess.Sq(3, 3))
	if err != nil {
		t.Fatalf("d7d5: %v", err)
	}
	if h.Len() != 3 || h.Current() != alt {
		t.Fatalf("len=%d, want the discarded branch gone", h.Len())
	}
	if _, err := h.Redo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("redo replayed a discarded move: %v", err)
	}
	if p, _ := h.Current().Board().PieceAt(chess.Sq(3, 4)); !p.IsEmpty() {
		t.Fatalf("e5 should be empty on the new branch, got %v", p)
	}
}

func TestHistoryRejectedMoveLeavesCursor(t *testing.T) {
	h := NewHistory(New())
	if _, err := h.Apply(chess.Sq(6, 4), chess.Sq(3, 4)); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("err = %v", err)
	}
	if h.Len() != 1 || h.Step() != 0 {
		t.Fatalf("rejected move changed history: len=%d step=%d", h.Len(), h.Step())
	}
}

func TestHistoryResignAndReset(t *testing.T) {
	h := NewHistory(nil)
	if _, err := h.Apply(chess.Sq(6, 4), chess.Sq(4, 4)); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	r, err := h.Resign()
	if err != nil || r.Status() != chess.Resigned {
		t.Fatalf("Resign = %v, %v", r.Status(), err)
	}
	if _, err := h.Resign(); !errors.Is(err, ErrGameAlreadyOver) {
		t.Fatalf("second resign: %v", err)
	}
	// undo takes back the resignation
	prev, err := h.Undo()
	if err != nil || prev.Status() != chess.Ongoing {
		t.Fatalf("undo resign: %v, %v", prev, err)
	}

	start := h.Reset()
	if h.Len() != 1 || h.Step() != 0 || start.Board() != chess.StandardBoard() {
		t.Fatalf("reset: len=%d step=%d", h.Len(), h.Step())
	}
	if _, ok := h.At(1); ok {
		t.Fatalf("reset kept later snapshots")
	}
}
