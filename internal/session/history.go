package session

import (
	"fmt"

	"github.com/park285/gamehub/internal/chess"
)

// History keeps every snapshot of a game and a cursor into it. The cursor
// always points at a stored snapshot. History is not safe for concurrent use.
type History struct {
	snapshots []*GameSession
	step      int
}

func NewHistory(initial *GameSession) *History {
	if initial == nil {
		initial = New()
	}
	return &History{snapshots: []*GameSession{initial}}
}

func (h *History) Current() *GameSession { return h.snapshots[h.step] }
func (h *History) Step() int             { return h.step }
func (h *History) Len() int              { return len(h.snapshots) }
func (h *History) CanUndo() bool         { return h.step > 0 }
func (h *History) CanRedo() bool         { return h.step < len(h.snapshots)-1 }

// At returns the snapshot stored at index i.
func (h *History) At(i int) (*GameSession, bool) {
	if i < 0 || i >= len(h.snapshots) {
		return nil, false
	}
	return h.snapshots[i], true
}

func (h *History) Undo() (*GameSession, error) {
	if !h.CanUndo() {
		return nil, fmt.Errorf("%w: undo at step %d", ErrEmptyHistory, h.step)
	}
	h.step--
	return h.Current(), nil
}

func (h *History) Redo() (*GameSession, error) {
	if !h.CanRedo() {
		return nil, fmt.Errorf("%w: redo at step %d of %d", ErrEmptyHistory, h.step, len(h.snapshots))
	}
	h.step++
	return h.Current(), nil
}

// Push drops any snapshots after the cursor and appends s.
func (h *History) Push(s *GameSession) {
	tail := h.snapshots[h.step+1:]
	clear(tail)
	h.snapshots = append(h.snapshots[:h.step+1], s)
	h.step = len(h.snapshots) - 1
}

// Apply plays a move on the current snapshot and pushes the result.
func (h *History) Apply(from, to chess.Square) (*GameSession, error) {
	next, err := h.Current().ApplyMove(from, to)
	if err != nil {
		return nil, err
	}
	h.Push(next)
	return next, nil
}

// Resign records a resignation as a new snapshot.
func (h *History) Resign() (*GameSession, error) {
	next, err := h.Current().Resign()
	if err != nil {
		return nil, err
	}
	h.Push(next)
	return next, nil
}

// Reset rewinds to the first snapshot and forgets everything after it.
func (h *History) Reset() *GameSession {
	clear(h.snapshots[1:])
	h.snapshots = h.snapshots[:1]
	h.step = 0
	return h.Current()
}
