package hub

import (
	"errors"
	"strings"

	"github.com/park285/gamehub/internal/chess"
	"github.com/park285/gamehub/internal/msgcat"
	"github.com/park285/gamehub/internal/session"
	"github.com/park285/gamehub/pkg/chessdto"
)

func (g *game) state() *chessdto.SessionState {
	cur := g.history.Current()
	white, black := cur.Material()
	st := &chessdto.SessionState{
		GameID:   g.id,
		Mode:     string(g.mode),
		Board:    cur.Board().Letters(),
		FEN:      cur.FEN(),
		Turn:     cur.SideToMove().String(),
		Status:   cur.Status().String(),
		Check:    cur.Status() == chess.Check || cur.Status() == chess.Checkmate,
		Moves:    cur.Annotations(),
		Captured: chessdto.CapturedPieces{White: letters(cur.Captured(chess.White)), Black: letters(cur.Captured(chess.Black))},
		Material: chessdto.MaterialScore{White: white, Black: black},
		Step:     g.history.Step(),
		Plies:    cur.Plies(),
		CanUndo:  g.history.CanUndo(),
		CanRedo:  g.history.CanRedo(),
	}
	if w, ok := cur.Winner(); ok {
		st.Winner = w.String()
	}
	if last, ok := cur.LastMove(); ok {
		st.LastMove = last.Move.String()
	}
	if g.agent != nil {
		st.CPUColor = g.agent.Color().String()
		st.CPUThinking = g.timer != nil
	}
	return st
}

func letters(pieces []chess.Piece) []string {
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, p.Letter())
	}
	return out
}

// Describe maps a hub error to its presenter form. Messages come from the
// catalog with a fixed English fallback.
func Describe(cat *msgcat.Catalog, err error) chessdto.DomainError {
	if err == nil {
		return chessdto.DomainError{}
	}
	var de chessdto.DomainError
	if errors.As(err, &de) {
		return de
	}
	code, key, fallback, data := "internal", "hub.error.internal", "Something went wrong. Please try again.", map[string]any{}
	retry := false
	switch {
	case errors.Is(err, ErrGameNotFound):
		code, key, fallback = "not_found", "hub.error.not_found", "Game not found."
		data["ID"] = detail(err)
	case errors.Is(err, ErrBadSquare):
		code, key, fallback = "bad_square", "hub.error.bad_square", "Not a square."
		data["Square"] = detail(err)
	case errors.Is(err, session.ErrInvalidSelection):
		code, key, fallback = "invalid_selection", "hub.error.invalid_selection", "Select one of your own pieces."
		data["Square"] = detail(err)
		retry = true
	case errors.Is(err, session.ErrIllegalMove):
		code, key, fallback = "illegal_move", "hub.error.illegal_move", "That move is not allowed."
		data["Move"] = detail(err)
		retry = true
	case errors.Is(err, session.ErrGameAlreadyOver):
		code, key, fallback = "game_over", "hub.error.game_over", "The game is already over."
	case errors.Is(err, session.ErrEmptyHistory):
		code, key, fallback = "empty_history", "hub.error.empty_history", "Nothing to undo or redo."
		data["Action"] = detail(err)
	case errors.Is(err, ErrNotYourTurn):
		code, key, fallback = "not_your_turn", "hub.error.not_your_turn", "Wait for the CPU to move."
		retry = true
	default:
		retry = true
	}
	msg := fallback
	if cat != nil {
		if out, rerr := cat.Render(key, data); rerr == nil && out != "" {
			msg = out
		}
	}
	return chessdto.DomainError{Code: code, Message: msg, Retryable: retry}
}

// detailError carries the user-facing subject of an error, such as the square
// or move involved.
type detailError struct {
	err    error
	detail string
}

func (e *detailError) Error() string {
	msg := e.err.Error()
	if e.detail == "" || strings.Contains(msg, e.detail) {
		return msg
	}
	return msg + ": " + e.detail
}
func (e *detailError) Unwrap() error { return e.err }

func withDetail(err error, detail string) error {
	if err == nil {
		return nil
	}
	return &detailError{err: err, detail: detail}
}

func detail(err error) string {
	var de *detailError
	if errors.As(err, &de) {
		return de.detail
	}
	return ""
}
