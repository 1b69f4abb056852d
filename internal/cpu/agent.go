package cpu

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/park285/gamehub/internal/chess"
	"github.com/park285/gamehub/internal/session"
	"go.uber.org/zap"
)

var ErrNotAgentTurn = errors.New("not the agent's turn")

// Agent plays one color by picking uniformly among its legal moves.
// An Agent owns its random source and is not safe for concurrent use.
type Agent struct {
	color  chess.Color
	rng    *rand.Rand
	logger *zap.Logger
}

func New(color chess.Color, src rand.Source, logger *zap.Logger) *Agent {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{color: color, rng: rand.New(src), logger: logger}
}

// NewSeeded returns an agent whose choices repeat for a given seed.
func NewSeeded(color chess.Color, seed int64) *Agent {
	return New(color, rand.NewSource(seed), nil)
}

func (a *Agent) Color() chess.Color { return a.color }

// Choose picks a legal move for the agent's color without playing it.
func (a *Agent) Choose(s *session.GameSession) (chess.Move, bool) {
	if s == nil || s.Over() {
		return chess.Move{}, false
	}
	moves := chess.AllLegalMoves(s.Board(), a.color)
	if len(moves) == 0 {
		return chess.Move{}, false
	}
	return moves[a.rng.Intn(len(moves))], true
}

// Play chooses and applies a move. It reports false, with s unchanged, when
// the game is over or the agent has nothing to play.
func (a *Agent) Play(s *session.GameSession) (*session.GameSession, bool, error) {
	if s == nil || s.Over() {
		return s, false, nil
	}
	if s.SideToMove() != a.color {
		return s, false, fmt.Errorf("%w: %s to move", ErrNotAgentTurn, s.SideToMove())
	}
	m, ok := a.Choose(s)
	if !ok {
		return s, false, nil
	}
	next, err := s.ApplyMove(m.From, m.To)
	if err != nil {
		return s, false, fmt.Errorf("apply cpu move %s: %w", m, err)
	}
	a.logger.Debug("cpu_move_chosen",
		zap.String("color", a.color.String()),
		zap.String("move", m.String()),
		zap.String("status", next.Status().String()),
	)
	return next, true, nil
}
