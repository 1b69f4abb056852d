package hub

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/park285/gamehub/internal/chess"
	"github.com/park285/gamehub/internal/cpu"
	"github.com/park285/gamehub/internal/session"
	"github.com/park285/gamehub/pkg/chessdto"
	"go.uber.org/zap"
)

const defaultRecentLimit = 10

type Config struct {
	CPUColor    chess.Color
	CPUDelay    time.Duration
	Seed        int64 // 0 seeds from the clock
	RecentLimit int
}

// Manager owns the running games. Each game has its own lock; the registry
// lock is only held to look games up.
type Manager struct {
	cfg      Config
	repo     Repository
	logger   *zap.Logger
	notes    session.Notes
	schedule Scheduler
	newID    func() string
	now      func() time.Time

	seedMu sync.Mutex
	seeds  *rand.Rand

	mu    sync.RWMutex
	games map[string]*game
}

type game struct {
	mu        sync.Mutex
	id        string
	mode      Mode
	history   *session.History
	agent     *cpu.Agent
	epoch     uint64
	timer     Timer
	startedAt time.Time
	closed    bool
}

type Option func(*Manager)

func WithRepository(r Repository) Option { return func(m *Manager) { m.repo = r } }
func WithLogger(l *zap.Logger) Option     { return func(m *Manager) { m.logger = l } }
func WithNotes(n session.Notes) Option    { return func(m *Manager) { m.notes = n } }
func WithScheduler(s Scheduler) Option    { return func(m *Manager) { m.schedule = s } }
func WithIDGenerator(f func() string) Option {
	return func(m *Manager) { m.newID = f }
}
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:      cfg,
		schedule: realScheduler,
		newID:    uuid.NewString,
		now:      time.Now,
		games:    make(map[string]*game),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.repo == nil {
		m.repo = NewMemoryRepository()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.cfg.RecentLimit <= 0 {
		m.cfg.RecentLimit = defaultRecentLimit
	}
	seed := m.cfg.Seed
	if seed == 0 {
		seed = m.now().UnixNano()
	}
	m.seeds = rand.New(rand.NewSource(seed))
	return m
}

func (m *Manager) nextSeed() int64 {
	m.seedMu.Lock()
	defer m.seedMu.Unlock()
	return m.seeds.Int63()
}

func (m *Manager) Create(ctx context.Context, mode Mode) (*chessdto.SessionState, error) {
	if mode == "" {
		mode = ModeCPU
	}
	if mode != ModeCPU && mode != ModePlayer {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	g := &game{
		id:        m.newID(),
		mode:      mode,
		history:   session.NewHistory(session.New(session.WithNotes(m.notes))),
		startedAt: m.now(),
	}
	if mode == ModeCPU {
		g.agent = cpu.New(m.cfg.CPUColor, rand.NewSource(m.nextSeed()), m.logger)
	}

	m.mu.Lock()
	m.games[g.id] = g
	m.mu.Unlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	m.logger.Info("game_create",
		zap.String("game_id", g.id),
		zap.String("mode", string(mode)),
		zap.Stringer("cpu_color", m.cfg.CPUColor),
	)
	m.changedLocked(ctx, g)
	return g.state(), nil
}

func (m *Manager) lookup(id string) (*game, error) {
	id = strings.TrimSpace(id)
	m.mu.RLock()
	g, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, withDetail(ErrGameNotFound, id)
	}
	return g, nil
}

// withGame runs fn under the game's lock.
func (m *Manager) withGame(id string, fn func(g *game) error) error {
	g, err := m.lookup(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return withDetail(ErrGameNotFound, g.id)
	}
	return fn(g)
}

func (m *Manager) State(ctx context.Context, id string) (*chessdto.SessionState, error) {
	var st *chessdto.SessionState
	err := m.withGame(id, func(g *game) error {
		st = g.state()
		return nil
	})
	return st, err
}

// LegalMoves lists destination squares for the piece on square.
func (m *Manager) LegalMoves(ctx context.Context, id, square string) ([]string, error) {
	from, err := parseSquare(square)
	if err != nil {
		return nil, err
	}
	var out []string
	err = m.withGame(id, func(g *game) error {
		for _, to := range g.history.Current().LegalMoves(from) {
			out = append(out, to.String())
		}
		return nil
	})
	return out, err
}

func (m *Manager) Move(ctx context.Context, id, from, to string) (*chessdto.SessionState, error) {
	src, err := parseSquare(from)
	if err != nil {
		return nil, err
	}
	dst, err := parseSquare(to)
	if err != nil {
		return nil, err
	}
	var st *chessdto.SessionState
	err = m.withGame(id, func(g *game) error {
		cur := g.history.Current()
		if g.cpuToMove(cur) {
			return ErrNotYourTurn
		}
		next, err := g.history.Apply(src, dst)
		if err != nil {
			return moveDetail(err, src, dst)
		}
		last, _ := next.LastMove()
		m.logger.Info("game_move",
			zap.String("game_id", g.id),
			zap.String("move", last.Move.String()),
			zap.String("piece", last.Piece.String()),
			zap.Bool("capture", last.HasCapture()),
			zap.String("status", next.Status().String()),
			zap.Int("step", g.history.Step()),
		)
		m.changedLocked(ctx, g)
		st = g.state()
		return nil
	})
	return st, err
}

func (m *Manager) Resign(ctx context.Context, id string) (*chessdto.SessionState, error) {
	var st *chessdto.SessionState
	err := m.withGame(id, func(g *game) error {
		cur := g.history.Current()
		if g.cpuToMove(cur) {
			return ErrNotYourTurn
		}
		next, err := g.history.Resign()
		if err != nil {
			return err
		}
		w, _ := next.Winner()
		m.logger.Info("game_resign",
			zap.String("game_id", g.id),
			zap.String("resigned", cur.SideToMove().String()),
			zap.String("winner", w.String()),
		)
		m.changedLocked(ctx, g)
		st = g.state()
		return nil
	})
	return st, err
}

// Undo steps back one snapshot. Against the CPU it keeps stepping until the
// human is to move again.
func (m *Manager) Undo(ctx context.Context, id string) (*chessdto.SessionState, error) {
	var st *chessdto.SessionState
	err := m.withGame(id, func(g *game) error {
		cur, err := g.history.Undo()
		if err != nil {
			return withDetail(err, "undo")
		}
		for g.agent != nil && g.history.CanUndo() && cur.SideToMove() == g.agent.Color() {
			if cur, err = g.history.Undo(); err != nil {
				return withDetail(err, "undo")
			}
		}
		m.logger.Info("game_undo", zap.String("game_id", g.id), zap.Int("step", g.history.Step()))
		m.changedLocked(ctx, g)
		st = g.state()
		return nil
	})
	return st, err
}

// Redo is the inverse of Undo, skipping over CPU plies the same way.
func (m *Manager) Redo(ctx context.Context, id string) (*chessdto.SessionState, error) {
	var st *chessdto.SessionState
	err := m.withGame(id, func(g *game) error {
		cur, err := g.history.Redo()
		if err != nil {
			return withDetail(err, "redo")
		}
		for g.agent != nil && g.history.CanRedo() && cur.SideToMove() == g.agent.Color() && !cur.Over() {
			if cur, err = g.history.Redo(); err != nil {
				return withDetail(err, "redo")
			}
		}
		m.logger.Info("game_redo", zap.String("game_id", g.id), zap.Int("step", g.history.Step()))
		m.changedLocked(ctx, g)
		st = g.state()
		return nil
	})
	return st, err
}

func (m *Manager) Reset(ctx context.Context, id string) (*chessdto.SessionState, error) {
	var st *chessdto.SessionState
	err := m.withGame(id, func(g *game) error {
		g.history.Reset()
		g.startedAt = m.now()
		m.logger.Info("game_reset", zap.String("game_id", g.id))
		m.changedLocked(ctx, g)
		st = g.state()
		return nil
	})
	return st, err
}

// Close forgets a game and cancels its pending CPU move.
func (m *Manager) Close(ctx context.Context, id string) error {
	g, err := m.lookup(id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.games, g.id)
	m.mu.Unlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.cancelLocked()
	return nil
}

func (m *Manager) RecentResults(ctx context.Context, limit int) ([]chessdto.GameRecord, error) {
	if limit <= 0 {
		limit = m.cfg.RecentLimit
	}
	recs, err := m.repo.RecentResults(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]chessdto.GameRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordDTO(rec))
	}
	return out, nil
}

// Games returns the number of open games.
func (m *Manager) Games() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (g *game) cpuToMove(s *session.GameSession) bool {
	return g.agent != nil && !s.Over() && s.SideToMove() == g.agent.Color()
}

func (g *game) cancelLocked() {
	g.epoch++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// changedLocked runs after every state change: it invalidates a pending CPU
// move, archives finished games and schedules the next CPU move.
func (m *Manager) changedLocked(ctx context.Context, g *game) {
	g.cancelLocked()
	cur := g.history.Current()
	if cur.Over() {
		m.persistLocked(ctx, g)
		return
	}
	if !g.cpuToMove(cur) {
		return
	}
	epoch := g.epoch
	g.timer = m.schedule(m.cfg.CPUDelay, func() { m.runCPU(g, epoch) })
}

func (m *Manager) runCPU(g *game, epoch uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.epoch != epoch {
		m.logger.Debug("game_cpu_move_stale", zap.String("game_id", g.id), zap.Uint64("epoch", epoch))
		return
	}
	g.timer = nil
	next, moved, err := g.agent.Play(g.history.Current())
	if err != nil {
		m.logger.Warn("cpu move failed", zap.String("game_id", g.id), zap.Error(err))
		return
	}
	if !moved {
		return
	}
	g.history.Push(next)
	last, _ := next.LastMove()
	m.logger.Info("game_cpu_move",
		zap.String("game_id", g.id),
		zap.String("move", last.Move.String()),
		zap.String("status", next.Status().String()),
		zap.Int("step", g.history.Step()),
	)
	m.changedLocked(context.Background(), g)
}

func (m *Manager) persistLocked(ctx context.Context, g *game) {
	meta := RecordMeta{ID: g.id, Mode: g.mode, StartedAt: g.startedAt, EndedAt: m.now()}
	if g.agent != nil {
		c := g.agent.Color()
		meta.CPUColor = &c
	}
	rec := BuildRecord(meta, g.history)
	if err := m.repo.SaveResult(ctx, rec); err != nil {
		m.logger.Warn("failed to persist game result", zap.String("game_id", g.id), zap.Error(err))
		return
	}
	m.logger.Info("game_result_persist",
		zap.String("game_id", g.id),
		zap.String("result", rec.Result),
		zap.String("method", rec.Method),
		zap.Int("plies", rec.Plies()),
		zap.String("eco_code", rec.ECOCode),
	)
}

func parseSquare(raw string) (chess.Square, error) {
	sq, ok := chess.ParseSquare(strings.ToLower(strings.TrimSpace(raw)))
	if !ok {
		return chess.Square{}, withDetail(ErrBadSquare, raw)
	}
	return sq, nil
}

func moveDetail(err error, from, to chess.Square) error {
	switch {
	case errors.Is(err, session.ErrInvalidSelection):
		return withDetail(err, from.String())
	case errors.Is(err, session.ErrIllegalMove):
		return withDetail(err, chess.Move{From: from, To: to}.String())
	}
	return err
}
