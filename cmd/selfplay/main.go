package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/park285/gamehub/internal/chess"
	"github.com/park285/gamehub/internal/chessbuilder"
	"github.com/park285/gamehub/internal/config"
	"github.com/park285/gamehub/internal/cpu"
	"github.com/park285/gamehub/internal/hub"
	"github.com/park285/gamehub/internal/msgcat"
	"github.com/park285/gamehub/internal/obslog"
	"github.com/park285/gamehub/internal/session"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger, err := obslog.Init(obslog.Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Console:  cfg.LogToConsole,
		ToFile:   cfg.LogToFile,
		FilePath: cfg.LogFile,
		Caller:   cfg.LogCaller,
	})
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	deps, err := chessbuilder.New(cfg, logger)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer func() { _ = deps.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := cfg.CPUSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("selfplay_start", zap.Int("games", cfg.SelfplayGames), zap.Int("max_plies", cfg.SelfplayMaxPlies), zap.Int64("seed", seed))

	var t tally
	for i := 1; i <= cfg.SelfplayGames; i++ {
		if ctx.Err() != nil {
			logger.Warn("selfplay interrupted", zap.Int("played", i-1))
			break
		}
		started := time.Now()
		h := playGame(seed+int64(i), cfg.SelfplayMaxPlies, deps.Catalog, logger)
		cur := h.Current()
		t.add(cur)

		if cur.Over() {
			rec := hub.BuildRecord(hub.RecordMeta{ID: uuid.NewString(), Mode: "selfplay", StartedAt: started, EndedAt: time.Now()}, h)
			if err := deps.Repo.SaveResult(ctx, rec); err != nil {
				logger.Warn("failed to save selfplay result", zap.Int("game", i), zap.Error(err))
			}
		}
		fmt.Fprintln(os.Stdout, summary(deps.Catalog, i, cur))
	}
	fmt.Fprintln(os.Stdout, t.render(deps.Catalog))
}

// playGame runs one CPU-vs-CPU game until it ends or maxPlies moves are made.
func playGame(seed int64, maxPlies int, notes session.Notes, logger *zap.Logger) *session.History {
	h := session.NewHistory(session.New(session.WithNotes(notes)))
	agents := [2]*cpu.Agent{
		cpu.NewSeeded(chess.White, seed),
		cpu.NewSeeded(chess.Black, seed^0x5eed),
	}
	for ply := 0; ply < maxPlies; ply++ {
		cur := h.Current()
		if cur.Over() {
			break
		}
		next, moved, err := agents[cur.SideToMove()].Play(cur)
		if err != nil {
			logger.Warn("selfplay move failed", zap.Int("ply", ply), zap.Error(err))
			break
		}
		if !moved {
			break
		}
		h.Push(next)
	}
	return h
}

func summary(cat *msgcat.Catalog, idx int, s *session.GameSession) string {
	data := map[string]any{"Index": idx, "Status": s.Status().String(), "Plies": s.Plies(), "Winner": ""}
	if w, ok := s.Winner(); ok {
		data["Winner"] = w.String()
	}
	out, err := cat.Render("selfplay.summary", data)
	if err != nil {
		return fmt.Sprintf("game %d: %s after %d plies", idx, s.Status(), s.Plies())
	}
	return out
}

type tally struct {
	games, white, black, draws, unfinished int
}

func (t *tally) add(s *session.GameSession) {
	t.games++
	w, ok := s.Winner()
	switch {
	case ok && w == chess.White:
		t.white++
	case ok:
		t.black++
	case s.Over():
		t.draws++
	default:
		t.unfinished++
	}
}

func (t tally) render(cat *msgcat.Catalog) string {
	out, err := cat.Render("selfplay.total", map[string]any{
		"Games": t.games, "White": t.white, "Black": t.black, "Draws": t.draws, "Unfinished": t.unfinished,
	})
	if err != nil {
		return fmt.Sprintf("%d games", t.games)
	}
	return out
}
