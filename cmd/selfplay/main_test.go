package main

import (
	"strings"
	"testing"

	"github.com/park285/gamehub/internal/msgcat"
	"go.uber.org/zap"
)

func TestPlayGameIsRepeatable(t *testing.T) {
	cat := msgcat.Default()
	a := playGame(5, 200, cat, zap.NewNop()).Current()
	b := playGame(5, 200, cat, zap.NewNop()).Current()
	if a.FEN() != b.FEN() || a.Plies() != b.Plies() || a.Status() != b.Status() {
		t.Fatalf("same seed diverged: %s/%d vs %s/%d", a.FEN(), a.Plies(), b.FEN(), b.Plies())
	}
	if a.Plies() > 200 {
		t.Fatalf("played %d plies past the limit", a.Plies())
	}
	if !a.Over() && a.Plies() != 200 {
		t.Fatalf("game stopped early at %d plies with status %s", a.Plies(), a.Status())
	}
}

func TestSummaryAndTally(t *testing.T) {
	cat := msgcat.Default()
	var tl tally
	for seed := int64(1); seed <= 4; seed++ {
		s := playGame(seed, 40, cat, zap.NewNop()).Current()
		tl.add(s)
		line := summary(cat, int(seed), s)
		if !strings.HasPrefix(line, "game ") || !strings.Contains(line, s.Status().String()) {
			t.Fatalf("summary = %q", line)
		}
	}
	if tl.games != 4 || tl.white+tl.black+tl.draws+tl.unfinished != 4 {
		t.Fatalf("tally = %+v", tl)
	}
	if got := tl.render(cat); !strings.HasPrefix(got, "4 games: ") {
		t.Fatalf("total = %q", got)
	}
}
