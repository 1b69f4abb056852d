package cpu

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/park285/gamehub/internal/chess"
	"github.com/park285/gamehub/internal/session"
)

func TestPlayMakesLegalMove(t *testing.T) {
	start := session.New()
	first, err := start.ApplyMove(chess.Sq(6, 4), chess.Sq(4, 4))
	if err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	a := NewSeeded(chess.Black, 1)
	next, moved, err := a.Play(first)
	if err != nil || !moved {
		t.Fatalf("Play = %v, %v", moved, err)
	}
	if next.SideToMove() != chess.White || next.Plies() != 2 {
		t.Fatalf("after cpu move: side=%s plies=%d", next.SideToMove(), next.Plies())
	}
	last, _ := next.LastMove()
	if last.Piece.Color != chess.Black {
		t.Fatalf("cpu moved a %s piece", last.Piece.Color)
	}
	if !chess.IsLegalMove(first.Board(), last.Move.From, last.Move.To) {
		t.Fatalf("cpu played illegal %v", last.Move)
	}
}

func TestPlayRejectsWrongTurn(t *testing.T) {
	a := NewSeeded(chess.Black, 1)
	s := session.New()
	got, moved, err := a.Play(s)
	if !errors.Is(err, ErrNotAgentTurn) || moved || got != s {
		t.Fatalf("Play on white's turn = %v, %v, %v", got, moved, err)
	}
}

func TestPlayNoMoves(t *testing.T) {
	b, side, err := chess.ParseFEN("k7/8/1Q6/8/8/8/8/7K b")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	s := session.FromPosition(b, side)
	a := NewSeeded(chess.Black, 1)
	got, moved, err := a.Play(s)
	if err != nil || moved || got != s {
		t.Fatalf("Play on stalemate = %v, %v, %v", got, moved, err)
	}
	if _, ok := a.Choose(s); ok {
		t.Fatalf("Choose found a move in stalemate")
	}
}

func TestSeededAgentsRepeat(t *testing.T) {
	playout := func(seed int64) []string {
		white, black := NewSeeded(chess.White, seed), NewSeeded(chess.Black, seed+1)
		s := session.New()
		for i := 0; i < 40 && !s.Over(); i++ {
			agent := white
			if s.SideToMove() == chess.Black {
				agent = black
			}
			next, moved, err := agent.Play(s)
			if err != nil {
				t.Fatalf("Play: %v", err)
			}
			if !moved {
				break
			}
			s = next
		}
		return s.Annotations()
	}
	a, b := playout(99), playout(99)
	if len(a) != len(b) {
		t.Fatalf("seeded playouts differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded playouts diverge at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestChooseIsUniform(t *testing.T) {
	a := New(chess.White, rand.NewSource(5), nil)
	s := session.New()
	counts := make(map[chess.Move]int)
	const draws = 20000
	for i := 0; i < draws; i++ {
		m, ok := a.Choose(s)
		if !ok {
			t.Fatalf("no move from the start position")
		}
		counts[m]++
	}
	if len(counts) != 20 {
		t.Fatalf("saw %d distinct moves, want 20", len(counts))
	}
	for m, n := range counts {
		// expected 1000 each
		if n < 800 || n > 1200 {
			t.Fatalf("%v drawn %d times out of %d", m, n, draws)
		}
	}
}
