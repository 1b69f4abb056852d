package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRendersEmbeddedMessages(t *testing.T) {
	c := Default()
	got, err := c.Render("session.note.check", map[string]any{"Color": "Black"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Black is in check!" {
		t.Fatalf("got %q", got)
	}
	move, err := c.Render("session.move", map[string]any{"Piece": "P", "From": "e2", "To": "e4"})
	if err != nil || move != "Pe2 → e4" {
		t.Fatalf("move = %q, %v", move, err)
	}
	if !c.Has("hub.error.not_found") {
		t.Fatalf("expected hub.error.not_found to be loaded")
	}
}

func TestRenderMissingKeyFails(t *testing.T) {
	c := Default()
	if _, err := c.Render("session.note.check", map[string]any{}); err == nil {
		t.Fatalf("expected error for missing template data")
	}
	if _, err := c.Render("no.such.key", nil); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("a.yaml", "session:\n  note:\n    stalemate: \"Draw by stalemate.\"\n")
	write("ignored.txt", "session: {}\n")

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("session.note.stalemate", nil)
	if err != nil || got != "Draw by stalemate." {
		t.Fatalf("override = %q, %v", got, err)
	}
	if Default().Has("session.note.stalemate") {
		if s, _ := Default().Render("session.note.stalemate", nil); !strings.HasPrefix(s, "Stalemate!") {
			t.Fatalf("override leaked into default catalog: %q", s)
		}
	}

	write("b.yml", "session:\n  note:\n    stalemate: \"again\"\n")
	if _, err := New(dir); err == nil || !strings.Contains(err.Error(), "duplicate override key") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestRejectsNonStringLeaves(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("hub:\n  retries: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("expected error for integer leaf")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Default().Keys()
	if len(keys) == 0 {
		t.Fatalf("no keys loaded")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted at %d: %q > %q", i, keys[i-1], keys[i])
		}
	}
}
