package obslog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestJSONConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "JSON", Console: true, Stdout: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("game_move", zap.String("move", "e2e4"))
	_ = logger.Sync()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("not json: %q: %v", buf.String(), err)
	}
	if entry["msg"] != "game_move" || entry["move"] != "e2e4" || entry["level"] != "debug" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Level: "warn", Format: "console", Console: true, Stdout: &buf})
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hub.log")
	logger, err := New(Options{Format: "legacy", ToFile: true, FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("game_create")
	_ = logger.Sync()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), " | INFO | ") || !strings.Contains(string(raw), "game_create") {
		t.Fatalf("legacy line = %q", raw)
	}
}

func TestInitInstallsLogger(t *testing.T) {
	prev := L()
	t.Cleanup(func() { globalLogger = prev })
	var buf bytes.Buffer
	logger, err := Init(Options{Format: "json", Console: true, Stdout: &buf})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if L() != logger {
		t.Fatalf("Init did not install the logger")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{"": zapcore.InfoLevel, "DEBUG": zapcore.DebugLevel, "warning": zapcore.WarnLevel, "bogus": zapcore.InfoLevel} {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v", in, got)
		}
	}
}
