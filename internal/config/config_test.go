package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GAMEHUB_CONFIG", "LOG_LEVEL", "LOG_FORMAT", "LOG_TO_CONSOLE", "LOG_TO_FILE", "LOG_CALLER", "LOG_FILE",
		"CPU_COLOR", "CPU_DELAY_MS", "CPU_SEED", "MESSAGES_DIR", "REDIS_URL", "RESULT_TTL", "RECENT_LIMIT",
		"SELFPLAY_GAMES", "SELFPLAY_MAX_PLIES",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CPUColor != "black" || cfg.CPUDelay() != 400*time.Millisecond || cfg.RedisURL != "" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.ResultTTL() != 7*24*time.Hour || cfg.RecentLimit != 10 || !cfg.LogToConsole || cfg.LogToFile {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "gamehub.yaml")
	body := "cpu_color: white\ncpu_delay_ms: 50\nselfplay_games: 3\nlog_format: json\nredis_url: redis://localhost:6379/2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GAMEHUB_CONFIG", path)
	t.Setenv("CPU_DELAY_MS", "0")
	t.Setenv("CPU_SEED", "99")
	t.Setenv("LOG_TO_CONSOLE", "false")
	t.Setenv("RECENT_LIMIT", "-4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CPUColor != "white" || cfg.SelfplayGames != 3 || cfg.LogFormat != "json" || cfg.RedisURL != "redis://localhost:6379/2" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.CPUDelayMS != 0 || cfg.CPUSeed != 99 || cfg.LogToConsole {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.RecentLimit != 10 {
		t.Fatalf("non-positive RECENT_LIMIT should be ignored, got %d", cfg.RecentLimit)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad colour", map[string]string{"CPU_COLOR": "green"}, "CPU_COLOR"},
		{"bad delay", map[string]string{"CPU_DELAY_MS": "soon"}, "CPU_DELAY_MS"},
		{"negative delay", map[string]string{"CPU_DELAY_MS": "-1"}, "CPU_DELAY_MS"},
		{"bad seed", map[string]string{"CPU_SEED": "x"}, "CPU_SEED"},
		{"missing file", map[string]string{"GAMEHUB_CONFIG": "/nonexistent/gamehub.yaml"}, "read config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
