package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds every setting of the hub binaries. Field tags name the keys
// of the optional YAML file.
type AppConfig struct {
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	LogToConsole bool   `yaml:"log_to_console"`
	LogToFile    bool   `yaml:"log_to_file"`
	LogFile      string `yaml:"log_file"`
	LogCaller    bool   `yaml:"log_caller"`

	CPUColor   string `yaml:"cpu_color"`
	CPUDelayMS int    `yaml:"cpu_delay_ms"`
	CPUSeed    int64  `yaml:"cpu_seed"`

	MessagesDir string `yaml:"messages_dir"`

	RedisURL     string `yaml:"redis_url"`
	ResultTTLSec int    `yaml:"result_ttl_sec"`
	RecentLimit  int    `yaml:"recent_limit"`

	SelfplayGames    int `yaml:"selfplay_games"`
	SelfplayMaxPlies int `yaml:"selfplay_max_plies"`
}

func defaults() *AppConfig {
	return &AppConfig{
		LogLevel:         "info",
		LogFormat:        "legacy",
		LogToConsole:     true,
		LogFile:          "logs/gamehub.log",
		CPUColor:         "black",
		CPUDelayMS:       400,
		ResultTTLSec:     7 * 24 * 3600,
		RecentLimit:      10,
		SelfplayGames:    10,
		SelfplayMaxPlies: 300,
	}
}

// Load reads defaults, then the YAML file named by GAMEHUB_CONFIG, then
// environment overrides, and validates the result.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("GAMEHUB_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.LogFormat = v
	}
	envBool("LOG_TO_CONSOLE", &cfg.LogToConsole)
	envBool("LOG_TO_FILE", &cfg.LogToFile)
	envBool("LOG_CALLER", &cfg.LogCaller)
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		cfg.LogFile = v
	}

	if v := strings.TrimSpace(os.Getenv("CPU_COLOR")); v != "" {
		cfg.CPUColor = v
	}
	if v := strings.TrimSpace(os.Getenv("CPU_DELAY_MS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CPU_DELAY_MS: %w", err)
		}
		cfg.CPUDelayMS = n
	}
	if v := strings.TrimSpace(os.Getenv("CPU_SEED")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("CPU_SEED: %w", err)
		}
		cfg.CPUSeed = n
	}

	if v := strings.TrimSpace(os.Getenv("MESSAGES_DIR")); v != "" {
		cfg.MessagesDir = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	envPositive("RESULT_TTL", &cfg.ResultTTLSec)
	envPositive("RECENT_LIMIT", &cfg.RecentLimit)
	envPositive("SELFPLAY_GAMES", &cfg.SelfplayGames)
	envPositive("SELFPLAY_MAX_PLIES", &cfg.SelfplayMaxPlies)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.CPUColor)) {
	case "white", "black":
	default:
		return fmt.Errorf("CPU_COLOR must be white or black, got %q", c.CPUColor)
	}
	if c.CPUDelayMS < 0 {
		return errors.New("CPU_DELAY_MS must not be negative")
	}
	if c.SelfplayGames <= 0 {
		return errors.New("SELFPLAY_GAMES must be positive")
	}
	if c.SelfplayMaxPlies <= 0 {
		return errors.New("SELFPLAY_MAX_PLIES must be positive")
	}
	if c.LogToFile && strings.TrimSpace(c.LogFile) == "" {
		return errors.New("LOG_FILE is required when LOG_TO_FILE is set")
	}
	return nil
}

func (c *AppConfig) CPUDelay() time.Duration {
	return time.Duration(c.CPUDelayMS) * time.Millisecond
}

func (c *AppConfig) ResultTTL() time.Duration {
	return time.Duration(c.ResultTTLSec) * time.Second
}

func envBool(key string, dst *bool) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envPositive(key string, dst *int) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}
