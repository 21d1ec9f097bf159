// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/joseph-jy/gostop/engine"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// statsFile is the default statistics location relative to the XDG data directory.
const statsFile = "gostop/stats.json"

// Statistics backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds the runtime settings of the gostop service, read from GOSTOP_* variables.
type Config struct {
	Difficulty  string // GOSTOP_DIFFICULTY: easy, medium or hard, for the AI seat
	PlayerBot   string // GOSTOP_PLAYER_BOT: strategy for the player seat in autoplay
	Seed        uint64 // GOSTOP_SEED: 0 picks a seed from the clock
	Games       int    // GOSTOP_GAMES: games played by the autoplay binary
	LogLevel    string // GOSTOP_LOG_LEVEL
	LogFormat   string // GOSTOP_LOG_FORMAT: text or json
	RulesetFile string // GOSTOP_RULESET_FILE: optional yaml override

	StatsBackend string // GOSTOP_STATS_BACKEND: file, redis, postgres or memory
	StatsPath    string // GOSTOP_STATS_PATH
	RedisAddr    string // GOSTOP_REDIS_ADDR
	RedisKey     string // GOSTOP_REDIS_KEY
	PostgresDSN  string // GOSTOP_POSTGRES_DSN
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Difficulty:   "medium",
		PlayerBot:    "medium",
		Games:        1,
		LogLevel:     "info",
		LogFormat:    "text",
		StatsBackend: BackendFile,
		RedisAddr:    "localhost:6379",
		RedisKey:     "gostop:stats",
	}
}

// Load reads envFile (if it exists) into the process environment and builds a Config
// from it. An empty envFile means ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.Difficulty = getenv("GOSTOP_DIFFICULTY", cfg.Difficulty)
	cfg.PlayerBot = getenv("GOSTOP_PLAYER_BOT", cfg.PlayerBot)
	cfg.LogLevel = getenv("GOSTOP_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("GOSTOP_LOG_FORMAT", cfg.LogFormat)
	cfg.RulesetFile = os.Getenv("GOSTOP_RULESET_FILE")
	cfg.StatsBackend = strings.ToLower(getenv("GOSTOP_STATS_BACKEND", cfg.StatsBackend))
	cfg.StatsPath = os.Getenv("GOSTOP_STATS_PATH")
	cfg.RedisAddr = getenv("GOSTOP_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisKey = getenv("GOSTOP_REDIS_KEY", cfg.RedisKey)
	cfg.PostgresDSN = os.Getenv("GOSTOP_POSTGRES_DSN")

	if v := os.Getenv("GOSTOP_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("GOSTOP_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("GOSTOP_GAMES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("GOSTOP_GAMES: %q is not a positive integer", v)
		}
		cfg.Games = n
	}

	switch cfg.StatsBackend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return Config{}, errors.New("GOSTOP_REDIS_ADDR is required for the redis backend")
		}
	case BackendPostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, errors.New("GOSTOP_POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown stats backend %q", cfg.StatsBackend)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// StatsFile returns the statistics file path, creating the XDG data directory when
// the default location is used.
func (c Config) StatsFile() (string, error) {
	if c.StatsPath != "" {
		return c.StatsPath, nil
	}
	return xdg.DataFile(statsFile)
}

// RuleSet returns the standard ruleset with RulesetFile applied over it.
func (c Config) RuleSet() (engine.RuleSet, error) {
	if c.RulesetFile == "" {
		return engine.StandardRuleSet(), nil
	}
	return LoadRuleSet(c.RulesetFile)
}

// LoadRuleSet reads a yaml ruleset. Keys missing from the file keep their standard values.
func LoadRuleSet(path string) (engine.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.RuleSet{}, fmt.Errorf("reading ruleset: %w", err)
	}
	return ParseRuleSet(data)
}

// ParseRuleSet decodes yaml over the standard ruleset and validates the result.
func ParseRuleSet(data []byte) (engine.RuleSet, error) {
	rules := engine.StandardRuleSet()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return engine.RuleSet{}, fmt.Errorf("decoding ruleset: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return engine.RuleSet{}, err
	}
	return rules, nil
}

// ConfigureLogging applies the level and format to the standard logrus logger.
func (c Config) ConfigureLogging() error {
	return c.configure(logrus.StandardLogger())
}

func (c Config) configure(l *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("GOSTOP_LOG_LEVEL: %w", err)
	}
	l.SetLevel(level)
	switch strings.ToLower(c.LogFormat) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
