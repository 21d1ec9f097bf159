package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joseph-jy/gostop/engine"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"GOSTOP_DIFFICULTY", "GOSTOP_PLAYER_BOT", "GOSTOP_SEED", "GOSTOP_GAMES", "GOSTOP_LOG_LEVEL", "GOSTOP_LOG_FORMAT",
		"GOSTOP_RULESET_FILE", "GOSTOP_STATS_BACKEND", "GOSTOP_STATS_PATH", "GOSTOP_REDIS_ADDR",
		"GOSTOP_REDIS_KEY", "GOSTOP_POSTGRES_DSN",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOSTOP_DIFFICULTY", "hard")
	t.Setenv("GOSTOP_PLAYER_BOT", "easy")
	t.Setenv("GOSTOP_SEED", "42")
	t.Setenv("GOSTOP_GAMES", "10")
	t.Setenv("GOSTOP_STATS_BACKEND", "Redis")
	t.Setenv("GOSTOP_REDIS_KEY", "custom")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "hard", cfg.Difficulty)
	assert.Equal(t, "easy", cfg.PlayerBot)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 10, cfg.Games)
	assert.Equal(t, BackendRedis, cfg.StatsBackend)
	assert.Equal(t, "custom", cfg.RedisKey)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"GOSTOP_SEED":          "minus-one",
		"GOSTOP_GAMES":         "0",
		"GOSTOP_STATS_BACKEND": "floppy",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}

	clearEnv(t)
	t.Setenv("GOSTOP_STATS_BACKEND", BackendPostgres)
	_, err := FromEnv()
	assert.Error(t, err, "postgres backend without a DSN")
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("GOSTOP_DIFFICULTY")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GOSTOP_DIFFICULTY=easy\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "easy", cfg.Difficulty)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestParseRuleSetOverlaysStandard(t *testing.T) {
	rules, err := ParseRuleSet([]byte("name: no-dog\nenable_meongteongguri: false\ngo_stop_threshold: 5\n"))
	require.NoError(t, err)

	want := engine.StandardRuleSet()
	want.Name = "no-dog"
	want.EnableMeongteongguri = false
	want.GoStopThreshold = 5
	assert.Equal(t, want, rules)
}

func TestParseRuleSetInvalid(t *testing.T) {
	_, err := ParseRuleSet([]byte("go_stop_threshold: 0\n"))
	assert.ErrorIs(t, err, engine.ErrInvalidRuleSet)

	_, err = ParseRuleSet([]byte("go_stop_threshold: [\n"))
	assert.Error(t, err)
}

func TestConfigRuleSetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dokbak_steal_threshold: 4\n"), 0o644))

	cfg := Default()
	rules, err := cfg.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, engine.StandardRuleSet(), rules)

	cfg.RulesetFile = path
	rules, err = cfg.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, 4, rules.DokbakStealThreshold)

	cfg.RulesetFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.RuleSet()
	assert.Error(t, err)
}

func TestStatsFileExplicitPath(t *testing.T) {
	cfg := Default()
	cfg.StatsPath = "/tmp/gostop-stats.json"
	path, err := cfg.StatsFile()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/gostop-stats.json", path)
}

func TestConfigureLogging(t *testing.T) {
	l := logrus.New()
	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"
	require.NoError(t, cfg.configure(l))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	cfg.LogLevel = "chatty"
	assert.Error(t, cfg.configure(l))

	cfg.LogLevel = "info"
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.configure(l))
}
