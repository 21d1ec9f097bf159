// Command gostop plays Go-Stop games between two computer seats and records the
// player seat's statistics. Settings come from GOSTOP_* variables or a .env file.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joseph-jy/gostop/engine"
	"github.com/joseph-jy/gostop/engine/agent"
	"github.com/joseph-jy/gostop/service/internal/config"
	"github.com/joseph-jy/gostop/service/internal/game"
	"github.com/joseph-jy/gostop/service/internal/stats"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("gostop failed")
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if err := cfg.ConfigureLogging(); err != nil {
		return err
	}
	rules, err := cfg.RuleSet()
	if err != nil {
		return err
	}
	aiLevel, err := agent.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		return fmt.Errorf("GOSTOP_DIFFICULTY: %w", err)
	}
	playerLevel, err := agent.ParseDifficulty(cfg.PlayerBot)
	if err != nil {
		return fmt.Errorf("GOSTOP_PLAYER_BOT: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	recorder := stats.NewRecorder(store)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	log.WithFields(log.Fields{
		"seed":    seed,
		"games":   cfg.Games,
		"rules":   rules.Name,
		"player":  playerLevel,
		"ai":      aiLevel,
		"backend": cfg.StatsBackend,
	}).Info("autoplay starting")

	starter := engine.SidePlayer
	for i := 0; i < cfg.Games; i++ {
		if ctx.Err() != nil {
			log.Warn("interrupted")
			break
		}
		if err := playOne(ctx, rules, rng, playerLevel, aiLevel, starter, recorder); err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		starter = starter.Other()
	}

	r := recorder.Current(ctx)
	log.WithFields(log.Fields{
		"games":     r.TotalGames,
		"wins":      r.Wins,
		"losses":    r.Losses,
		"highScore": r.HighScore,
	}).Info("autoplay finished")
	return nil
}

func playOne(ctx context.Context, rules engine.RuleSet, rng *rand.Rand, playerLevel, aiLevel agent.Difficulty, starter engine.Side, recorder *stats.Recorder) error {
	s := game.NewSession(rules, rng)
	levels := [2]agent.Difficulty{engine.SidePlayer: playerLevel, engine.SideAI: aiLevel}
	for side, level := range levels {
		bot, err := agent.NewPlayer(level, rng)
		if err != nil {
			return err
		}
		s.SetBot(engine.Side(side), bot)
	}
	s.BroadcastFn = func(ev game.GameEvent) {
		if ev.Type == game.EventRule {
			log.WithFields(log.Fields{"game": ev.GameID, "side": ev.Side, "event": ev.Special}).Debug("rule event")
		}
	}
	s.OnGameEnd = func(id uuid.UUID, res engine.Settlement) {
		if _, err := recorder.RecordGame(ctx, res); err != nil {
			log.WithError(err).WithField("game", id).Error("recording statistics")
		}
	}
	return s.Start(starter)
}

// openStore builds the statistics store named by the configuration.
func openStore(ctx context.Context, cfg config.Config) (stats.Store, func(), error) {
	noop := func() {}
	switch cfg.StatsBackend {
	case config.BackendRedis:
		rs, err := stats.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisKey)
		if err != nil {
			return nil, noop, err
		}
		return rs, func() { rs.Close() }, nil
	case config.BackendPostgres:
		ps, err := stats.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return ps, ps.Close, nil
	case config.BackendMemory:
		return &stats.MemoryStore{}, noop, nil
	default:
		path, err := cfg.StatsFile()
		if err != nil {
			return nil, noop, fmt.Errorf("resolving stats file: %w", err)
		}
		return stats.NewFileStore(path), noop, nil
	}
}
