package cmd

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/edusprint/quizengine/internal/config"
	"github.com/edusprint/quizengine/internal/engine"
	"github.com/edusprint/quizengine/internal/logger"
	"github.com/edusprint/quizengine/internal/progression"
	"github.com/edusprint/quizengine/internal/readiness"
	"github.com/edusprint/quizengine/internal/store"
	"github.com/edusprint/quizengine/internal/strategy"
)

var rootCmd = &cobra.Command{
	Use:   "quizengine",
	Short: "Bilingual quiz scoring and adaptive mastery engine",
	Long:  "Quizengine scores bilingual (en/hu) quiz answers, tracks per-topic Bloom-level progression and spaced-repetition review schedules, and aggregates exam readiness.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database URL or SQLite path (overrides DATABASE_URL)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(readinessCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(versionCmd)
}

// appContext is the wired object graph the state-touching commands run
// against.
type appContext struct {
	cfg    config.Config
	log    *logger.Logger
	store  *store.Store
	engine *engine.Engine
}

func (a *appContext) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.log != nil {
		a.log.Sync()
	}
}

func buildApp(cmd *cobra.Command) (*appContext, error) {
	cfg := config.Load()
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DatabaseURL = db
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	rcfg := readiness.Config{
		WeakThreshold: cfg.WeakThreshold,
		CacheTTL:      cfg.ReadinessCacheTTL,
	}
	var cache readiness.Cache
	if cfg.RedisAddr != "" {
		cache = readiness.NewRedisCache(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}))
	}

	eng := engine.New(engine.Deps{
		Runner:       st,
		Progress:     st.Progress,
		Mastery:      st.Mastery,
		Attempts:     st.Attempts,
		Questions:    st.Questions,
		Topics:       st.Topics,
		Registry:     strategy.NewDefaultRegistry(),
		Progression:  progression.NewEngine(progression.DefaultConfig()),
		Cache:        cache,
		ReadinessCfg: rcfg,
		Log:          log,
	})

	return &appContext{cfg: cfg, log: log, store: st, engine: eng}, nil
}
