package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizup/internal/config"
	"github.com/abhisek/quizup/internal/events"
	"github.com/abhisek/quizup/internal/guidance"
	"github.com/abhisek/quizup/internal/llm"
	"github.com/abhisek/quizup/internal/metrics"
	"github.com/abhisek/quizup/internal/quiz"
	"github.com/abhisek/quizup/internal/quizgen"
	"github.com/abhisek/quizup/internal/rankcache"
	"github.com/abhisek/quizup/internal/store"
)

// deps holds everything a command needs to run the quiz service. Close
// releases it in reverse order of construction.
type deps struct {
	cfg      config.Config
	store    *store.Store
	guidance *guidance.Service
	pub      events.Publisher
	ranks    rankcache.Cache
	metrics  *metrics.Metrics
	svc      *quiz.Service
}

// loadConfig reads .env (or --env-file) and the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if p, _ := cmd.Flags().GetString("env-file"); p != "" {
		return config.LoadFile(p)
	}
	return config.Load()
}

// openStore opens the database selected by --db / QUIZUP_DB.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newDeps wires the quiz service. The LLM provider, broker and cache are
// optional: each one that is not configured or unreachable is replaced by
// its fallback with a warning.
func newDeps(cmd *cobra.Command, cfg config.Config) (*deps, error) {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, store: st}

	var gen quizgen.Generator
	var guide *guidance.Generator
	if cfg.LLM.Configured() {
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Quizzes will use the built-in question bank.")
		} else {
			gen = quizgen.New(provider, quizgen.DefaultConfig())
			guide = guidance.NewGenerator(provider)
		}
	} else {
		fmt.Fprintln(os.Stderr, "warning: no LLM provider configured; using the built-in question bank")
	}
	d.guidance = guidance.NewService(guide, st.Results())

	d.pub, err = events.Connect(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: event publishing disabled: %v\n", err)
		d.pub = events.NopPublisher{}
	}

	d.ranks, err = rankcache.Connect(ctx, rankcache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: leaderboard cache disabled: %v\n", err)
		d.ranks = rankcache.Nop{}
	}

	if cfg.Metrics {
		d.metrics = metrics.New()
	}

	d.svc = quiz.NewService(quiz.Deps{
		Users:     st.Users(),
		Quizzes:   st.Quizzes(),
		Results:   st.Results(),
		Generator: gen,
		Guidance:  d.guidance,
		Publisher: d.pub,
		Ranks:     d.ranks,
		Metrics:   d.metrics,
	})

	if _, ok := d.ranks.(rankcache.Nop); !ok {
		if err := d.svc.RebuildLeaderboardCache(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: rebuild leaderboard cache: %v\n", err)
		}
	}
	return d, nil
}

// Close drains pending guidance before closing the store it writes to.
func (d *deps) Close() {
	d.guidance.Close()
	if err := d.ranks.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: close leaderboard cache: %v\n", err)
	}
	if err := d.pub.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: close event publisher: %v\n", err)
	}
	if err := d.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: close store: %v\n", err)
	}
}
