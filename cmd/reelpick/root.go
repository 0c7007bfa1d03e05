package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	_ "modernc.org/sqlite"

	"github.com/vmunix/reelpick/internal/config"
	"github.com/vmunix/reelpick/internal/favorites"
	"github.com/vmunix/reelpick/internal/migrations"
	"github.com/vmunix/reelpick/internal/recommend"
	"github.com/vmunix/reelpick/internal/store"
	"github.com/vmunix/reelpick/pkg/retry"
	"github.com/vmunix/reelpick/pkg/tmdb"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "reelpick",
	Short: "Random movie picks from the TMDB catalog",
	Long: `reelpick - random movie picks from the TMDB catalog

Draws a random page of popular movies, filters by genre when asked,
and remembers favorites. Responses are cached locally so repeated
runs stay fast and survive API hiccups.

Set TMDB_API_KEY or put the key in the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("reelpick {{.Version}}\n")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// app bundles the wired components behind a single setup path so every
// command builds the same stack.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	db        *sql.DB
	client    *tmdb.Client
	cache     *store.Store
	favorites *favorites.Store
	rec       *recommend.Recommender
}

// loadConfig resolves the config file from the --config flag or the
// search path. A missing file is not an error: defaults apply and the
// API key comes from the environment.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return config.Default(), nil
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &config.ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	storeOpts := []store.Option{store.WithLogger(logger)}
	if cfg.Cache.ServeStale {
		storeOpts = append(storeOpts, store.WithServeStale())
	}
	cache := store.New(db, storeOpts...)

	policy := retry.New(
		retry.WithMaxAttempts(cfg.Retry.MaxAttempts),
		retry.WithBaseBackoff(cfg.Retry.BaseBackoff()),
		retry.WithMaxBackoff(cfg.Retry.MaxBackoff()),
		retry.WithLogger(logger),
	)

	clientOpts := []tmdb.Option{
		tmdb.WithRetryPolicy(policy),
		tmdb.WithLogger(logger),
	}
	if cfg.TMDB.BaseURL != "" {
		clientOpts = append(clientOpts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	client := tmdb.New(newCredential(cfg), clientOpts...)

	rec := recommend.New(client, cache,
		recommend.WithLogger(logger),
		recommend.WithLanguage(cfg.TMDB.Language),
		recommend.WithDiscoverTTL(cfg.Cache.TTL()),
		recommend.WithMaxPage(cfg.Recommend.MaxPage),
		recommend.WithRecentWindow(cfg.Recommend.RecentWindow),
	)

	return &app{
		cfg:       cfg,
		log:       logger,
		db:        db,
		client:    client,
		cache:     cache,
		favorites: favorites.New(db, favorites.WithLogger(logger)),
		rec:       rec,
	}, nil
}

// newCredential builds the API key lookup chain. The environment
// variable wins over the config file key when both are set.
func newCredential(cfg *config.Config) *tmdb.Credential {
	return tmdb.NewCredential(
		tmdb.EnvCredential(tmdb.EnvAPIKey),
		tmdb.StaticCredential(cfg.TMDB.APIKey),
	)
}

func (a *app) Close() {
	_ = a.db.Close()
}
