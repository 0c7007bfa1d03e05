package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelpick/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) == 1 {
		path = args[0]
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(cfg)
		return nil
	}

	fmt.Printf("log.level              = %s\n", cfg.Log.Level)
	fmt.Printf("tmdb.language          = %s\n", cfg.TMDB.Language)
	fmt.Printf("tmdb.api_key           = %s\n", maskKey(cfg.TMDB.APIKey))
	fmt.Printf("database.path          = %s\n", cfg.Database.Path)
	fmt.Printf("cache.ttl_seconds      = %d\n", *cfg.Cache.TTLSeconds)
	fmt.Printf("cache.serve_stale      = %t\n", cfg.Cache.ServeStale)
	fmt.Printf("retry.max_attempts     = %d\n", cfg.Retry.MaxAttempts)
	fmt.Printf("retry.base_backoff_ms  = %d\n", cfg.Retry.BaseBackoffMS)
	fmt.Printf("retry.max_backoff_ms   = %d\n", cfg.Retry.MaxBackoffMS)
	fmt.Printf("recommend.count        = %d\n", cfg.Recommend.Count)
	fmt.Printf("recommend.recent_window = %d\n", cfg.Recommend.RecentWindow)
	fmt.Printf("recommend.max_page     = %d\n", cfg.Recommend.MaxPage)
	return nil
}

func maskKey(key string) string {
	if key == "" {
		return "(from environment)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
