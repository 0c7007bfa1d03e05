package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cached responses",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd, cachePruneCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.cache.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Cache cleared")
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	removed, err := app.cache.Prune(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d expired entries\n", removed)
	return nil
}
