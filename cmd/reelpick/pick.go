package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/reelpick/internal/recommend"
	"github.com/vmunix/reelpick/pkg/tmdb"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick random movies from the catalog",
	Long: `Pick random movies from the catalog.

Examples:
  reelpick pick
  reelpick pick --count 3
  reelpick pick --genre comedy
  reelpick pick --genre "science fiction" --details
  reelpick pick --refresh`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().IntP("count", "n", 0, "Number of picks (default from config)")
	pickCmd.Flags().StringP("genre", "g", "", "Filter by genre name")
	pickCmd.Flags().Bool("refresh", false, "Bypass the cache for this run")
	pickCmd.Flags().Bool("details", false, "Fetch runtime and full genre list per pick")
}

func runPick(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	genre, _ := cmd.Flags().GetString("genre")
	refresh, _ := cmd.Flags().GetBool("refresh")
	details, _ := cmd.Flags().GetBool("details")

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if count < 1 {
		count = app.cfg.Recommend.Count
	}

	ctx := cmd.Context()
	result, err := app.rec.Recommend(ctx, recommend.Options{
		Count:        count,
		Genre:        genre,
		ForceRefresh: refresh,
	})
	if err != nil {
		return fmt.Errorf("pick: %w", err)
	}

	if details {
		enrichMovies(ctx, app, result.Movies)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	if result.Stale {
		fmt.Println("Catalog unreachable; showing cached results.")
	}
	if result.GenreNotFound {
		fmt.Printf("No genre matching %q; showing unfiltered picks.\n", genre)
	}
	if len(result.Movies) == 0 {
		fmt.Println("No movies matched")
		return nil
	}

	printMovies(result.Movies, details)
	return nil
}

// enrichMovies replaces discover summaries with full records, fetched
// concurrently. A failed lookup keeps the summary; the picks still print.
func enrichMovies(ctx context.Context, app *app, movies []tmdb.Movie) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := range movies {
		g.Go(func() error {
			full, err := app.client.GetMovie(ctx, movies[i].ID)
			if err != nil {
				app.log.Warn("detail lookup failed", "movie_id", movies[i].ID, "error", err)
				return nil
			}
			movies[i] = *full
			return nil
		})
	}
	_ = g.Wait()
}
