package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelpick/internal/favorites"
)

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite movies",
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved favorites",
	Args:  cobra.NoArgs,
	RunE:  runFavList,
}

var favAddCmd = &cobra.Command{
	Use:   "add <movie-id>",
	Short: "Save a movie as a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavAdd,
}

var favRemoveCmd = &cobra.Command{
	Use:   "remove <movie-id>",
	Short: "Remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavRemove,
}

func init() {
	rootCmd.AddCommand(favCmd)
	favCmd.AddCommand(favListCmd, favAddCmd, favRemoveCmd)
}

func parseMovieID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid movie id %q", arg)
	}
	return id, nil
}

func runFavList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	favs, err := app.favorites.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list favorites: %w", err)
	}

	if jsonOutput {
		printJSON(favs)
		return nil
	}

	if len(favs) == 0 {
		fmt.Println("No favorites saved. Use 'reelpick fav add <movie-id>'.")
		return nil
	}

	fmt.Printf("%d favorite(s):\n\n", len(favs))
	for _, f := range favs {
		printMovieLine(&f.Movie)
		fmt.Printf("    saved %s\n", f.SavedAt.Format("2006-01-02"))
	}
	return nil
}

func runFavAdd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	// Fetch the full record so the favorite is useful offline.
	movie, err := app.client.GetMovie(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("lookup movie %d: %w", id, err)
	}
	if err := app.favorites.Save(cmd.Context(), movie); err != nil {
		return fmt.Errorf("save favorite: %w", err)
	}

	if jsonOutput {
		printJSON(movie)
		return nil
	}
	fmt.Printf("Saved %q (%d)\n", movie.Title, movie.ID)
	return nil
}

func runFavRemove(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.favorites.Remove(cmd.Context(), id); err != nil {
		if errors.Is(err, favorites.ErrNotFound) {
			return fmt.Errorf("movie %d is not a favorite", id)
		}
		return fmt.Errorf("remove favorite: %w", err)
	}

	fmt.Printf("Removed favorite %d\n", id)
	return nil
}
