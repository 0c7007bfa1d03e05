package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List catalog genres",
	Args:  cobra.NoArgs,
	RunE:  runGenres,
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

func runGenres(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	genres, err := app.rec.Genres(cmd.Context())
	if err != nil {
		return fmt.Errorf("genres: %w", err)
	}

	if jsonOutput {
		printJSON(genres)
		return nil
	}

	for _, g := range genres {
		fmt.Printf("%6d  %s\n", g.ID, g.Name)
	}
	return nil
}
