package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vmunix/reelpick/pkg/tmdb"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func printMovies(movies []tmdb.Movie, details bool) {
	for i, m := range movies {
		fmt.Printf("%2d. ", i+1)
		printMovieLine(&m)

		if overview := truncate(m.Overview, 160); overview != "" {
			fmt.Printf("    %s\n", overview)
		}
		if details {
			if extra := detailLine(&m); extra != "" {
				fmt.Printf("    %s\n", extra)
			}
		}
		fmt.Println()
	}
}

func printMovieLine(m *tmdb.Movie) {
	title := m.Title
	if year := m.Year(); year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}
	if m.VoteAverage > 0 {
		fmt.Printf("%s  ★ %.1f\n", title, m.VoteAverage)
		return
	}
	fmt.Println(title)
}

func detailLine(m *tmdb.Movie) string {
	var parts []string
	if m.Runtime > 0 {
		parts = append(parts, fmt.Sprintf("%dh%02dm", m.Runtime/60, m.Runtime%60))
	}
	if len(m.Genres) > 0 {
		names := make([]string, 0, len(m.Genres))
		for _, g := range m.Genres {
			names = append(names, g.Name)
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	if url := m.PosterURL("w342"); url != "" {
		parts = append(parts, url)
	}
	return strings.Join(parts, "  ")
}

// truncate shortens s to at most max runes, preferring a word boundary.
// Rune-based so multi-byte text is never split mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	head := runes[:max]
	cut := len(head)
	for i := len(head) - 1; i > 0; i-- {
		if head[i] == ' ' {
			cut = i
			break
		}
	}
	return string(head[:cut]) + "..."
}
