package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "cinepick",
		Short:         "Browse movies and series, track what you watch, get picks",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(detailCmd())
	rootCmd.AddCommand(seasonCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(recentCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(progressCmd())
	rootCmd.AddCommand(forgetCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(recommendCmd())
	rootCmd.AddCommand(todayCmd())
	rootCmd.AddCommand(dislikeCmd())
	rootCmd.AddCommand(favoriteCmd())
	rootCmd.AddCommand(favoritesCmd())
	rootCmd.AddCommand(commentCmd())
	rootCmd.AddCommand(commentsCmd())
	rootCmd.AddCommand(keywordsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
