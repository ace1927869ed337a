package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogogadgetscott/anchormarks/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "anchormarks",
	Short: "Self-hosted bookmark manager",
	Long: `AnchorMarks keeps your bookmarks in a local database and moves them
in and out of browsers: Netscape bookmark files (Firefox, Chrome and
friends), Safari property lists, and its own JSON bundle format.

Run "anchormarks serve" to start the API server, or use the import and
export commands to work with the database directly.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("anchormarks %s (commit: %s, built: %s)\n",
		version.Version, version.Commit, version.BuildDate))
}
