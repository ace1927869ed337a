package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogogadgetscott/anchormarks/internal/bundle"
	"github.com/gogogadgetscott/anchormarks/internal/importer"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
	"github.com/gogogadgetscott/anchormarks/internal/safari"
	"github.com/gogogadgetscott/anchormarks/internal/store/sqlite"
)

var (
	importDB     string
	importFormat string
	importSync   bool
)

// noopFetcher skips favicon resolution. CLI imports exit as soon as the
// rows are written, so background fetches would be cut off anyway; the
// server's refresh pass picks the icons up later.
type noopFetcher struct{}

func (noopFetcher) FetchAsync(int64, string) {}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import bookmarks from a file into the database",
	Long: `Import reads a bookmark file and writes its contents to the database.

The format is detected from the file extension (.html, .plist, .json)
and can be forced with --format. Use --sync with JSON bundles to merge
by URL instead of inserting duplicates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		format := importFormat
		if format == "" {
			format = detectFormat(path)
		}

		store, err := sqlite.Open(importDB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		imp := importer.New(store, noopFetcher{}, logger.Nop())
		ctx := cmd.Context()

		var result *importer.Result
		switch format {
		case "netscape":
			result, err = imp.ImportNetscape(ctx, 1, string(data))
		case "safari":
			root, perr := safari.Parse(data)
			if perr != nil {
				return fmt.Errorf("invalid property list: %w", perr)
			}
			result, err = imp.ImportTree(ctx, 1, root)
		case "bundle":
			payload, derr := bundle.Decode(bytes.NewReader(data))
			if derr != nil {
				return fmt.Errorf("invalid bundle: %w", derr)
			}
			if importSync {
				result, err = imp.SyncBundle(ctx, 1, payload)
			} else {
				result, err = imp.ImportBundle(ctx, 1, payload)
			}
		default:
			return fmt.Errorf("unknown format %q (want netscape, safari or bundle)", format)
		}
		if err != nil {
			return err
		}

		fmt.Printf("imported %d bookmarks", result.Count)
		if result.Updated > 0 {
			fmt.Printf(", updated %d", result.Updated)
		}
		if result.Skipped > 0 {
			fmt.Printf(", skipped %d", result.Skipped)
		}
		fmt.Println()
		for _, name := range result.UnresolvedFolders {
			fmt.Printf("warning: folder %q dropped (unresolvable parent)\n", name)
		}
		return nil
	},
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "netscape"
	case ".plist":
		return "safari"
	case ".json":
		return "bundle"
	}
	return ""
}

func init() {
	importCmd.Flags().StringVar(&importDB, "db", "anchormarks.db", "path to the database file")
	importCmd.Flags().StringVar(&importFormat, "format", "", "input format: netscape, safari or bundle (default: by extension)")
	importCmd.Flags().BoolVar(&importSync, "sync", false, "merge bundle entries by URL instead of inserting duplicates")
	rootCmd.AddCommand(importCmd)
}
