package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogogadgetscott/anchormarks/internal/bundle"
	"github.com/gogogadgetscott/anchormarks/internal/netscape"
	"github.com/gogogadgetscott/anchormarks/internal/store/sqlite"
)

var (
	exportDB     string
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the bookmark collection to stdout or a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sqlite.Open(exportDB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		ctx := cmd.Context()
		bookmarks, err := store.ListBookmarks(ctx, 1)
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			out = f
		}

		switch exportFormat {
		case "netscape":
			_, err = out.Write(netscape.Emit(bookmarks))
			return err
		case "bundle":
			folders, ferr := store.ListFolders(ctx, 1)
			if ferr != nil {
				return ferr
			}
			return bundle.Encode(out, bundle.Export(bookmarks, folders))
		default:
			return fmt.Errorf("unknown format %q (want netscape or bundle)", exportFormat)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "anchormarks.db", "path to the database file")
	exportCmd.Flags().StringVar(&exportFormat, "format", "netscape", "output format: netscape or bundle")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
