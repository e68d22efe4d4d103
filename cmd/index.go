package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/logger"
	"github.com/jsphweid/chordsheet/sheet"
	"github.com/jsphweid/chordsheet/util"
)

var (
	importKey string
	importMax int
)

func init() {
	importCmd.Flags().StringVar(&importKey, "key", "", `key for files without a "Key:" first line`)
	importCmd.Flags().IntVar(&importMax, "max", constants.MaxImportFiles, "import at most this many files, 0 for all")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Creates a sheet from every .txt file under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := util.GatherAllSheetPaths(args[0], importMax)
		if err != nil {
			return err
		}
		return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
			imported := importAll(ctx, s, paths, importKey)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d files\n", imported, len(paths))
			return nil
		})
	},
}

// importAll skips files that fail to parse or validate and keeps going
func importAll(ctx context.Context, s *sheet.Service, paths []string, defaultKey string) int {
	log := logger.Named("import")
	var imported int
	for i, path := range paths {
		log.Debugw("Importing", "n", i+1, "of", len(paths), "path", path)
		in, err := file.ReadSheet(path, defaultKey)
		if err != nil {
			log.Warnw("Skipping file", "path", path, "error", err)
			continue
		}
		if _, err := s.Create(ctx, in); err != nil {
			log.Warnw("Skipping file", "path", path, "error", err)
			continue
		}
		imported++
	}
	return imported
}
