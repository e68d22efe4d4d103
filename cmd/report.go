package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsheet/sheet"
	"github.com/jsphweid/chordsheet/util"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarizes the stored sheets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
			r, err := s.Report(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sheets: %v\n", r.NumSheets)
			fmt.Fprintf(out, "favorites: %v\n", r.NumFavorites)
			fmt.Fprintf(out, "chords: %v (%v unresolved)\n", r.NumChords, r.NumUnresolved)
			for _, key := range util.GetKeys(r.SheetsByKey) {
				fmt.Fprintf(out, "  %-3s %v\n", key, r.SheetsByKey[key])
			}
			return nil
		})
	},
}
