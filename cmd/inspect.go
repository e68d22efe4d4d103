package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsheet/sheet"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Lists the chords found in a sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
			chords, err := s.Chords(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range chords {
				if c.PitchClass < 0 {
					fmt.Fprintf(out, "%6d  %-10s  unresolved\n", c.Offset, c.Text)
					continue
				}
				fmt.Fprintf(out, "%6d  %-10s  root %-3s suffix %q\n", c.Offset, c.Text, c.Root, c.Suffix)
			}
			return nil
		})
	},
}
