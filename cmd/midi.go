package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsheet/midi"
	"github.com/jsphweid/chordsheet/sheet"
)

var (
	midiKey   string
	midiBPM   float64
	midiBeats uint32
)

func init() {
	opts := midi.DefaultOptions()
	midiCmd.Flags().StringVar(&midiKey, "key", "", "transpose into this key first")
	midiCmd.Flags().Float64Var(&midiBPM, "bpm", opts.BPM, "tempo")
	midiCmd.Flags().Uint32Var(&midiBeats, "beats", opts.Beats, "quarter notes per chord")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi <id> <out.mid>",
	Short: "Writes a MIDI file that plays a sheet's chords",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
			preview, err := s.Preview(ctx, id, midiKey)
			if err != nil {
				return err
			}
			opts := midi.DefaultOptions()
			opts.BPM = midiBPM
			opts.Beats = midiBeats
			song, err := midi.FromText(preview.Notes, opts)
			if err != nil {
				return err
			}
			if err := midi.WriteMidiFile(args[1], song); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s in %s\n", args[1], preview.Key)
			return nil
		})
	},
}
