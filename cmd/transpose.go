package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/transpose"
	"github.com/jsphweid/chordsheet/util"
)

var (
	transposeFrom  string
	transposeTo    string
	transposeStrip bool
)

func init() {
	transposeCmd.Flags().StringVarP(&transposeFrom, "from", "f", "", "key the text is written in")
	transposeCmd.Flags().StringVarP(&transposeTo, "to", "t", "", "key to rewrite the chords into")
	transposeCmd.Flags().BoolVar(&transposeStrip, "strip", false, "remove the chord markers from the output")
	rootCmd.AddCommand(transposeCmd)
}

var transposeCmd = &cobra.Command{
	Use:   "transpose [file]",
	Short: "Transposes chord text read from a file or stdin",
	Long: `Transposes every <chord> in the input from --from to --to and prints
the result. Without a file, or with "-", reads stdin. Unknown keys and
unrecognized chords are passed through unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		text, err := util.ReadFileOrStdin(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		if transposeFrom != "" && !transpose.IsKey(transposeFrom) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown key %q, text left unchanged\n", transposeFrom)
		}
		if transposeTo != "" && !transpose.IsKey(transposeTo) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown key %q, text left unchanged\n", transposeTo)
		}

		fmt.Fprint(cmd.OutOrStdout(), render(text, transposeFrom, transposeTo, transposeStrip))
		return nil
	},
}

func render(text, from, to string, strip bool) string {
	res := transpose.Transpose(text, from, to)
	if strip {
		res = chord.Strip(res)
	}
	return res
}
