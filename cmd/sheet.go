package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/sheet"
	"github.com/jsphweid/chordsheet/util"
)

var (
	sheetTitle     string
	sheetKey       string
	sheetNotesFile string
	listFavorites  bool
	showStripped   bool
	keepNotes      bool
)

func init() {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Creates a sheet; notes are read from --notes or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := util.ReadFileOrStdin(sheetNotesFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
				created, err := s.Create(ctx, model.SheetInput{Title: sheetTitle, Key: sheetKey, Notes: notes})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created sheet %d\n", created.ID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&sheetTitle, "title", "", "sheet title")
	addCmd.Flags().StringVar(&sheetKey, "key", "", "key the notes are written in")
	addCmd.Flags().StringVar(&sheetNotesFile, "notes", "", "file with the notes (default stdin)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists sheets in their saved order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
				list := s.List
				if listFavorites {
					list = s.ListFavorites
				}
				sheets, err := list(ctx)
				if err != nil {
					return err
				}
				printSheets(cmd.OutOrStdout(), sheets)
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "only favorite sheets")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Prints a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
				sh, err := s.Get(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n\n", sh.Title, sh.Key)
				if showStripped {
					text, err := s.Render(ctx, id)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, text)
					return nil
				}
				fmt.Fprintln(out, sh.Notes)
				return nil
			})
		},
	}
	showCmd.Flags().BoolVar(&showStripped, "strip", false, "remove chord markers")

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replaces a sheet's title, key or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
				current, err := s.Get(ctx, id)
				if err != nil {
					return err
				}
				in := current.Input()
				if cmd.Flags().Changed("title") {
					in.Title = sheetTitle
				}
				if cmd.Flags().Changed("key") {
					in.Key = sheetKey
				}
				if cmd.Flags().Changed("notes") {
					notes, err := util.ReadFileOrStdin(sheetNotesFile, cmd.InOrStdin())
					if err != nil {
						return err
					}
					in.Notes = notes
				}
				_, err = s.Update(ctx, id, in)
				return err
			})
		},
	}
	editCmd.Flags().StringVar(&sheetTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&sheetKey, "key", "", "new key, notes are not rewritten")
	editCmd.Flags().StringVar(&sheetNotesFile, "notes", "", "file with the new notes, - for stdin")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deletes a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
				return s.Delete(ctx, id)
			})
		},
	}

	favCmd := &cobra.Command{
		Use:   "fav <id> <true|false>",
		Short: "Marks or unmarks a sheet as favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			favorite, err := strconv.ParseBool(args[1])
			if err != nil {
				return errors.Wrapf(errors.ErrInvalidRequest, "favorite must be true or false, got %q", args[1])
			}
			return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
				return s.SetFavorite(ctx, id, favorite)
			})
		},
	}

	reorderCmd := &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Saves a new order; listed ids come first in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
				return s.Reorder(ctx, ids)
			})
		},
	}

	keyCmd := &cobra.Command{
		Use:   "key <id> <key>",
		Short: "Changes a sheet's key and transposes its notes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(ctx context.Context, s *sheet.Service) error {
				updated, err := s.ChangeKey(ctx, id, args[1], !keepNotes)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), updated.Notes)
				return nil
			})
		},
	}
	keyCmd.Flags().BoolVar(&keepNotes, "keep-notes", false, "change the key without rewriting the notes")

	sheetCmd.AddCommand(addCmd, listCmd, showCmd, editCmd, deleteCmd, favCmd, reorderCmd, keyCmd)
	rootCmd.AddCommand(sheetCmd)
}

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manages stored chord sheets",
}

func printSheets(w io.Writer, sheets []model.Sheet) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tKEY\tFAV")
	for _, s := range sheets {
		fav := ""
		if s.Favorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Title, s.Key, fav)
	}
	tw.Flush()
}
