package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsheet/backup"
	"github.com/jsphweid/chordsheet/db"
	"github.com/jsphweid/chordsheet/logger"
)

func init() {
	backupCmd.AddCommand(backupPushCmd, backupPullCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Mirrors sheets to and from DynamoDB",
}

var backupPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Uploads every local sheet and removes remote sheets deleted locally",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStoreAndMirror(cmd.Context(), func(ctx context.Context, store *db.Store, m *backup.Mirror) error {
			sheets, err := store.List(ctx)
			if err != nil {
				return err
			}
			snapshot, err := m.Push(ctx, sheets)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d sheets, snapshot %s\n", len(sheets), snapshot)
			return nil
		})
	},
}

var backupPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Restores every remote sheet, replacing local sheets with the same id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStoreAndMirror(cmd.Context(), func(ctx context.Context, store *db.Store, m *backup.Mirror) error {
			sheets, err := m.Pull(ctx)
			if err != nil {
				return err
			}
			if err := store.RestoreAll(ctx, sheets); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d sheets\n", len(sheets))
			return nil
		})
	},
}

func withStoreAndMirror(ctx context.Context, fn func(context.Context, *db.Store, *backup.Mirror) error) error {
	log := logger.Named("backup")
	conn, err := db.OpenWithMigrations(cfg.Database.Path, log)
	if err != nil {
		return err
	}
	store := db.NewStore(conn, log)
	defer store.Close()

	client, err := backup.NewClient(cfg.Backup.Region, cfg.Backup.Endpoint)
	if err != nil {
		return err
	}
	return fn(ctx, store, backup.New(client, cfg.Backup.Table))
}
