package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jsphweid/chordsheet/config"
	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/logger"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chordsheet",
	Short: "Chord sheets with key transposition",
	Long: `Stores chord sheets and rewrites their chords between keys.

Chords are written inline in the notes between angle brackets, e.g.
"<D><D#>m <C> a <C#>". Changing a sheet's key rewrites every chord root
and leaves the rest of the text alone.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd.Root().PersistentFlags()); err != nil {
			return err
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return logger.Initialize(cfg.Log.JSON, cfg.Log.Verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ./chordsheet.toml)")
	flags.String("db", "", "path to the sheets database")
	flags.Bool("json-log", false, "log as JSON")
	flags.BoolP("verbose", "v", false, "log debug output")
}

// bindFlags runs before every command since config.Reset drops bindings
func bindFlags(flags *pflag.FlagSet) error {
	v := config.GetViper()
	bindings := map[string]string{
		"database.path": "db",
		"log.json":      "json-log",
		"log.verbose":   "verbose",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return errors.Wrapf(err, "bind --%s", name)
		}
	}
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
