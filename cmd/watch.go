package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/logger"
)

var (
	watchOut      string
	watchDebounce time.Duration
)

func init() {
	watchCmd.Flags().StringVarP(&transposeFrom, "from", "f", "", "key the file is written in")
	watchCmd.Flags().StringVarP(&transposeTo, "to", "t", "", "key to rewrite the chords into")
	watchCmd.Flags().BoolVar(&transposeStrip, "strip", false, "remove the chord markers from the output")
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "write here instead of stdout")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "wait this long after the last change")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-transposes a file every time it is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		emit := func(text string) error {
			res := render(text, transposeFrom, transposeTo, transposeStrip)
			if watchOut == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), res)
				return err
			}
			return os.WriteFile(watchOut, []byte(res), 0o644)
		}
		return watchFile(cmd.Context(), args[0], watchDebounce, emit)
	},
}

// watchFile calls emit with the file's contents once at start and again
// after each burst of writes settles. It returns when ctx is done, and
// emit is never called after it has returned.
func watchFile(ctx context.Context, path string, wait time.Duration, emit func(string) error) error {
	log := logger.Named("watch")

	var mu sync.Mutex
	stopped := false
	reload := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		b, err := os.ReadFile(path)
		if err != nil {
			log.Warnw("Reading watched file failed", "path", path, "error", err)
			return
		}
		if err := emit(string(b)); err != nil {
			log.Warnw("Writing output failed", "path", path, "error", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, so watch the
	// directory and filter by name.
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}

	reload()
	debounced := debounce.New(wait)
	defer func() {
		debounced(func() {})
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				log.Debugw("Watched file changed", "path", path, "op", event.Op.String())
				debounced(reload)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watcher error", "error", fmt.Sprint(err))
		}
	}
}
