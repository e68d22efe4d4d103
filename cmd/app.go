package cmd

import (
	"context"
	"strconv"

	"github.com/jsphweid/chordsheet/db"
	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/logger"
	"github.com/jsphweid/chordsheet/sheet"
	"github.com/jsphweid/chordsheet/transpose"
)

// openService opens the configured database. Callers must call the
// returned close func.
func openService() (*sheet.Service, func(), error) {
	log := logger.Named("db")
	conn, err := db.OpenWithMigrations(cfg.Database.Path, log)
	if err != nil {
		return nil, nil, err
	}
	store := db.NewStore(conn, log)
	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Warnw("Closing database failed", "error", err)
		}
	}
	return sheet.NewService(store, transpose.Default()), closeFn, nil
}

func withService(ctx context.Context, fn func(ctx context.Context, s *sheet.Service) error) error {
	s, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, s)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidRequest, "bad sheet id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
