package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/transpose"
)

const sheetColumns = "id, title, tone, notes, favorite, position, created_at, updated_at"

// Store persists chord sheets in SQLite
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
	now func() time.Time
}

func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		db:  db,
		log: logger,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Validate checks that every field is filled in and the key is known
func Validate(in model.SheetInput) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Key) == "" {
		missing = append(missing, "key")
	}
	if strings.TrimSpace(in.Notes) == "" {
		missing = append(missing, "notes")
	}
	if len(missing) > 0 {
		return errors.Wrapf(errors.ErrInvalidRequest, "missing %s", strings.Join(missing, ", "))
	}
	if !transpose.IsKey(in.Key) {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidRequest, "unknown key %q", in.Key),
			"use one of "+strings.Join(transpose.Keys(), " "),
		)
	}
	return nil
}

// Create stores a new sheet at the end of the manual order
func (s *Store) Create(ctx context.Context, in model.SheetInput) (model.Sheet, error) {
	if err := Validate(in); err != nil {
		return model.Sheet{}, err
	}

	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sheets (title, tone, notes, favorite, position, created_at, updated_at)
		 SELECT ?, ?, ?, 0, COALESCE(MAX(position) + 1, 0), ?, ? FROM sheets`,
		in.Title, in.Key, in.Notes, now, now,
	)
	if err != nil {
		return model.Sheet{}, errors.Wrap(err, "insert sheet")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Sheet{}, errors.Wrap(err, "read inserted id")
	}

	s.log.Debugw("Created sheet", "id", id, "key", in.Key)
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id int64) (model.Sheet, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sheetColumns+" FROM sheets WHERE id = ?", id)
	sheet, err := scanSheet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Sheet{}, errors.Wrapf(errors.ErrNotFound, "sheet %d", id)
	}
	if err != nil {
		return model.Sheet{}, errors.Wrapf(err, "get sheet %d", id)
	}
	return sheet, nil
}

// List returns every sheet in manual order
func (s *Store) List(ctx context.Context) ([]model.Sheet, error) {
	return s.query(ctx, "SELECT "+sheetColumns+" FROM sheets ORDER BY position, id")
}

func (s *Store) ListFavorites(ctx context.Context) ([]model.Sheet, error) {
	return s.query(ctx, "SELECT "+sheetColumns+" FROM sheets WHERE favorite = 1 ORDER BY position, id")
}

// Update replaces title, key and notes
func (s *Store) Update(ctx context.Context, id int64, in model.SheetInput) (model.Sheet, error) {
	if err := Validate(in); err != nil {
		return model.Sheet{}, err
	}
	err := s.execOne(ctx, "update sheet", id,
		"UPDATE sheets SET title = ?, tone = ?, notes = ?, updated_at = ? WHERE id = ?",
		in.Title, in.Key, in.Notes, s.now(), id,
	)
	if err != nil {
		return model.Sheet{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	return s.execOne(ctx, "set favorite", id,
		"UPDATE sheets SET favorite = ?, updated_at = ? WHERE id = ?",
		favorite, s.now(), id,
	)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.execOne(ctx, "delete sheet", id, "DELETE FROM sheets WHERE id = ?", id); err != nil {
		return err
	}
	s.log.Debugw("Deleted sheet", "id", id)
	return nil
}

// Reorder sets each sheet's position to its index in ids. Sheets not in
// ids keep their relative order and follow the listed ones, so a partial
// list such as the favorites moves those sheets to the front. Either every
// sheet is renumbered or none is.
func (s *Store) Reorder(ctx context.Context, ids []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin reorder")
	}

	listed := make(map[int64]bool, len(ids))
	for i, id := range ids {
		listed[id] = true
		if err := setPosition(ctx, tx, id, i); err != nil {
			tx.Rollback()
			return err
		}
	}

	rest, err := unlistedIDs(ctx, tx, listed)
	if err != nil {
		tx.Rollback()
		return err
	}
	for i, id := range rest {
		if err := setPosition(ctx, tx, id, len(ids)+i); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit reorder")
	}
	return nil
}

func setPosition(ctx context.Context, tx *sql.Tx, id int64, position int) error {
	res, err := tx.ExecContext(ctx, "UPDATE sheets SET position = ? WHERE id = ?", position, id)
	if err != nil {
		return errors.Wrapf(err, "reorder sheet %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "reorder sheet %d", id)
	}
	if n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "sheet %d", id)
	}
	return nil
}

// unlistedIDs returns the ids missing from listed in their current order
func unlistedIDs(ctx context.Context, tx *sql.Tx, listed map[int64]bool) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id FROM sheets ORDER BY position, id")
	if err != nil {
		return nil, errors.Wrap(err, "list sheet order")
	}
	defer rows.Close()

	var res []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan sheet id")
		}
		if !listed[id] {
			res = append(res, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list sheet order")
	}
	return res, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Restore writes sheet with its own id, replacing any local sheet with
// that id.
func (s *Store) Restore(ctx context.Context, sheet model.Sheet) error {
	if err := Validate(sheet.Input()); err != nil {
		return err
	}
	return s.restore(ctx, s.db, sheet)
}

// RestoreAll restores sheets in one transaction. Every sheet is validated
// first, so a single bad sheet leaves the store untouched. Used when
// pulling a backup.
func (s *Store) RestoreAll(ctx context.Context, sheets []model.Sheet) error {
	for _, sheet := range sheets {
		if err := Validate(sheet.Input()); err != nil {
			return errors.Wrapf(err, "sheet %d", sheet.ID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin restore")
	}
	for _, sheet := range sheets {
		if err := s.restore(ctx, tx, sheet); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit restore")
	}
	s.log.Debugw("Restored sheets", "count", len(sheets))
	return nil
}

func (s *Store) restore(ctx context.Context, ex execer, sheet model.Sheet) error {
	if sheet.CreatedAt.IsZero() {
		sheet.CreatedAt = s.now()
	}
	if sheet.UpdatedAt.IsZero() {
		sheet.UpdatedAt = sheet.CreatedAt
	}
	_, err := ex.ExecContext(ctx,
		"INSERT OR REPLACE INTO sheets ("+sheetColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		sheet.ID, sheet.Title, sheet.Key, sheet.Notes, sheet.Favorite, sheet.Position,
		sheet.CreatedAt, sheet.UpdatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "restore sheet %d", sheet.ID)
	}
	return nil
}

func (s *Store) execOne(ctx context.Context, op string, id int64, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "%s %d", op, id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "%s %d", op, id)
	}
	if n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "sheet %d", id)
	}
	return nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]model.Sheet, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list sheets")
	}
	defer rows.Close()

	res := make([]model.Sheet, 0)
	for rows.Next() {
		sheet, err := scanSheet(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan sheet")
		}
		res = append(res, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list sheets")
	}
	return res, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSheet(row scanner) (model.Sheet, error) {
	var s model.Sheet
	err := row.Scan(&s.ID, &s.Title, &s.Key, &s.Notes, &s.Favorite, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
