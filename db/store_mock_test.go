package db

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/model"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := NewStore(db, nil)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	t.Cleanup(func() { db.Close() })
	return s, mock
}

func TestCreateWrapsInsertError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sheets")).
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.Create(context.Background(), model.SheetInput{Title: "t", Key: "C", Notes: "<C>"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert sheet")
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReadsBackInsertedRow(t *testing.T) {
	s, mock := newMockStore(t)
	now := s.now()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sheets")).
		WithArgs("t", "C", "<C>", now, now).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sheets WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "tone", "notes", "favorite", "position", "created_at", "updated_at"}).
			AddRow(int64(5), "t", "C", "<C>", false, 2, now, now))

	sheet, err := s.Create(context.Background(), model.SheetInput{Title: "t", Key: "C", Notes: "<C>"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), sheet.ID)
	assert.Equal(t, 2, sheet.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWrapsQueryError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).WillReturnError(errors.New("database is locked"))

	_, err := s.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list sheets")
}

func TestReorderRollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sheets SET position")).
		WithArgs(0, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sheets SET position")).
		WithArgs(1, int64(2)).
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := s.Reorder(context.Background(), []int64{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reorder sheet 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetFavoriteMissingRow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sheets SET favorite")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.SetFavorite(context.Background(), 3, true)
	assert.True(t, errors.IsNotFound(err))
}

func TestRestoreAllRollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT OR REPLACE INTO sheets")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT OR REPLACE INTO sheets")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.RestoreAll(context.Background(), []model.Sheet{
		{ID: 1, Title: "a", Key: "C", Notes: "<C>"},
		{ID: 2, Title: "b", Key: "G", Notes: "<G>"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restore sheet 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}
