package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/previewhq/previewd/internal/preview/store"
	"github.com/previewhq/previewd/internal/preview/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// These tests use sqlmock to exercise driver failure paths that an
// in-memory database cannot produce on demand.

func newMockStore(t *testing.T) (*sqlite.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlite.NewStoreWithDB(db), mock
}

func TestUpdateBioSurfacesExecError(t *testing.T) {
	st, mock := newMockStore(t)
	boom := errors.New("disk I/O error")

	mock.ExpectExec(`UPDATE users SET bio = \?`).
		WithArgs("new bio", "alice@example.com").
		WillReturnError(boom)

	err := st.Users().UpdateBio(context.Background(), "alice@example.com", "new bio")
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUsernameZeroRowsMeansNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE users SET username = \?`).
		WithArgs("ghost", "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := st.Users().UpdateUsername(context.Background(), "ghost@example.com", "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailScansAllColumns(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "email", "username", "password_hash", "bio",
		"profile_picture_url", "role", "created_at", "updated_at",
	}).AddRow("01ABC", "alice@example.com", "alice", "hash", "a bio", nil, "USER", now, now)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	got, err := st.Users().GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "01ABC", got.ID)
	require.NotNil(t, got.Bio)
	require.Equal(t, "a bio", *got.Bio)
	require.Nil(t, got.ProfilePictureURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPingSurfacesConnectionError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := sqlite.NewStoreWithDB(db)
	mock.ExpectPing().WillReturnError(errors.New("connection gone"))

	require.Error(t, st.Ping(context.Background()))
}
