package store

import (
	"context"
	"errors"

	"github.com/previewhq/previewd/internal/preview/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres if we ever outgrow it) implement this. The connection is opened
// once at process start, shared by all in-flight requests, and closed at
// shutdown.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn returns
	// an error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store with Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the credential store: user identity records keyed by a unique
// email. Profile mutations are deliberately per-field so callers can report
// partial failure field by field.
type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a user by email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByEmailOrID returns the first user whose email or id equals
	// identifier. Used during login.
	GetUserByEmailOrID(ctx context.Context, identifier string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken; the schema's UNIQUE
	// constraint backs this even when the caller's existence check raced.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateEmail rekeys the user identified by currentEmail and bumps
	// updated_at.
	UpdateEmail(ctx context.Context, currentEmail, newEmail string) error

	// UpdateUsername sets username for the user identified by email.
	UpdateUsername(ctx context.Context, email, username string) error

	// UpdateBio sets bio for the user identified by email.
	UpdateBio(ctx context.Context, email, bio string) error

	// UpdateProfilePictureURL sets profile_picture_url for the user
	// identified by email.
	UpdateProfilePictureURL(ctx context.Context, email, url string) error
}
