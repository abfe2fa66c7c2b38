package sqlite

import (
	"context"
	"database/sql"

	"github.com/previewhq/previewd/internal/preview/domain"
	"github.com/previewhq/previewd/internal/preview/store"
)

const userColumns = `id, email, username, password_hash, bio, profile_picture_url, role, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) scanUser(row *sql.Row) (domain.User, error) {
	var u userRow
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Bio,
		&u.ProfilePictureURL,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(u), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scanUser(row)
}

func (r *usersRepo) GetUserByEmailOrID(ctx context.Context, identifier string) (domain.User, error) {
	// Email match wins over id match, mirroring the lookup order of the
	// login flow. The identifier never matches both at once in practice
	// since ids are ULIDs.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? OR id = ? ORDER BY email = ? DESC LIMIT 1`,
		identifier, identifier, identifier)
	return r.scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password_hash, bio, profile_picture_url, role)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.Username,
		u.PasswordHash,
		mapOptionalString(u.Bio),
		mapOptionalString(u.ProfilePictureURL),
		u.RoleOrDefault(),
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *usersRepo) UpdateEmail(ctx context.Context, currentEmail, newEmail string) error {
	return r.updateField(ctx,
		`UPDATE users SET email = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
		newEmail, currentEmail)
}

func (r *usersRepo) UpdateUsername(ctx context.Context, email, username string) error {
	return r.updateField(ctx,
		`UPDATE users SET username = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
		username, email)
}

func (r *usersRepo) UpdateBio(ctx context.Context, email, bio string) error {
	return r.updateField(ctx,
		`UPDATE users SET bio = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
		bio, email)
}

func (r *usersRepo) UpdateProfilePictureURL(ctx context.Context, email, url string) error {
	return r.updateField(ctx,
		`UPDATE users SET profile_picture_url = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
		url, email)
}

// updateField runs a single-column UPDATE and reports ErrNotFound when no
// row matched, so callers can attribute the failure to the right field.
func (r *usersRepo) updateField(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapConstraint(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
