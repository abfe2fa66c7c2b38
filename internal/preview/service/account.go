package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/previewhq/previewd/internal/preview/domain"
	"github.com/previewhq/previewd/internal/preview/store"
	"github.com/previewhq/previewd/pkg/cryptox"
	"github.com/previewhq/previewd/pkg/idx"
	"github.com/previewhq/previewd/pkg/slogx"
)

var (
	ErrEmailTaken = errors.New("email already registered")
)

// loginFailedMessage is shared by the unknown-identifier and wrong-password
// paths so responses carry no account enumeration signal.
const loginFailedMessage = "Invalid username/email or password."

// AccountService implements registration, login, and profile updates over
// the credential store.
type AccountService struct {
	Store  store.Store
	Tokens *TokenService
}

// RegisterResult reports a successful registration.
type RegisterResult struct {
	UserID  string
	Message string
}

// Register creates a new user with a hashed password. The existence check
// and the insert run in one transaction, and the store's uniqueness
// constraint backs them up against races: a duplicate email always comes
// back as ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, email, username, password string) (RegisterResult, error) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return RegisterResult{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) || errors.Is(err, store.ErrAlreadyExists) {
			return RegisterResult{}, ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return RegisterResult{}, err
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return RegisterResult{
		UserID:  user.ID,
		Message: "User created successfully.",
	}, nil
}

// LoginResult reports the outcome of an authentication attempt. Token is
// present only when Success is true.
type LoginResult struct {
	Success bool
	Message string
	Token   string
	User    map[string]string
}

// Login authenticates by email or user id. Unknown identifiers and wrong
// passwords produce byte-identical failure results.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	failed := LoginResult{
		Success: false,
		Message: loginFailedMessage,
		User:    map[string]string{},
	}

	user, err := s.Store.Users().GetUserByEmailOrID(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return failed, nil
		}
		log.Error("failed to look up user", slog.Any("error", err))
		return LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return failed, nil
	}

	token, err := s.Tokens.Issue(user.ID, user.RoleOrDefault())
	if err != nil {
		log.Error("failed to issue session token", slog.Any("error", err))
		return LoginResult{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return LoginResult{
		Success: true,
		Message: "Login successful.",
		Token:   token,
		User: map[string]string{
			"id":   user.ID,
			"role": user.RoleOrDefault(),
		},
	}, nil
}

// ProfileUpdate carries the fields a profile update may touch. Email both
// identifies the user and counts as an update candidate itself; nil
// pointers mean "leave unchanged".
type ProfileUpdate struct {
	Email             string
	Username          *string
	Bio               *string
	ProfilePictureURL *string
}

// UpdateResult reports a profile update field by field. FailedUpdates stays
// nil when everything succeeded.
type UpdateResult struct {
	Success       bool
	Message       string
	UpdatedFields []string
	FailedUpdates []map[string]string
}

// UpdateProfile applies each provided field independently: one field
// failing does not abort the others, and every failure is reported against
// its field name.
func (s *AccountService) UpdateProfile(ctx context.Context, req ProfileUpdate) (UpdateResult, error) {
	log := slogx.FromContext(ctx)

	updatedFields := []string{}
	var failedUpdates []map[string]string

	apply := func(field string, fn func() error) {
		if err := fn(); err != nil {
			log.Warn("profile field update failed",
				slog.String("field", field),
				slog.Any("error", err),
			)
			failedUpdates = append(failedUpdates, map[string]string{field: err.Error()})
			return
		}
		updatedFields = append(updatedFields, field)
	}

	if req.Email != "" {
		// The email field identifies the record and is touched in place,
		// so a successful update proves the user exists.
		apply("email", func() error {
			return s.Store.Users().UpdateEmail(ctx, req.Email, req.Email)
		})
		if req.Username != nil {
			apply("username", func() error {
				return s.Store.Users().UpdateUsername(ctx, req.Email, *req.Username)
			})
		}
		if req.Bio != nil {
			apply("bio", func() error {
				return s.Store.Users().UpdateBio(ctx, req.Email, *req.Bio)
			})
		}
		if req.ProfilePictureURL != nil {
			apply("profile_picture_url", func() error {
				return s.Store.Users().UpdateProfilePictureURL(ctx, req.Email, *req.ProfilePictureURL)
			})
		}
	}

	success := len(failedUpdates) == 0
	message := "Profile updated successfully."
	if !success {
		message = "Failed to update some profile fields."
	}

	return UpdateResult{
		Success:       success,
		Message:       message,
		UpdatedFields: updatedFields,
		FailedUpdates: failedUpdates,
	}, nil
}
