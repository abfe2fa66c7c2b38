package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/previewhq/previewd/internal/preview/service"
	"github.com/previewhq/previewd/internal/preview/store"
	"github.com/previewhq/previewd/internal/preview/store/drivers/sqlite"
	"github.com/previewhq/previewd/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newAccountService(t *testing.T) (*service.AccountService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := &service.TokenService{
		Secret: []byte("test-secret"),
		Issuer: "previewd-test",
		TTL:    time.Minute,
	}

	return &service.AccountService{Store: st, Tokens: tokens}, st
}

func TestRegisterCreatesUser(t *testing.T) {
	ctx := context.Background()
	svc, st := newAccountService(t)

	res, err := svc.Register(ctx, "alice@example.com", "alice", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, res.UserID)
	require.Equal(t, "User created successfully.", res.Message)

	user, err := st.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, res.UserID, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "USER", user.Role)
	require.NotEqual(t, "hunter2", user.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("hunter2", user.PasswordHash))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	svc, st := newAccountService(t)

	first, err := svc.Register(ctx, "dup@example.com", "one", "pw-one")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "two", "pw-two")
	require.ErrorIs(t, err, service.ErrEmailTaken)

	// Exactly one record survives, untouched by the second attempt.
	user, err := st.Users().GetUserByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	require.Equal(t, first.UserID, user.ID)
	require.Equal(t, "one", user.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.Register(ctx, "real@example.com", "real", "correct-password")
	require.NoError(t, err)

	unknown, err := svc.Login(ctx, "nonexistent@x.com", "anything")
	require.NoError(t, err)
	wrongPassword, err := svc.Login(ctx, "real@example.com", "wrong-password")
	require.NoError(t, err)

	require.False(t, unknown.Success)
	require.False(t, wrongPassword.Success)
	require.Equal(t, unknown.Message, wrongPassword.Message)
	require.Empty(t, unknown.Token)
	require.Empty(t, wrongPassword.Token)
	require.Empty(t, unknown.User)
	require.Empty(t, wrongPassword.User)
}

func TestLoginSucceedsWithEmailOrID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	reg, err := svc.Register(ctx, "bob@example.com", "bob", "s3cret")
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		res, err := svc.Login(ctx, "bob@example.com", "s3cret")
		require.NoError(t, err)
		require.True(t, res.Success)
		require.Equal(t, "Login successful.", res.Message)
		require.NotEmpty(t, res.Token)
		require.Equal(t, reg.UserID, res.User["id"])
		require.Equal(t, "USER", res.User["role"])
	})

	t.Run("by id", func(t *testing.T) {
		res, err := svc.Login(ctx, reg.UserID, "s3cret")
		require.NoError(t, err)
		require.True(t, res.Success)
		require.NotEmpty(t, res.Token)
	})

	t.Run("token is verifiable", func(t *testing.T) {
		res, err := svc.Login(ctx, "bob@example.com", "s3cret")
		require.NoError(t, err)

		claims, err := svc.Tokens.Verify(res.Token)
		require.NoError(t, err)
		require.Equal(t, reg.UserID, claims.Subject)
		require.Equal(t, "USER", claims.Role)
	})
}

func TestUpdateProfileEmailOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.Register(ctx, "a@b.com", "ab", "pw")
	require.NoError(t, err)

	res, err := svc.UpdateProfile(ctx, service.ProfileUpdate{Email: "a@b.com"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, []string{"email"}, res.UpdatedFields)
	require.Nil(t, res.FailedUpdates)
	require.Equal(t, "Profile updated successfully.", res.Message)
}

func TestUpdateProfileAllFields(t *testing.T) {
	ctx := context.Background()
	svc, st := newAccountService(t)

	_, err := svc.Register(ctx, "carol@example.com", "c", "pw")
	require.NoError(t, err)

	username := "carol"
	bio := "Staff photographer."
	picture := "https://cdn.example.com/carol.png"

	res, err := svc.UpdateProfile(ctx, service.ProfileUpdate{
		Email:             "carol@example.com",
		Username:          &username,
		Bio:               &bio,
		ProfilePictureURL: &picture,
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, []string{"email", "username", "bio", "profile_picture_url"}, res.UpdatedFields)
	require.Nil(t, res.FailedUpdates)

	user, err := st.Users().GetUserByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	require.Equal(t, "carol", user.Username)
	require.Equal(t, "Staff photographer.", *user.Bio)
	require.Equal(t, "https://cdn.example.com/carol.png", *user.ProfilePictureURL)
}

func TestUpdateProfileUnknownUserReportsPerFieldFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	bio := "ghost bio"
	res, err := svc.UpdateProfile(ctx, service.ProfileUpdate{
		Email: "ghost@example.com",
		Bio:   &bio,
	})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "Failed to update some profile fields.", res.Message)
	require.Empty(t, res.UpdatedFields)
	require.Len(t, res.FailedUpdates, 2)
	require.Contains(t, res.FailedUpdates[0], "email")
	require.Contains(t, res.FailedUpdates[1], "bio")
}

func TestUpdateProfileWithoutEmailDoesNothing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	res, err := svc.UpdateProfile(ctx, service.ProfileUpdate{})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Empty(t, res.UpdatedFields)
	require.Nil(t, res.FailedUpdates)
}
