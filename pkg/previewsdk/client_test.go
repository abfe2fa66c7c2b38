package previewsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/previewhq/previewd/pkg/previewsdk"
	"github.com/stretchr/testify/require"
)

func TestRegisterDecodesSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req previewsdk.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(previewsdk.RegisterResponse{
			UserID:  "01ABC",
			Message: "User created successfully.",
		})
	}))
	t.Cleanup(srv.Close)

	res, err := previewsdk.NewClient(srv.URL).Register(context.Background(), previewsdk.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, "01ABC", res.UserID)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(previewsdk.ErrorResponse{Error: "email already registered"})
	}))
	t.Cleanup(srv.Close)

	_, err := previewsdk.NewClient(srv.URL).Register(context.Background(), previewsdk.RegisterRequest{})

	var apiErr *previewsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "email already registered", apiErr.Message)
}

func TestNonJSONErrorBodyFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "plain text failure", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := previewsdk.NewClient(srv.URL).Livez(context.Background())

	var apiErr *previewsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestLoginFailureIsNotAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(previewsdk.LoginResponse{
			Success: false,
			Message: "Invalid username/email or password.",
			User:    map[string]string{},
		})
	}))
	t.Cleanup(srv.Close)

	res, err := previewsdk.NewClient(srv.URL).Login(context.Background(), previewsdk.LoginRequest{
		UsernameOrEmail: "nobody@example.com",
		Password:        "whatever",
	})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Empty(t, res.Token)
}

func TestUpdateProfileSendsOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		require.Contains(t, raw, "email")
		require.Contains(t, raw, "bio")
		require.NotContains(t, raw, "username")
		require.NotContains(t, raw, "profile_picture_url")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(previewsdk.UpdateProfileResponse{
			Success:       true,
			Message:       "Profile updated successfully.",
			UpdatedFields: []string{"email", "bio"},
		})
	}))
	t.Cleanup(srv.Close)

	bio := "new bio"
	res, err := previewsdk.NewClient(srv.URL).UpdateProfile(context.Background(), previewsdk.UpdateProfileRequest{
		Email: "a@b.com",
		Bio:   &bio,
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Nil(t, res.FailedUpdates)
}
