package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/previewhq/previewd/internal/preview/domain"
	"github.com/previewhq/previewd/internal/preview/fetch"
	"github.com/previewhq/previewd/internal/preview/service"
	"github.com/stretchr/testify/require"
)

func newPreviewService() *service.PreviewService {
	return &service.PreviewService{Fetcher: fetch.NewClient(2 * time.Second)}
}

func TestFetchContentSuccess(t *testing.T) {
	t.Parallel()

	const body = `<html><head><title>Example Domain</title></head><body>hello</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	res := newPreviewService().FetchContent(context.Background(), srv.URL)

	require.True(t, res.Success())
	require.Equal(t, domain.PreviewStatusSuccess, res.Status)
	require.Equal(t, body, res.Content)
	require.Equal(t, "Example Domain", res.Title)
	require.Empty(t, res.Error)
}

func TestFetchContentUntitledFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>no title</body></html>`))
	}))
	t.Cleanup(srv.Close)

	res := newPreviewService().FetchContent(context.Background(), srv.URL)

	require.True(t, res.Success())
	require.Equal(t, "Untitled", res.Title)
}

func TestFetchContentMalformedURLSkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)

	res := newPreviewService().FetchContent(context.Background(), "not a url")

	require.False(t, res.Success())
	require.Equal(t, domain.PreviewStatusFailed, res.Status)
	require.True(t, strings.HasPrefix(res.Error, "Request error: "), "got %q", res.Error)
	require.Zero(t, calls.Load())
}

func TestFetchContentHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	res := newPreviewService().FetchContent(context.Background(), srv.URL)

	require.Equal(t, domain.PreviewStatusFailed, res.Status)
	require.True(t, strings.HasPrefix(res.Error, "HTTP Error: "), "got %q", res.Error)
	require.Contains(t, res.Error, "404")
	require.Empty(t, res.Content)
}

func TestFetchContentUnreachableHost(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	deadURL := srv.URL
	srv.Close()

	res := newPreviewService().FetchContent(context.Background(), deadURL)

	require.Equal(t, domain.PreviewStatusFailed, res.Status)
	require.True(t, strings.HasPrefix(res.Error, "Request error: "), "got %q", res.Error)
}
