package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/previewhq/previewd/internal/preview/domain"
	"github.com/previewhq/previewd/internal/preview/fetch"
	"github.com/previewhq/previewd/pkg/slogx"
)

// Classified failure message prefixes. These are part of the response
// contract, so clients can tell transport failures from HTTP ones.
const (
	prefixRequestError    = "Request error: "
	prefixHTTPError       = "HTTP Error: "
	prefixUnexpectedError = "Unexpected error: "
)

// PreviewService composes the HTTP fetcher and the content parser into the
// webpage-content retrieval flow.
type PreviewService struct {
	Fetcher *fetch.Client
}

// FetchContent retrieves rawURL and returns a structured result. Failures
// never surface as errors; they come back as a failed PreviewResult with a
// classified message. Malformed URLs fail before any network call.
func (s *PreviewService) FetchContent(ctx context.Context, rawURL string) domain.PreviewResult {
	log := slogx.FromContext(ctx)

	page, err := s.Fetcher.Get(ctx, rawURL)
	if err != nil {
		return classifyFetchError(log, rawURL, err)
	}

	title, err := fetch.ExtractTitle(page.Body)
	if err != nil {
		log.Warn("content parse failed", slog.String("url", rawURL), slog.Any("error", err))
		return domain.PreviewResult{
			Status: domain.PreviewStatusFailed,
			Error:  prefixUnexpectedError + err.Error(),
		}
	}

	log.Info("content retrieved",
		slog.String("url", rawURL),
		slog.Int("bytes", len(page.Body)),
		slog.String("title", title),
	)

	return domain.PreviewResult{
		Status:  domain.PreviewStatusSuccess,
		Content: page.Body,
		Title:   title,
	}
}

func classifyFetchError(log *slog.Logger, rawURL string, err error) domain.PreviewResult {
	var (
		transportErr *fetch.TransportError
		protocolErr  *fetch.ProtocolError
	)

	switch {
	case errors.As(err, &transportErr):
		log.Warn("fetch transport failure", slog.String("url", rawURL), slog.Any("error", err))
		return domain.PreviewResult{
			Status: domain.PreviewStatusFailed,
			Error:  prefixRequestError + transportErr.Error(),
		}
	case errors.As(err, &protocolErr):
		log.Warn("fetch non-2xx response",
			slog.String("url", rawURL),
			slog.Int("status_code", protocolErr.StatusCode),
		)
		return domain.PreviewResult{
			Status: domain.PreviewStatusFailed,
			Error:  prefixHTTPError + protocolErr.Error(),
		}
	default:
		log.Error("fetch failed unexpectedly", slog.String("url", rawURL), slog.Any("error", err))
		return domain.PreviewResult{
			Status: domain.PreviewStatusFailed,
			Error:  prefixUnexpectedError + err.Error(),
		}
	}
}
