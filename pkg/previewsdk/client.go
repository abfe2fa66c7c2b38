// Package previewsdk is a typed Go client for the previewd HTTP API. The
// server's handlers share these request/response types, so the wire
// contract lives in one place.
package previewsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a previewd instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a sane default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/user/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with an email or user id plus password. A failed
// credential check is not an error; inspect Success on the response.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/user/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a field-by-field profile update.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UpdateProfileResponse, error) {
	var out UpdateProfileResponse
	if err := c.doJSON(ctx, http.MethodPut, "/user/profile/update", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetrieveContent fetches a webpage through the service. Fetch failures
// are not errors; inspect Status on the response.
func (c *Client) RetrieveContent(ctx context.Context, req RetrieveContentRequest) (*RetrieveContentResponse, error) {
	var out RetrieveContentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/content/retrieve", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez checks the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorResponse(resp, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
