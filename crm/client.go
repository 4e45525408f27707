// Package crm talks to the HubSpot REST API: contact lookup by email and
// list-membership checks. The gate only ever reads from the CRM.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/stonefield/sitegate/internal/errors"
)

// Client is a minimal HubSpot API client. The zero value is not usable;
// create one with NewClient.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// ClientOption modifies a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client for the given API base URL and private-app
// bearer token. An empty token is allowed here; callers gate on
// Configured before making requests.
func NewClient(baseURL, accessToken string, options ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		accessToken: accessToken,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Configured reports whether an access token was supplied.
func (c *Client) Configured() bool {
	return c.accessToken != ""
}

// StatusError is returned for non-2xx API responses. It wraps ErrUpstream so
// callers can branch on the class without inspecting the status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("crm api status %d: %s", e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	return apperrors.ErrUpstream
}

// getJSON performs a GET and decodes the response body into result.
func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, result)
}

// postJSON performs a POST with a JSON body and decodes the response into result.
func (c *Client) postJSON(ctx context.Context, path string, body any, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, result)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrUpstream, "request to %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return apperrors.Wrapf(apperrors.ErrUpstream, "failed to decode response from %s: %v", path, err)
		}
	}
	return nil
}
