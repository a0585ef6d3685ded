// Package rest implements the app service interfaces against the platform's
// REST backend.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"termfeed/domain"
	"termfeed/infra/auth"
)

// Client is a thin HTTP wrapper for the backend API. It injects the bearer
// token, mirrors the csrftoken cookie into the X-CSRFToken header on
// mutating requests, and logs every call.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	log           zerolog.Logger
}

// NewClient creates an API client. The cookie jar exists solely to capture
// the backend's csrftoken cookie.
func NewClient(baseURL string, tp auth.TokenProvider, log zerolog.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Get performs an authenticated GET request.
func (c *Client) Get(path string) ([]byte, error) {
	return c.GetWithContext(context.Background(), path)
}

// GetWithContext is Get with cancellation, for callers whose requests can
// be superseded (search).
func (c *Client) GetWithContext(ctx context.Context, path string) ([]byte, error) {
	return c.doCtx(ctx, http.MethodGet, path, "", nil)
}

// PostJSON performs an authenticated POST with a JSON body. A nil body
// sends an empty request.
func (c *Client) PostJSON(path string, body any) ([]byte, error) {
	return c.doJSON(http.MethodPost, path, body)
}

// PutJSON performs an authenticated PUT with a JSON body.
func (c *Client) PutJSON(path string, body any) ([]byte, error) {
	return c.doJSON(http.MethodPut, path, body)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(path string) ([]byte, error) {
	return c.do(http.MethodDelete, path, "", nil)
}

// PostMultipart performs an authenticated POST with a multipart form built
// from fields and an optional file attachment (fileField + filePath).
func (c *Client) PostMultipart(path string, fields map[string]string, fileField, filePath string) ([]byte, error) {
	return c.doMultipart(http.MethodPost, path, fields, fileField, filePath)
}

// PutMultipart is PostMultipart with PUT, used for comment edits.
func (c *Client) PutMultipart(path string, fields map[string]string, fileField, filePath string) ([]byte, error) {
	return c.doMultipart(http.MethodPut, path, fields, fileField, filePath)
}

func (c *Client) doJSON(method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(method, path, "application/json", reader)
}

func (c *Client) doMultipart(method, path string, fields map[string]string, fileField, filePath string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", k, err)
		}
	}
	if fileField != "" && filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("opening attachment: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			return nil, fmt.Errorf("creating form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, fmt.Errorf("copying attachment: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}
	return c.do(method, path, w.FormDataContentType(), &buf)
}

func (c *Client) do(method, path, contentType string, body io.Reader) ([]byte, error) {
	return c.doCtx(context.Background(), method, path, contentType, body)
}

func (c *Client) doCtx(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	// Logged-out users still browse: missing credentials drop the header
	// and the request goes out anonymously. The UI gates actions that
	// require an account before they reach this point.
	token, err := c.tokenProvider.AccessToken()
	if err != nil && !errors.Is(err, domain.ErrNotLoggedIn) {
		return nil, fmt.Errorf("auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method != http.MethodGet {
		if csrf := c.csrfToken(); csrf != "" {
			req.Header.Set("X-CSRFToken", csrf)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(method, path, resp.StatusCode, data)
	}
	return data, nil
}

// csrfToken returns the csrftoken cookie captured from earlier responses.
func (c *Client) csrfToken() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.http.Jar.Cookies(u) {
		if cookie.Name == "csrftoken" {
			return cookie.Value
		}
	}
	return ""
}
