package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"termfeed/domain"
)

// TokenProvider supplies the access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads the bearer token from a file on disk, the
// terminal analogue of the browser keeping it in local storage.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider reading from path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace. A missing
// or empty file means the user is not logged in.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", domain.ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", domain.ErrNotLoggedIn
	}
	return token, nil
}

// LoggedIn reports whether a usable token is present, without surfacing
// read errors. Used to gate actions client-side before any request.
func (f *FileTokenProvider) LoggedIn() bool {
	_, err := f.AccessToken()
	return err == nil
}

// LoadCachedUser reads the cached current-user summary. Missing or corrupt
// cache yields a zero user; the caller refreshes from the server anyway.
func LoadCachedUser(path string) domain.User {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.User{}
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return domain.User{}
	}
	return u
}

// SaveCachedUser persists the current-user summary between sessions.
func SaveCachedUser(path string, u domain.User) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding user cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing user cache: %w", err)
	}
	return nil
}
