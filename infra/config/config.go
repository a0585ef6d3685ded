package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application-level configuration.
type Config struct {
	BaseURL           string        // Backend API base URL.
	TokenPath         string        // Path to the file holding the access token.
	UserCachePath     string        // Cached current-user object.
	UIStatePath       string        // Persisted UI state.
	RecentSearchPath  string        // Persisted recent searches.
	LogPath           string        // Debug log file (stdout belongs to the TUI).
	LogLevel          string        // zerolog level name.
	TrendingThreshold int           // Minimum likes for the trending badge.
	ReplyReloadDelay  time.Duration // Delay before the post-reply reconcile reload.
}

// Load reads configuration from the environment, after godotenv has loaded
// an optional .env file.
//
//	TERMFEED_API            : backend base URL (required, https only)
//	TERMFEED_CONFIG_DIR     : state directory (default: ~/.config/termfeed)
//	TERMFEED_LOG_LEVEL      : debug|info|warn|error (default: info)
//	TERMFEED_TRENDING_MIN   : trending badge like threshold (default: 2)
//	TERMFEED_REPLY_RELOAD_MS: reply reconcile delay in ms (default: 500)
func Load() (Config, error) {
	_ = godotenv.Load()

	base := os.Getenv("TERMFEED_API")
	if base == "" {
		return Config{}, fmt.Errorf("TERMFEED_API is required")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid TERMFEED_API: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid TERMFEED_API: only https is allowed")
	}
	base = strings.TrimRight(parsed.String(), "/")

	dir := os.Getenv("TERMFEED_CONFIG_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "termfeed")
	}

	level := os.Getenv("TERMFEED_LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	threshold := 2
	if v := os.Getenv("TERMFEED_TRENDING_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid TERMFEED_TRENDING_MIN: %q", v)
		}
		threshold = n
	}

	reload := 500 * time.Millisecond
	if v := os.Getenv("TERMFEED_REPLY_RELOAD_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid TERMFEED_REPLY_RELOAD_MS: %q", v)
		}
		reload = time.Duration(n) * time.Millisecond
	}

	return Config{
		BaseURL:           base,
		TokenPath:         filepath.Join(dir, "token"),
		UserCachePath:     filepath.Join(dir, "user.json"),
		UIStatePath:       filepath.Join(dir, "ui_state.json"),
		RecentSearchPath:  filepath.Join(dir, "recent_searches.json"),
		LogPath:           filepath.Join(dir, "termfeed.log"),
		LogLevel:          level,
		TrendingThreshold: threshold,
		ReplyReloadDelay:  reload,
	}, nil
}

// UIState is the small persisted slice of UI preferences.
type UIState struct {
	SortMode   string `json:"sort_mode,omitempty"`
	ShowPinned bool   `json:"show_pinned"`
}

// LoadUIState reads the persisted UI state. A missing file yields the
// default state without an error; a corrupt file is an error.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return UIState{ShowPinned: true}, nil
	}
	if err != nil {
		return UIState{}, fmt.Errorf("reading ui state: %w", err)
	}
	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state: %w", err)
	}
	return st, nil
}

// SaveUIState writes the UI state, creating the directory if needed.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ui state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return nil
}
