package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxRecentSearches bounds the persisted recent-searches list.
const MaxRecentSearches = 10

// RecentSearch is one remembered search query.
type RecentSearch struct {
	Query    string    `json:"query"`
	Category string    `json:"category"`
	When     time.Time `json:"when"`
}

// PushRecentSearch inserts a query at the front of the list, removing any
// earlier entry with the same query text and truncating to
// MaxRecentSearches. Blank queries are dropped.
func PushRecentSearch(list []RecentSearch, entry RecentSearch) []RecentSearch {
	entry.Query = strings.TrimSpace(entry.Query)
	if entry.Query == "" {
		return list
	}
	out := make([]RecentSearch, 0, len(list)+1)
	out = append(out, entry)
	for _, r := range list {
		if strings.EqualFold(r.Query, entry.Query) {
			continue
		}
		out = append(out, r)
	}
	if len(out) > MaxRecentSearches {
		out = out[:MaxRecentSearches]
	}
	return out
}

// LoadRecentSearches reads the persisted list. Missing file means an empty
// list; a corrupt file also yields an empty list rather than blocking the
// search overlay.
func LoadRecentSearches(path string) []RecentSearch {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var list []RecentSearch
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	if len(list) > MaxRecentSearches {
		list = list[:MaxRecentSearches]
	}
	return list
}

// SaveRecentSearches persists the list, creating the directory if needed.
func SaveRecentSearches(path string, list []RecentSearch) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding recent searches: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing recent searches: %w", err)
	}
	return nil
}

// ClearRecentSearches removes the persisted list.
func ClearRecentSearches(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing recent searches: %w", err)
	}
	return nil
}
