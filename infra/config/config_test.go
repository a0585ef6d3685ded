package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ParsesEnvAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TERMFEED_API", "https://feed.example.com/")
	t.Setenv("TERMFEED_CONFIG_DIR", dir)
	t.Setenv("TERMFEED_LOG_LEVEL", "")
	t.Setenv("TERMFEED_TRENDING_MIN", "3")
	t.Setenv("TERMFEED_REPLY_RELOAD_MS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BaseURL != "https://feed.example.com" {
		t.Fatalf("base URL must be normalized: %q", cfg.BaseURL)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
	if cfg.TrendingThreshold != 3 || cfg.ReplyReloadDelay != 250*time.Millisecond {
		t.Fatalf("unexpected policy values: %#v", cfg)
	}
	if cfg.TokenPath != filepath.Join(dir, "token") {
		t.Fatalf("unexpected token path: %q", cfg.TokenPath)
	}
}

func TestLoad_RejectsNonHTTPS(t *testing.T) {
	t.Setenv("TERMFEED_API", "http://insecure.local")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-https API URL")
	}
}

func TestLoad_RequiresAPIURL(t *testing.T) {
	t.Setenv("TERMFEED_API", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing API URL")
	}
}

func TestLoad_RejectsBadPolicyValues(t *testing.T) {
	t.Setenv("TERMFEED_API", "https://feed.example.com")
	t.Setenv("TERMFEED_TRENDING_MIN", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero trending threshold")
	}
	t.Setenv("TERMFEED_TRENDING_MIN", "2")
	t.Setenv("TERMFEED_REPLY_RELOAD_MS", "abc")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric reload delay")
	}
}

func TestUIState_LoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui_state.json")

	st, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("missing state should not error: %v", err)
	}
	if !st.ShowPinned {
		t.Fatalf("default state should show pinned comments")
	}

	want := UIState{SortMode: "most_liked", ShowPinned: false}
	if err := SaveUIState(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("load after save failed: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected loaded state got=%#v want=%#v", got, want)
	}

	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write corrupt state failed: %v", err)
	}
	if _, err := LoadUIState(path); err == nil {
		t.Fatalf("expected error for corrupt state file")
	}
}

func TestPushRecentSearch_DedupAndBound(t *testing.T) {
	var list []RecentSearch
	for i := 0; i < 15; i++ {
		list = PushRecentSearch(list, RecentSearch{Query: string(rune('a' + i)), When: time.Now()})
	}
	if len(list) != MaxRecentSearches {
		t.Fatalf("list must be bounded at %d, got %d", MaxRecentSearches, len(list))
	}
	if list[0].Query != "o" {
		t.Fatalf("most recent query must be first, got %q", list[0].Query)
	}

	list = PushRecentSearch(list, RecentSearch{Query: "m"})
	if list[0].Query != "m" {
		t.Fatalf("re-pushed query must move to front, got %q", list[0].Query)
	}
	count := 0
	for _, r := range list {
		if r.Query == "m" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("dedup failed, %d entries for same query", count)
	}

	if got := PushRecentSearch(list, RecentSearch{Query: "   "}); len(got) != len(list) {
		t.Fatalf("blank queries must be dropped")
	}
}

func TestRecentSearches_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")

	if got := LoadRecentSearches(path); got != nil {
		t.Fatalf("missing file should yield empty list, got %#v", got)
	}

	list := PushRecentSearch(nil, RecentSearch{Query: "gophers", Category: "profiles"})
	if err := SaveRecentSearches(path, list); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got := LoadRecentSearches(path)
	if len(got) != 1 || got[0].Query != "gophers" {
		t.Fatalf("unexpected loaded list: %#v", got)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write corrupt file failed: %v", err)
	}
	if got := LoadRecentSearches(path); got != nil {
		t.Fatalf("corrupt file should yield empty list, got %#v", got)
	}

	if err := ClearRecentSearches(path); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := ClearRecentSearches(path); err != nil {
		t.Fatalf("clearing twice must be a no-op: %v", err)
	}
}
