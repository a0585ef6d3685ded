package search

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"termfeed/app"
	"termfeed/domain"
	"termfeed/infra/config"
)

type stubSearch struct {
	calls   int
	results app.SearchResults
	err     error
	lastCtx context.Context
}

func (s *stubSearch) Search(ctx context.Context, _ app.SearchCategory) (app.SearchResults, error) {
	s.calls++
	s.lastCtx = ctx
	if s.err != nil {
		return app.SearchResults{}, s.err
	}
	return s.results, nil
}

func typeQuery(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func recentPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "recent.json")
}

func TestTyping_BumpsSequencePerKeystroke(t *testing.T) {
	m := New(&stubSearch{}, recentPath(t))
	m = typeQuery(t, m, "abc")
	if m.reqSeq != 3 {
		t.Fatalf("each keystroke should bump the sequence, got %d", m.reqSeq)
	}
}

func TestDebounce_StaleTickIgnored(t *testing.T) {
	svc := &stubSearch{}
	m := New(svc, recentPath(t))
	m = typeQuery(t, m, "ab")

	// The tick scheduled after "a" arrives late; the query moved on.
	m, cmd := m.Update(debounceMsg{Seq: 1})
	if cmd != nil || m.loading {
		t.Fatalf("stale debounce tick should not fetch")
	}

	m, cmd = m.Update(debounceMsg{Seq: 2})
	if cmd == nil || !m.loading {
		t.Fatalf("current debounce tick should fetch")
	}
}

func TestResults_StaleSequenceDropped(t *testing.T) {
	m := New(&stubSearch{}, recentPath(t))
	m = typeQuery(t, m, "go")
	m, _ = m.Update(debounceMsg{Seq: 2})

	stale := app.SearchResults{Posts: []domain.Post{{ID: "old"}}}
	m, _ = m.Update(resultsMsg{Seq: 1, Results: stale})
	if m.loaded || len(m.results.Posts) != 0 {
		t.Fatalf("stale results should be dropped")
	}

	fresh := app.SearchResults{Posts: []domain.Post{{ID: "new", Title: "go"}}}
	m, _ = m.Update(resultsMsg{Seq: 2, Results: fresh})
	if !m.loaded || len(m.results.Posts) != 1 || m.results.Posts[0].ID != "new" {
		t.Fatalf("current results should land, got %#v", m.results.Posts)
	}
}

func TestNewFetch_CancelsPrevious(t *testing.T) {
	svc := &stubSearch{}
	m := New(svc, recentPath(t))
	m = typeQuery(t, m, "a")
	m, cmd := m.Update(debounceMsg{Seq: 1})
	cmd() // Run the first fetch so the stub captures its context.
	firstCtx := svc.lastCtx

	m = typeQuery(t, m, "b")
	m, cmd = m.Update(debounceMsg{Seq: 2})
	if cmd == nil {
		t.Fatalf("second fetch should be issued")
	}
	select {
	case <-firstCtx.Done():
	default:
		t.Fatalf("superseded fetch context should be cancelled")
	}
}

func TestEnter_RecordsRecentSearch(t *testing.T) {
	path := recentPath(t)
	m := New(&stubSearch{}, path)
	m = typeQuery(t, m, "golang")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.recent) != 1 || m.recent[0].Query != "golang" {
		t.Fatalf("enter should record the query, got %#v", m.recent)
	}
	persisted := config.LoadRecentSearches(path)
	if len(persisted) != 1 || persisted[0].Query != "golang" {
		t.Fatalf("recent search should persist, got %#v", persisted)
	}
}

func TestClearRecent(t *testing.T) {
	path := recentPath(t)
	m := New(&stubSearch{}, path)
	m = typeQuery(t, m, "x")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.recent) != 0 {
		t.Fatalf("ctrl+l should clear the in-memory list")
	}
	if got := config.LoadRecentSearches(path); len(got) != 0 {
		t.Fatalf("ctrl+l should clear the persisted list, got %#v", got)
	}
}

func TestCategorySwitch_SupersedesInFlightFetch(t *testing.T) {
	m := New(&stubSearch{}, recentPath(t))
	m = typeQuery(t, m, "go")
	m, _ = m.Update(debounceMsg{Seq: 2}) // posts fetch in flight under seq 2

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.reqSeq == 2 {
		t.Fatalf("tab must supersede the in-flight fetch")
	}

	// The old posts fetch completes after the switch to profiles.
	stale := app.SearchResults{Posts: []domain.Post{{ID: "old", Title: "go"}}}
	m, _ = m.Update(resultsMsg{Seq: 2, Results: stale})
	if len(m.results.Posts) != 0 {
		t.Fatalf("old-category results landed after the switch: %#v", m.results.Posts)
	}

	fresh := app.SearchResults{Profiles: []domain.Profile{{Username: "gopher"}}}
	m, _ = m.Update(resultsMsg{Seq: m.reqSeq, Results: fresh})
	if !m.loaded || len(m.results.Profiles) != 1 {
		t.Fatalf("new-category results should land, got %#v", m.results)
	}
}

func TestCategoryCycle_ResetsResults(t *testing.T) {
	m := New(&stubSearch{}, recentPath(t))
	m.loaded = true
	m.results = app.SearchResults{Posts: []domain.Post{{ID: "1"}}}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Category() != app.SearchProfiles {
		t.Fatalf("tab should advance the category, got %s", m.Category())
	}
	if m.loaded || len(m.results.Posts) != 0 {
		t.Fatalf("category switch should drop stale results")
	}
}
