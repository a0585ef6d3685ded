package search

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"termfeed/app"
	"termfeed/infra/config"
)

const debounceDelay = 300 * time.Millisecond

var categories = []app.SearchCategory{app.SearchPosts, app.SearchProfiles, app.SearchGroups}

// --- Messages ---

// OpenResultMsg asks the root model to open a search hit.
type OpenResultMsg struct {
	Category app.SearchCategory
	PostID   string
	Username string
	GroupID  string
}

// debounceMsg fires after the typing pause. Stale sequences are dropped.
type debounceMsg struct {
	Seq int
}

// resultsMsg delivers a finished fetch.
type resultsMsg struct {
	Seq     int
	Results app.SearchResults
	Err     error
}

// --- Model ---

// Model holds the state for the search overlay.
type Model struct {
	svc        app.SearchService
	recentPath string

	input    textinput.Model
	category int
	results  app.SearchResults
	loaded   bool
	loading  bool
	err      error

	recent []config.RecentSearch

	reqSeq int
	cancel context.CancelFunc

	cursor  int
	spinner spinner.Model
}

// New creates a search model. Recent searches load from recentPath.
func New(svc app.SearchService, recentPath string) Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 120
	ti.Width = 48
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		svc:        svc,
		recentPath: recentPath,
		input:      ti,
		recent:     config.LoadRecentSearches(recentPath),
		spinner:    s,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Category returns the active search category.
func (m Model) Category() app.SearchCategory {
	return categories[m.category]
}

// Filtered returns the loaded results narrowed by the current query.
func (m Model) Filtered() app.SearchResults {
	return Filter(m.results, m.input.Value())
}

// Update handles messages for the search overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case debounceMsg:
		if msg.Seq != m.reqSeq {
			return m, nil
		}
		return m.startFetch()

	case resultsMsg:
		if msg.Seq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.results = msg.Results
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.category = (m.category + 1) % len(categories)
			m.loaded = false
			m.results = app.SearchResults{}
			m.cursor = 0
			// A fetch for the old category may still be in flight. It
			// must not land under the new category's sequence.
			m.reqSeq++
			if m.input.Value() != "" {
				return m.startFetch()
			}
			return m, nil

		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down":
			if m.cursor < m.listLen()-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			return m.pick()

		case "ctrl+l":
			m.recent = nil
			_ = config.ClearRecentSearches(m.recentPath)
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.reqSeq++
			m.cursor = 0
			seq := m.reqSeq
			return m, tea.Batch(cmd, tea.Tick(debounceDelay, func(time.Time) tea.Msg {
				return debounceMsg{Seq: seq}
			}))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startFetch cancels any in-flight request and launches a fresh one for
// the current category. Responses carry the sequence they were issued
// under, so superseded fetches cannot clobber newer ones.
func (m Model) startFetch() (Model, tea.Cmd) {
	if m.input.Value() == "" {
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.loading = true
	seq := m.reqSeq
	svc := m.svc
	category := m.Category()
	return m, func() tea.Msg {
		results, err := svc.Search(ctx, category)
		return resultsMsg{Seq: seq, Results: results, Err: err}
	}
}

// pick records the query in the recent list and opens the highlighted hit.
func (m Model) pick() (Model, tea.Cmd) {
	query := m.input.Value()
	if query != "" {
		m.recent = config.PushRecentSearch(m.recent, config.RecentSearch{
			Query:    query,
			Category: string(m.Category()),
			When:     time.Now(),
		})
		_ = config.SaveRecentSearches(m.recentPath, m.recent)
	}

	if query == "" {
		// Enter on a recent entry replays it.
		if m.cursor < len(m.recent) {
			r := m.recent[m.cursor]
			m.input.SetValue(r.Query)
			for i, c := range categories {
				if string(c) == r.Category {
					m.category = i
				}
			}
			m.reqSeq++
			return m.startFetch()
		}
		return m, nil
	}

	filtered := m.Filtered()
	switch m.Category() {
	case app.SearchPosts:
		if m.cursor < len(filtered.Posts) {
			p := filtered.Posts[m.cursor]
			return m, func() tea.Msg { return OpenResultMsg{Category: app.SearchPosts, PostID: p.ID} }
		}
	case app.SearchProfiles:
		if m.cursor < len(filtered.Profiles) {
			p := filtered.Profiles[m.cursor]
			return m, func() tea.Msg { return OpenResultMsg{Category: app.SearchProfiles, Username: p.Username} }
		}
	case app.SearchGroups:
		if m.cursor < len(filtered.Groups) {
			g := filtered.Groups[m.cursor]
			return m, func() tea.Msg { return OpenResultMsg{Category: app.SearchGroups, GroupID: g.ID} }
		}
	}
	return m, nil
}

func (m Model) listLen() int {
	if m.input.Value() == "" {
		return len(m.recent)
	}
	filtered := m.Filtered()
	switch m.Category() {
	case app.SearchPosts:
		return len(filtered.Posts)
	case app.SearchProfiles:
		return len(filtered.Profiles)
	default:
		return len(filtered.Groups)
	}
}
