package thread

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"termfeed/app"
	"termfeed/domain"
	"termfeed/store"
	"termfeed/tui/common"
)

const defaultPerPage = 20

// likeSnapshot remembers the pre-toggle state so a failed like can be
// rolled back without guessing.
type likeSnapshot struct {
	liked bool
	count int
}

// row is one visible line target in the thread listing. Replies carry
// the parent's ID and a depth of 1.
type row struct {
	id    string
	depth int
}

// Model holds the state for the comment thread view of a single post.
type Model struct {
	comments app.CommentService
	store    *store.Store
	post     domain.Post
	user     domain.User
	loggedIn bool

	sortMode          domain.SortMode
	showPinned        bool
	trendingThreshold int
	replyReloadDelay  time.Duration

	page    int
	perPage int
	hasMore bool
	loading bool
	reqSeq  int

	cursor         int
	expanded       map[string]bool
	replyPage      map[string]int
	replyHasMore   map[string]bool
	loadingReplies map[string]bool

	pendingLikes map[string]likeSnapshot
	likePulse    map[string]bool

	confirmDelete string // comment ID awaiting y/n, empty when idle
	confirmReport string

	status string
	err    error

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// Options carries the tunables the thread view honors.
type Options struct {
	SortMode          domain.SortMode
	ShowPinned        bool
	TrendingThreshold int
	ReplyReloadDelay  time.Duration
}

// New creates a thread model for the given post.
func New(comments app.CommentService, post domain.Post, user domain.User, loggedIn bool, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	mode := opts.SortMode
	if mode == "" {
		mode = domain.SortNewest
	}
	threshold := opts.TrendingThreshold
	if threshold <= 0 {
		threshold = domain.DefaultTrendingThreshold
	}
	delay := opts.ReplyReloadDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	return Model{
		comments:          comments,
		store:             store.New(),
		post:              post,
		user:              user,
		loggedIn:          loggedIn,
		sortMode:          mode,
		showPinned:        opts.ShowPinned,
		trendingThreshold: threshold,
		replyReloadDelay:  delay,
		page:              1,
		perPage:           defaultPerPage,
		loading:           true,
		expanded:          make(map[string]bool),
		replyPage:         make(map[string]int),
		replyHasMore:      make(map[string]bool),
		loadingReplies:    make(map[string]bool),
		pendingLikes:      make(map[string]likeSnapshot),
		likePulse:         make(map[string]bool),
		keys:              common.DefaultKeyMap(),
		spinner:           s,
	}
}

// Init starts the initial comment fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchComments(1, true, m.reqSeq),
		m.spinner.Tick,
	)
}

// SortMode returns the active sort mode.
func (m Model) SortMode() domain.SortMode {
	return m.sortMode
}

// ShowPinned reports whether the pinned section is visible.
func (m Model) ShowPinned() bool {
	return m.showPinned
}

// PostID returns the ID of the post this thread belongs to.
func (m Model) PostID() string {
	return m.post.ID
}

// Store exposes the comment store for the root model to apply
// composer results against.
func (m Model) Store() *store.Store {
	return m.store
}

// visible returns the sorted, pinned-filtered top-level comments.
func (m Model) visible() []domain.Comment {
	sorted := domain.SortComments(m.store.TopLevel(), m.sortMode)
	if m.showPinned {
		return sorted
	}
	out := make([]domain.Comment, 0, len(sorted))
	for _, c := range sorted {
		if c.IsPinned {
			continue
		}
		out = append(out, c)
	}
	return out
}

// rows flattens the visible thread into cursor targets, replies
// included for expanded parents.
func (m Model) rows() []row {
	var out []row
	for _, c := range m.visible() {
		out = append(out, row{id: c.ID})
		if !m.expanded[c.ID] {
			continue
		}
		for _, r := range m.store.Replies(c.ID) {
			out = append(out, row{id: r.ID, depth: 1})
		}
	}
	return out
}

// selected returns the comment under the cursor, if any.
func (m Model) selected() (domain.Comment, bool) {
	rows := m.rows()
	if len(rows) == 0 || m.cursor < 0 || m.cursor >= len(rows) {
		return domain.Comment{}, false
	}
	return m.store.Get(rows[m.cursor].id)
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
