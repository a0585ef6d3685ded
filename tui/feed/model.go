package feed

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"termfeed/app"
	"termfeed/domain"
	"termfeed/tui/common"
)

const defaultPerPage = 20

// section selects which collection the feed lists.
type section int

const (
	sectionPosts section = iota
	sectionProfiles
	sectionGroups
)

// --- Messages ---

// PostsLoadedMsg is sent when a feed page arrives.
type PostsLoadedMsg struct {
	Page  int
	Posts []domain.Post
}

// ProfilesLoadedMsg is sent when the profile listing arrives.
type ProfilesLoadedMsg struct {
	Profiles []domain.Profile
}

// GroupsLoadedMsg is sent when the group listing arrives.
type GroupsLoadedMsg struct {
	Groups []domain.Group
}

// FeedErrorMsg is sent when any feed fetch fails.
type FeedErrorMsg struct {
	Err error
}

// OpenPostMsg asks the root model to open a post's thread.
type OpenPostMsg struct {
	Post domain.Post
}

// JoinResultMsg is sent after a group join attempt.
type JoinResultMsg struct {
	GroupID string
	Err     error
}

// --- Model ---

// Model holds the state for the feed view: the post timeline plus the
// profile and group directories behind tab.
type Model struct {
	posts    app.PostService
	profiles app.ProfileService
	groups   app.GroupService

	section  section
	list     []domain.Post
	members  []domain.Profile
	rooms    []domain.Group
	category string // Profile category filter, empty for all.

	page    int
	hasMore bool
	cursor  int
	loading bool
	err     error

	keys    common.KeyMap
	spinner spinner.Model
}

// New creates a feed model with injected dependencies.
func New(posts app.PostService, profiles app.ProfileService, groups app.GroupService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		posts:    posts,
		profiles: profiles,
		groups:   groups,
		page:     1,
		loading:  true,
		keys:     common.DefaultKeyMap(),
		spinner:  s,
	}
}

// Init starts the initial post fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(1),
		m.spinner.Tick,
	)
}

// Selected returns the highlighted post, if the posts section is active.
func (m Model) Selected() (domain.Post, bool) {
	if m.section != sectionPosts || len(m.list) == 0 || m.cursor >= len(m.list) {
		return domain.Post{}, false
	}
	return m.list[m.cursor], true
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PostsLoadedMsg:
		m.loading = false
		m.err = nil
		if msg.Page == 1 {
			m.list = msg.Posts
			m.cursor = 0
		} else {
			m.list = append(m.list, msg.Posts...)
		}
		m.page = msg.Page
		m.hasMore = len(msg.Posts) == defaultPerPage
		return m, nil

	case ProfilesLoadedMsg:
		m.loading = false
		m.err = nil
		m.members = msg.Profiles
		m.cursor = 0
		return m, nil

	case GroupsLoadedMsg:
		m.loading = false
		m.err = nil
		m.rooms = msg.Groups
		m.cursor = 0
		return m, nil

	case FeedErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case JoinResultMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		for i, g := range m.rooms {
			if g.ID == msg.GroupID {
				m.rooms[i].Joined = true
				m.rooms[i].Members++
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.String() == "tab":
		m.section = (m.section + 1) % 3
		m.cursor = 0
		m.err = nil
		return m.loadSection()

	case key.Matches(msg, m.keys.Refresh):
		return m.loadSection()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.LoadMore):
		if m.section != sectionPosts || !m.hasMore || m.loading {
			break
		}
		m.loading = true
		return m, m.fetchPosts(m.page + 1)

	case key.Matches(msg, m.keys.Open):
		switch m.section {
		case sectionPosts:
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenPostMsg{Post: p} }
			}
		case sectionGroups:
			if m.cursor < len(m.rooms) {
				g := m.rooms[m.cursor]
				if !g.Joined {
					return m, m.joinGroup(g.ID)
				}
			}
		}
	}

	return m, nil
}

func (m Model) loadSection() (Model, tea.Cmd) {
	m.loading = true
	switch m.section {
	case sectionPosts:
		return m, m.fetchPosts(1)
	case sectionProfiles:
		return m, m.fetchProfiles()
	default:
		return m, m.fetchGroups()
	}
}

func (m Model) sectionLen() int {
	switch m.section {
	case sectionPosts:
		return len(m.list)
	case sectionProfiles:
		return len(m.members)
	default:
		return len(m.rooms)
	}
}

// --- Commands ---

func (m Model) fetchPosts(page int) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		list, err := posts.ListPosts(context.Background(), page, defaultPerPage)
		if err != nil {
			return FeedErrorMsg{Err: err}
		}
		return PostsLoadedMsg{Page: page, Posts: list}
	}
}

func (m Model) fetchProfiles() tea.Cmd {
	profiles := m.profiles
	category := m.category
	return func() tea.Msg {
		list, err := profiles.ProfilesByCategory(context.Background(), category)
		if err != nil {
			return FeedErrorMsg{Err: err}
		}
		return ProfilesLoadedMsg{Profiles: list}
	}
}

func (m Model) fetchGroups() tea.Cmd {
	groups := m.groups
	return func() tea.Msg {
		list, err := groups.ListGroups(context.Background())
		if err != nil {
			return FeedErrorMsg{Err: err}
		}
		return GroupsLoadedMsg{Groups: list}
	}
}

func (m Model) joinGroup(id string) tea.Cmd {
	groups := m.groups
	return func() tea.Msg {
		return JoinResultMsg{GroupID: id, Err: groups.JoinGroup(context.Background(), id)}
	}
}
