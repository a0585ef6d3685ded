package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"termfeed/app"
	"termfeed/domain"
	"termfeed/infra/config"
	"termfeed/infra/editor"
	"termfeed/tui/account"
	"termfeed/tui/common"
	"termfeed/tui/compose"
	"termfeed/tui/feed"
	"termfeed/tui/search"
	"termfeed/tui/thread"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Comments app.CommentService
	Posts    app.PostService
	Profiles app.ProfileService
	Groups   app.GroupService
	Search   app.SearchService
	Account  app.AccountService
	Resolver app.MentionResolver
	Editor   *editor.EnvEditor

	User     domain.User
	LoggedIn bool
	Config   config.Config
	UIState  config.UIState
	Log      zerolog.Logger
}

type activeView int

const (
	feedView activeView = iota
	threadView
	composeView
	searchView
	accountView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps    Deps
	active  activeView
	prev    activeView // Where the composer and search return to.
	uiState config.UIState

	feed    feed.Model
	thread  thread.Model
	compose compose.Model
	search  search.Model
	account account.Model

	hasThread bool
	keys      common.KeyMap
	status    string // Transient status message.
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:    deps,
		active:  feedView,
		uiState: deps.UIState,
		feed:    feed.New(deps.Posts, deps.Profiles, deps.Groups),
		keys:    common.DefaultKeyMap(),
	}
}

// Init starts the feed fetch and refreshes the authenticated user.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.feed.Init()}
	if a.deps.LoggedIn {
		cmds = append(cmds, a.refreshUser())
	}
	return tea.Batch(cmds...)
}

type userMsg struct {
	user domain.User
	err  error
}

func (a App) refreshUser() tea.Cmd {
	svc := a.deps.Account
	return func() tea.Msg {
		user, err := svc.CurrentUser(context.Background())
		return userMsg{user: user, err: err}
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if model, cmd, handled := a.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case userMsg:
		if msg.err != nil {
			a.deps.Log.Warn().Err(msg.err).Msg("refreshing current user failed")
			return a, nil
		}
		a.deps.User = msg.user
		return a, nil

	case feed.OpenPostMsg:
		return a.openThread(msg.Post)

	case search.OpenResultMsg:
		return a.openSearchResult(msg)

	case thread.ComposeRequestMsg:
		return a.openComposer(msg)

	case thread.SortChangedMsg:
		a.uiState = config.UIState{SortMode: string(msg.SortMode), ShowPinned: msg.ShowPinned}
		if err := config.SaveUIState(a.deps.Config.UIStatePath, a.uiState); err != nil {
			a.deps.Log.Warn().Err(err).Msg("persisting ui state failed")
		}
		return a, nil

	case compose.DoneMsg:
		return a.finishCompose(msg)

	case account.DeletedMsg:
		return a, tea.Sequence(tea.Println("Account deleted. Goodbye."), tea.Quit)

	case spinner.TickMsg:
		// Spinners run in several views; each ignores ticks tagged with
		// another spinner's ID. The thread gets its ticks even when search
		// or the composer is frontmost, since its fetches keep running.
		if a.hasThread && a.active != threadView {
			var tcmd tea.Cmd
			a.thread, tcmd = a.thread.Update(msg)
			model, cmd := a.delegate(msg)
			return model, tea.Batch(cmd, tcmd)
		}
		return a.delegate(msg)

	// Thread messages must reach the thread even when another view is on
	// top: reply reloads and optimistic results keep flowing while the
	// user is off in search or the composer.
	case thread.CommentsLoadedMsg, thread.CommentsErrorMsg,
		thread.RepliesLoadedMsg, thread.RepliesErrorMsg,
		thread.ReplyReloadMsg, thread.LikeResultMsg, thread.LikePulseEndMsg,
		thread.PinResultMsg, thread.DeleteResultMsg, thread.ReportResultMsg,
		thread.CreateResultMsg, thread.EditResultMsg:
		if !a.hasThread {
			return a, nil
		}
		var cmd tea.Cmd
		a.thread, cmd = a.thread.Update(msg)
		return a, cmd
	}

	return a.delegate(msg)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch a.active {
	case feedView:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit, true
		case key.Matches(msg, a.keys.Search):
			a.prev = a.active
			a.active = searchView
			a.status = ""
			a.search = search.New(a.deps.Search, a.deps.Config.RecentSearchPath)
			return a, a.search.Init(), true
		case key.Matches(msg, a.keys.Account):
			if !a.deps.LoggedIn {
				a.status = "Log in to manage your account."
				return a, nil, true
			}
			a.active = accountView
			a.status = ""
			a.account = account.New(a.deps.Account, a.deps.User)
			return a, a.account.Init(), true
		}

	case threadView:
		switch {
		case key.Matches(msg, a.keys.Back):
			a.active = feedView
			a.status = ""
			return a, nil, true
		case key.Matches(msg, a.keys.Search):
			a.prev = a.active
			a.active = searchView
			a.status = ""
			a.search = search.New(a.deps.Search, a.deps.Config.RecentSearchPath)
			return a, a.search.Init(), true
		}

	case searchView:
		if key.Matches(msg, a.keys.Back) {
			a.active = a.prev
			return a, nil, true
		}

	case accountView:
		if key.Matches(msg, a.keys.Back) && a.account.AtRoot() {
			a.active = feedView
			return a, nil, true
		}
	}
	return a, nil, false
}

func (a App) openThread(post domain.Post) (tea.Model, tea.Cmd) {
	a.thread = thread.New(a.deps.Comments, post, a.deps.User, a.deps.LoggedIn, thread.Options{
		SortMode:          domain.SortMode(a.uiState.SortMode),
		ShowPinned:        a.uiState.ShowPinned,
		TrendingThreshold: a.deps.Config.TrendingThreshold,
		ReplyReloadDelay:  a.deps.Config.ReplyReloadDelay,
	})
	a.hasThread = true
	a.active = threadView
	a.status = ""
	return a, a.thread.Init()
}

func (a App) openSearchResult(msg search.OpenResultMsg) (tea.Model, tea.Cmd) {
	switch msg.Category {
	case app.SearchPosts:
		posts := a.deps.Posts
		id := msg.PostID
		return a, func() tea.Msg {
			post, err := posts.GetPost(context.Background(), id)
			if err != nil {
				return userStatusMsg{text: "Error: " + err.Error()}
			}
			return feed.OpenPostMsg{Post: post}
		}
	case app.SearchProfiles:
		profiles := a.deps.Profiles
		username := msg.Username
		return a, func() tea.Msg {
			p, err := profiles.ProfileByUsername(context.Background(), username)
			if err != nil {
				return userStatusMsg{text: "Error: " + err.Error()}
			}
			return userStatusMsg{text: fmt.Sprintf("@%s · %s · %d followers", p.Username, p.FullName, p.Followers)}
		}
	case app.SearchGroups:
		groups := a.deps.Groups
		id := msg.GroupID
		return a, func() tea.Msg {
			if err := groups.JoinGroup(context.Background(), id); err != nil {
				return userStatusMsg{text: "Error: " + err.Error()}
			}
			return userStatusMsg{text: "Joined group."}
		}
	}
	return a, nil
}

type userStatusMsg struct {
	text string
}

func (a App) openComposer(msg thread.ComposeRequestMsg) (tea.Model, tea.Cmd) {
	params := compose.Params{
		LoggedIn: a.deps.LoggedIn,
		ParentID: msg.ParentID,
	}
	if msg.ParentID != "" {
		if parent, ok := a.thread.Store().Get(msg.ParentID); ok {
			params.ReplyTo = parent.Author.Username
		}
	}
	if msg.EditID != "" {
		c, ok := a.thread.Store().Get(msg.EditID)
		if !ok {
			return a, nil
		}
		params.EditID = msg.EditID
		params.Content = c.Content
		for _, item := range c.Media {
			params.ExistingMedia = append(params.ExistingMedia, item.Kind)
		}
	}

	a.prev = a.active
	a.active = composeView
	a.status = ""
	if msg.UseBuffer {
		a.compose = compose.NewEditor(a.deps.Editor, params)
	} else {
		a.compose = compose.NewInline(params)
	}
	return a, a.compose.Init()
}

func (a App) finishCompose(msg compose.DoneMsg) (tea.Model, tea.Cmd) {
	a.active = a.prev
	if a.active == composeView {
		a.active = threadView
	}

	if msg.Err != nil {
		a.status = "Error: " + msg.Err.Error()
		return a, nil
	}
	if msg.Cancelled {
		a.status = "Cancelled."
		return a, nil
	}

	if msg.IsEdit {
		return a, a.submitEdit(msg)
	}

	localID := "local-" + uuid.NewString()
	var cmd tea.Cmd
	a.thread, cmd = a.thread.Update(thread.AddOptimisticMsg{
		LocalID:  localID,
		ParentID: msg.ParentID,
		Content:  msg.Content,
	})
	return a, tea.Batch(cmd, a.submitCreate(localID, msg))
}

func (a App) submitCreate(localID string, msg compose.DoneMsg) tea.Cmd {
	comments := a.deps.Comments
	resolver := a.deps.Resolver
	log := a.deps.Log
	postID := a.thread.PostID()
	return func() tea.Msg {
		// Mention lookups warm the session cache; a failed lookup only
		// means the mention stays plain text.
		for _, username := range msg.Mentions {
			if _, err := resolver.ResolveMention(context.Background(), username); err != nil {
				log.Debug().Str("mention", username).Err(err).Msg("mention did not resolve")
			}
		}
		c, err := comments.Create(context.Background(), postID, app.NewComment{
			Content:   msg.Content,
			ParentID:  msg.ParentID,
			MediaKind: msg.MediaKind,
			MediaPath: msg.MediaPath,
		})
		return thread.CreateResultMsg{LocalID: localID, ParentID: msg.ParentID, Comment: c, Err: err}
	}
}

func (a App) submitEdit(msg compose.DoneMsg) tea.Cmd {
	comments := a.deps.Comments
	return func() tea.Msg {
		c, err := comments.Edit(context.Background(), msg.CommentID, app.CommentEdit{
			Content:     msg.Content,
			MediaPath:   msg.MediaPath,
			MediaKind:   msg.MediaKind,
			DeleteMedia: msg.DeleteMedia,
		})
		return thread.EditResultMsg{ID: msg.CommentID, Comment: c, Err: err}
	}
}

func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if status, ok := msg.(userStatusMsg); ok {
		a.status = status.text
		return a, nil
	}

	var cmd tea.Cmd
	switch a.active {
	case feedView:
		a.feed, cmd = a.feed.Update(msg)
	case threadView:
		a.thread, cmd = a.thread.Update(msg)
	case composeView:
		a.compose, cmd = a.compose.Update(msg)
	case searchView:
		a.search, cmd = a.search.Update(msg)
	case accountView:
		a.account, cmd = a.account.Update(msg)
	}
	return a, cmd
}

// View renders the active sub-model.
func (a App) View() string {
	var s string
	switch a.active {
	case feedView:
		s = a.feed.View()
	case threadView:
		s = a.thread.View()
	case composeView:
		s = a.compose.View()
	case searchView:
		s = a.search.View()
	case accountView:
		s = a.account.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}
	return s
}
