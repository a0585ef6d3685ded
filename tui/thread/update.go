package thread

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"termfeed/app"
	"termfeed/domain"
)

// Update handles messages for the thread view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CommentsLoadedMsg:
		if msg.Seq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.page = msg.Page
		m.store.MergeTopLevel(msg.Result.Comments, msg.Reset)
		if msg.Result.HasNext != nil {
			m.hasMore = *msg.Result.HasNext
		} else {
			m.hasMore = len(msg.Result.Comments) == m.perPage
		}
		if msg.Reset {
			m.cursor = 0
		}
		m.clampCursor()
		return m, nil

	case CommentsErrorMsg:
		if msg.Seq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case RepliesLoadedMsg:
		m.loadingReplies[msg.ParentID] = false
		m.replyPage[msg.ParentID] = msg.Page
		m.store.MergeReplies(msg.ParentID, msg.Result.Comments, msg.Reset)
		if msg.Result.HasNext != nil {
			m.replyHasMore[msg.ParentID] = *msg.Result.HasNext
		} else {
			m.replyHasMore[msg.ParentID] = len(msg.Result.Comments) == app.ReplyPageSize
		}
		m.clampCursor()
		return m, nil

	case RepliesErrorMsg:
		m.loadingReplies[msg.ParentID] = false
		m.status = "Could not load replies: " + msg.Err.Error()
		return m, nil

	case ReplyReloadMsg:
		if m.loadingReplies[msg.ParentID] {
			return m, nil
		}
		m.loadingReplies[msg.ParentID] = true
		return m, m.fetchReplies(msg.ParentID, 1, true)

	case AddOptimisticMsg:
		c := domain.Comment{
			ID:        msg.LocalID,
			Content:   msg.Content,
			CreatedAt: time.Now(),
			ParentID:  msg.ParentID,
			Author: domain.Author{
				ID:       m.user.ID,
				Username: m.user.Username,
			},
		}
		if msg.ParentID == "" {
			m.store.AddTopLevel(c)
			m.cursor = 0
		} else {
			m.expanded[msg.ParentID] = true
			m.store.PrependReply(msg.ParentID, c)
		}
		m.status = "Posting..."
		return m, nil

	case CreateResultMsg:
		if msg.Err != nil {
			m.store.Delete(msg.LocalID)
			m.clampCursor()
			m.status = "Error posting: " + msg.Err.Error()
			return m, nil
		}
		m.store.Delete(msg.LocalID)
		if msg.ParentID == "" {
			m.store.AddTopLevel(msg.Comment)
			m.status = "Comment posted."
			m.clampCursor()
			return m, nil
		}
		m.store.PrependReply(msg.ParentID, msg.Comment)
		m.status = "Reply posted."
		m.clampCursor()
		return m, m.scheduleReplyReload(msg.ParentID)

	case EditResultMsg:
		if msg.Err != nil {
			m.status = "Error updating: " + msg.Err.Error()
			return m, nil
		}
		m.store.Update(msg.Comment)
		m.status = "Comment updated."
		return m, nil

	case LikeResultMsg:
		snap, pending := m.pendingLikes[msg.ID]
		delete(m.pendingLikes, msg.ID)
		if msg.Err != nil {
			if pending {
				m.store.SetLike(msg.ID, snap.liked, snap.count)
			}
			delete(m.likePulse, msg.ID)
			m.status = "Error: " + msg.Err.Error()
			return m, nil
		}
		m.store.SetLike(msg.ID, msg.Liked, msg.Count)
		return m, nil

	case LikePulseEndMsg:
		delete(m.likePulse, msg.ID)
		return m, nil

	case PinResultMsg:
		if msg.Err != nil {
			m.status = "Error: " + msg.Err.Error()
			return m, nil
		}
		m.store.SetPinned(msg.ID, msg.Pinned)
		if msg.Pinned {
			m.status = "Comment pinned."
		} else {
			m.status = "Comment unpinned."
		}
		return m, nil

	case DeleteResultMsg:
		if msg.Err != nil {
			m.status = "Error deleting: " + msg.Err.Error()
			return m, nil
		}
		m.store.Delete(msg.ID)
		m.clampCursor()
		m.status = "Comment deleted."
		return m, nil

	case ReportResultMsg:
		if msg.Err != nil {
			m.status = "Error reporting: " + msg.Err.Error()
			return m, nil
		}
		m.status = "Report sent. Thanks for flagging."
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Confirmation prompts swallow everything until resolved.
	if m.confirmDelete != "" {
		switch msg.String() {
		case "y":
			id := m.confirmDelete
			m.confirmDelete = ""
			m.status = "Deleting..."
			return m, m.deleteComment(id)
		case "n", "esc":
			m.confirmDelete = ""
		}
		return m, nil
	}
	if m.confirmReport != "" {
		id := m.confirmReport
		switch msg.String() {
		case "1", "2", "3":
			reasons := map[string]string{"1": "spam", "2": "abuse", "3": "inappropriate"}
			m.confirmReport = ""
			m.status = "Reporting..."
			return m, m.reportComment(id, reasons[msg.String()])
		case "n", "esc":
			m.confirmReport = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.reqSeq++
		m.loading = true
		m.status = ""
		return m, m.fetchComments(1, true, m.reqSeq)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		c, ok := m.selected()
		if !ok || c.ParentID != "" {
			break
		}
		if m.expanded[c.ID] {
			m.expanded[c.ID] = false
			break
		}
		if c.ReplyCount == 0 && len(m.store.Replies(c.ID)) == 0 {
			break
		}
		m.expanded[c.ID] = true
		if len(m.store.Replies(c.ID)) == 0 && !m.loadingReplies[c.ID] {
			m.loadingReplies[c.ID] = true
			return m, m.fetchReplies(c.ID, 1, true)
		}

	case key.Matches(msg, m.keys.LoadMore):
		return m.loadMore()

	case key.Matches(msg, m.keys.Like):
		return m.toggleLike()

	case key.Matches(msg, m.keys.Compose):
		if !m.loggedIn {
			m.status = "Log in to comment."
			break
		}
		return m, request(ComposeRequestMsg{})

	case key.Matches(msg, m.keys.ComposeABuf):
		if !m.loggedIn {
			m.status = "Log in to comment."
			break
		}
		return m, request(ComposeRequestMsg{UseBuffer: true})

	case key.Matches(msg, m.keys.Reply):
		if !m.loggedIn {
			m.status = "Log in to reply."
			break
		}
		c, ok := m.selected()
		if !ok || c.IsLocal() {
			break
		}
		parent := c.ID
		if c.ParentID != "" {
			parent = c.ParentID
		}
		return m, request(ComposeRequestMsg{ParentID: parent})

	case key.Matches(msg, m.keys.Edit):
		c, ok := m.selected()
		if !ok || c.IsLocal() || !c.CanEdit(m.user.ID) {
			break
		}
		return m, request(ComposeRequestMsg{EditID: c.ID})

	case key.Matches(msg, m.keys.Delete):
		c, ok := m.selected()
		if !ok || c.IsLocal() || !c.CanDelete(m.user.ID) {
			break
		}
		m.confirmDelete = c.ID

	case key.Matches(msg, m.keys.Pin):
		c, ok := m.selected()
		if !ok || c.IsLocal() || c.ParentID != "" || !c.CanPin() {
			break
		}
		m.status = "Updating pin..."
		return m, m.pinComment(c.ID)

	case key.Matches(msg, m.keys.Report):
		if !m.loggedIn {
			m.status = "Log in to report."
			break
		}
		c, ok := m.selected()
		if !ok || c.IsLocal() || c.Owned(m.user.ID) {
			break
		}
		m.confirmReport = c.ID

	case key.Matches(msg, m.keys.Sort):
		m.sortMode = nextSortMode(m.sortMode)
		m.cursor = 0
		return m, request(SortChangedMsg{SortMode: m.sortMode, ShowPinned: m.showPinned})

	case key.Matches(msg, m.keys.TogglePinned):
		m.showPinned = !m.showPinned
		m.clampCursor()
		return m, request(SortChangedMsg{SortMode: m.sortMode, ShowPinned: m.showPinned})
	}

	return m, nil
}

// loadMore fetches the next reply page when the cursor sits inside an
// expanded thread, and the next top-level page otherwise.
func (m Model) loadMore() (Model, tea.Cmd) {
	c, ok := m.selected()
	if ok {
		parent := ""
		if c.ParentID != "" {
			parent = c.ParentID
		} else if m.expanded[c.ID] {
			parent = c.ID
		}
		if parent != "" {
			if !m.replyHasMore[parent] || m.loadingReplies[parent] {
				return m, nil
			}
			m.loadingReplies[parent] = true
			return m, m.fetchReplies(parent, m.replyPage[parent]+1, false)
		}
	}
	if !m.hasMore || m.loading {
		return m, nil
	}
	m.loading = true
	return m, m.fetchComments(m.page+1, false, m.reqSeq)
}

// toggleLike flips the like state locally, then reconciles with the
// server's response. The snapshot allows rollback on failure.
func (m Model) toggleLike() (Model, tea.Cmd) {
	if !m.loggedIn {
		m.status = "Log in to like."
		return m, nil
	}
	c, ok := m.selected()
	if !ok || c.IsLocal() {
		return m, nil
	}
	if _, inFlight := m.pendingLikes[c.ID]; inFlight {
		return m, nil
	}
	m.pendingLikes[c.ID] = likeSnapshot{liked: c.HasLiked, count: c.LikesCount}
	newCount := c.LikesCount + 1
	if c.HasLiked {
		newCount = c.LikesCount - 1
	}
	m.store.SetLike(c.ID, !c.HasLiked, newCount)
	m.likePulse[c.ID] = true
	return m, tea.Batch(m.likeComment(c.ID), likePulseTimer(c.ID))
}

func nextSortMode(mode domain.SortMode) domain.SortMode {
	for i, s := range domain.SortModes {
		if s == mode {
			return domain.SortModes[(i+1)%len(domain.SortModes)]
		}
	}
	return domain.SortNewest
}

// request wraps a message into a tea.Cmd for immediate delivery.
func request(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
