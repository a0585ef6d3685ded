package thread

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const likePulseDuration = 900 * time.Millisecond

func (m Model) fetchComments(page int, reset bool, seq int) tea.Cmd {
	comments := m.comments
	postID := m.post.ID
	perPage := m.perPage
	return func() tea.Msg {
		result, err := comments.ListComments(context.Background(), postID, page, perPage, "-created_at")
		if err != nil {
			return CommentsErrorMsg{Seq: seq, Err: err}
		}
		return CommentsLoadedMsg{Seq: seq, Page: page, Reset: reset, Result: result}
	}
}

func (m Model) fetchReplies(parentID string, page int, reset bool) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		result, err := comments.ListReplies(context.Background(), parentID, page)
		if err != nil {
			return RepliesErrorMsg{ParentID: parentID, Err: err}
		}
		return RepliesLoadedMsg{ParentID: parentID, Page: page, Reset: reset, Result: result}
	}
}

func (m Model) likeComment(id string) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		liked, count, err := comments.Like(context.Background(), id)
		return LikeResultMsg{ID: id, Liked: liked, Count: count, Err: err}
	}
}

func (m Model) pinComment(id string) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		pinned, err := comments.Pin(context.Background(), id)
		return PinResultMsg{ID: id, Pinned: pinned, Err: err}
	}
}

func (m Model) deleteComment(id string) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		return DeleteResultMsg{ID: id, Err: comments.Delete(context.Background(), id)}
	}
}

func (m Model) reportComment(id, reason string) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		return ReportResultMsg{ID: id, Err: comments.Report(context.Background(), id, reason)}
	}
}

// scheduleReplyReload waits out the settle delay before re-fetching the
// first reply page, so the server response includes the new reply.
func (m Model) scheduleReplyReload(parentID string) tea.Cmd {
	return tea.Tick(m.replyReloadDelay, func(time.Time) tea.Msg {
		return ReplyReloadMsg{ParentID: parentID}
	})
}

func likePulseTimer(id string) tea.Cmd {
	return tea.Tick(likePulseDuration, func(time.Time) tea.Msg {
		return LikePulseEndMsg{ID: id}
	})
}
