package thread

import (
	"termfeed/app"
	"termfeed/domain"
)

// CommentsLoadedMsg is sent when a top-level comment page arrives.
type CommentsLoadedMsg struct {
	Seq    int
	Page   int
	Reset  bool
	Result app.CommentPage
}

// CommentsErrorMsg is sent when a top-level fetch fails.
type CommentsErrorMsg struct {
	Seq int
	Err error
}

// RepliesLoadedMsg is sent when a reply page for a parent arrives.
type RepliesLoadedMsg struct {
	ParentID string
	Page     int
	Reset    bool
	Result   app.CommentPage
}

// RepliesErrorMsg is sent when a reply fetch fails.
type RepliesErrorMsg struct {
	ParentID string
	Err      error
}

// ReplyReloadMsg fires after the post-reply settle delay and triggers a
// fresh first-page reply fetch for the parent.
type ReplyReloadMsg struct {
	ParentID string
}

// LikeResultMsg carries the server's authoritative like state.
type LikeResultMsg struct {
	ID    string
	Liked bool
	Count int
	Err   error
}

// LikePulseEndMsg clears the transient like animation flag.
type LikePulseEndMsg struct {
	ID string
}

// PinResultMsg carries the server's pin state after a toggle.
type PinResultMsg struct {
	ID     string
	Pinned bool
	Err    error
}

// DeleteResultMsg is sent after a delete attempt.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// ReportResultMsg is sent after a report attempt.
type ReportResultMsg struct {
	ID  string
	Err error
}

// AddOptimisticMsg inserts a locally composed comment before the
// server confirms it.
type AddOptimisticMsg struct {
	LocalID  string
	ParentID string
	Content  string
}

// CreateResultMsg reconciles an optimistic comment with the server's
// version, or rolls it back on failure.
type CreateResultMsg struct {
	LocalID  string
	ParentID string
	Comment  domain.Comment
	Err      error
}

// EditResultMsg carries the server's version of an edited comment.
type EditResultMsg struct {
	ID      string
	Comment domain.Comment
	Err     error
}

// ComposeRequestMsg asks the root model to open the composer.
type ComposeRequestMsg struct {
	ParentID  string
	EditID    string
	UseBuffer bool
}

// SortChangedMsg tells the root model to persist the new list policy.
type SortChangedMsg struct {
	SortMode   domain.SortMode
	ShowPinned bool
}
