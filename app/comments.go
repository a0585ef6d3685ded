package app

import (
	"context"

	"termfeed/domain"
)

// ReplyPageSize is the fixed page size for reply listings.
const ReplyPageSize = 10

// CommentPage is one page of comments plus the server's pagination hint.
// HasNext is nil when the server omitted the flag; callers then infer
// "has more" from the page length.
type CommentPage struct {
	Comments []domain.Comment
	HasNext  *bool
}

// NewComment is the submission payload for a comment or reply.
// MediaPath points at a local file; at most one attachment is ever set.
type NewComment struct {
	Content   string
	ParentID  string // Empty for a top-level comment.
	MediaKind domain.MediaKind
	MediaPath string
}

// CommentEdit is the payload for editing an existing comment.
type CommentEdit struct {
	Content     string
	MediaPath   string
	MediaKind   domain.MediaKind
	DeleteMedia []domain.MediaKind // Existing media marked for removal.
}

// CommentService covers the comment endpoints of one post's thread.
type CommentService interface {
	// ListComments returns page `page` of a post's top-level comments.
	ListComments(ctx context.Context, postID string, page, perPage int, order string) (CommentPage, error)

	// ListReplies returns page `page` of a comment's replies, oldest first.
	ListReplies(ctx context.Context, commentID string, page int) (CommentPage, error)

	// Create submits a new comment or reply and returns the canonical
	// server object.
	Create(ctx context.Context, postID string, nc NewComment) (domain.Comment, error)

	// Edit updates an existing comment.
	Edit(ctx context.Context, commentID string, edit CommentEdit) (domain.Comment, error)

	// Delete removes a comment.
	Delete(ctx context.Context, commentID string) error

	// Like toggles the like and returns the authoritative state and count.
	Like(ctx context.Context, commentID string) (liked bool, count int, err error)

	// Pin toggles the pinned flag and returns the authoritative state.
	Pin(ctx context.Context, commentID string) (pinned bool, err error)

	// Report files a report against a comment.
	Report(ctx context.Context, commentID, reason string) error
}

// MentionResolver maps an @username to a profile ID. Implementations cache
// per username for the session so repeated mentions cost one lookup.
type MentionResolver interface {
	ResolveMention(ctx context.Context, username string) (profileID string, err error)
}
