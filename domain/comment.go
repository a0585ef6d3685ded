package domain

import "time"

// Author is the embedded user summary attached to a comment.
type Author struct {
	ID        string
	Username  string
	AvatarURL string
}

// MediaKind names the attachment slots a comment may fill.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaFile  MediaKind = "file"
)

// Media is one attachment on a comment. A comment carries at most one
// attachment per kind.
type Media struct {
	Kind MediaKind
	URL  string
	Name string
}

// Comment is a single comment in a post's thread.
//
// Replies is a cache: it may be empty or nil even when ReplyCount > 0.
// ReplyCount is the source of truth for "this comment has replies".
type Comment struct {
	ID         string
	Content    string // May be empty when media is present.
	CreatedAt  time.Time
	IsPinned   bool
	LikesCount int
	HasLiked   bool
	ReplyCount int
	Replies    []Comment
	ParentID   string // Empty for top-level comments.
	Author     Author
	Media      []Media

	// Server-computed permission flags. nil means the server omitted the
	// field and callers fall back to the local heuristic.
	IsOwner       *bool
	IsPostOwner   *bool
	UserCanPin    *bool
	UserCanEdit   *bool
	UserCanDelete *bool
}

// IsLocal reports whether this is an optimistic placeholder that has not
// been confirmed by the server yet.
func (c Comment) IsLocal() bool {
	return len(c.ID) > 6 && c.ID[:6] == "local-"
}

// Owned reports whether the comment belongs to currentUserID.
// Server flag wins when present.
func (c Comment) Owned(currentUserID string) bool {
	if c.IsOwner != nil {
		return *c.IsOwner
	}
	return currentUserID != "" && c.Author.ID == currentUserID
}

// OwnedByPostOwner reports whether the current user owns the post this
// comment lives under. Without the server flag there is no local way to
// know, so the answer defaults to false.
func (c Comment) OwnedByPostOwner() bool {
	if c.IsPostOwner != nil {
		return *c.IsPostOwner
	}
	return false
}

// CanEdit resolves the edit permission: server flag, then ownership.
func (c Comment) CanEdit(currentUserID string) bool {
	if c.UserCanEdit != nil {
		return *c.UserCanEdit
	}
	return c.Owned(currentUserID)
}

// CanDelete resolves the delete permission: server flag, then ownership.
func (c Comment) CanDelete(currentUserID string) bool {
	if c.UserCanDelete != nil {
		return *c.UserCanDelete
	}
	return c.Owned(currentUserID)
}

// CanPin resolves the pin permission. Pinning belongs to the post owner;
// without either server flag the default is deny.
func (c Comment) CanPin() bool {
	if c.UserCanPin != nil {
		return *c.UserCanPin
	}
	return c.OwnedByPostOwner()
}
