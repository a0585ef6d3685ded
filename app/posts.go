package app

import (
	"context"

	"termfeed/domain"
)

// PostService fetches the post feed.
type PostService interface {
	// ListPosts returns page `page` of the feed, newest first.
	ListPosts(ctx context.Context, page, perPage int) ([]domain.Post, error)

	// GetPost returns one post by ID.
	GetPost(ctx context.Context, id string) (domain.Post, error)
}

// ProfileService lists platform members.
type ProfileService interface {
	// ProfilesByCategory returns the profiles of one category; empty
	// category means all.
	ProfilesByCategory(ctx context.Context, category string) ([]domain.Profile, error)

	// ProfileByUsername looks up a single profile.
	ProfileByUsername(ctx context.Context, username string) (domain.Profile, error)
}

// GroupService lists and joins groups.
type GroupService interface {
	ListGroups(ctx context.Context) ([]domain.Group, error)
	JoinGroup(ctx context.Context, groupID string) error
}
