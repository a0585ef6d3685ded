package app

import (
	"context"

	"termfeed/domain"
)

// SearchCategory selects which collection a search query runs against.
type SearchCategory string

const (
	SearchPosts    SearchCategory = "posts"
	SearchProfiles SearchCategory = "profiles"
	SearchGroups   SearchCategory = "groups"
)

// SearchResults holds the full collection for one category; the caller
// filters locally by substring.
type SearchResults struct {
	Posts    []domain.Post
	Profiles []domain.Profile
	Groups   []domain.Group
}

// SearchService fetches collections for the search overlay. The context is
// cancelled when a newer query supersedes the request.
type SearchService interface {
	Search(ctx context.Context, category SearchCategory) (SearchResults, error)
}
