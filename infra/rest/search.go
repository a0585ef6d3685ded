package rest

import (
	"context"
	"encoding/json"
	"fmt"

	"termfeed/app"
)

// searchService implements app.SearchService. The backend returns the full
// collection for a category; substring filtering happens client-side in
// the search overlay.
type searchService struct {
	client *Client
}

// NewSearchService creates a SearchService backed by the REST API.
func NewSearchService(client *Client) *searchService {
	return &searchService{client: client}
}

func (s *searchService) Search(ctx context.Context, category app.SearchCategory) (app.SearchResults, error) {
	// ctx is cancelled by the overlay when a newer query supersedes this
	// request.
	data, err := s.client.GetWithContext(ctx, fmt.Sprintf("/search/%s/", category))
	if err != nil {
		return app.SearchResults{}, fmt.Errorf("searching %s: %w", category, err)
	}

	var res app.SearchResults
	switch category {
	case app.SearchPosts:
		var payloads []postPayload
		if err := json.Unmarshal(data, &payloads); err != nil {
			return app.SearchResults{}, fmt.Errorf("parsing post results: %w", err)
		}
		for _, p := range payloads {
			res.Posts = append(res.Posts, mapPost(p))
		}
	case app.SearchProfiles:
		var payloads []profilePayload
		if err := json.Unmarshal(data, &payloads); err != nil {
			return app.SearchResults{}, fmt.Errorf("parsing profile results: %w", err)
		}
		for _, p := range payloads {
			res.Profiles = append(res.Profiles, mapProfile(p))
		}
	case app.SearchGroups:
		var payloads []groupPayload
		if err := json.Unmarshal(data, &payloads); err != nil {
			return app.SearchResults{}, fmt.Errorf("parsing group results: %w", err)
		}
		for _, g := range payloads {
			res.Groups = append(res.Groups, mapGroup(g))
		}
	default:
		return app.SearchResults{}, fmt.Errorf("unknown search category %q", category)
	}
	return res, nil
}
