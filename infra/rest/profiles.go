package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"termfeed/domain"
)

// profileService implements app.ProfileService.
type profileService struct {
	client *Client
}

// NewProfileService creates a ProfileService backed by the REST API.
func NewProfileService(client *Client) *profileService {
	return &profileService{client: client}
}

type profilePayload struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
	Category       string `json:"category"`
	Followers      int    `json:"followers_count"`
	Following      int    `json:"following_count"`
}

func (s *profileService) ProfilesByCategory(_ context.Context, category string) ([]domain.Profile, error) {
	path := "/app/profiles/category/"
	if category != "" {
		q := url.Values{}
		q.Set("category", category)
		path += "?" + q.Encode()
	}

	data, err := s.client.Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetching profiles: %w", err)
	}

	var payloads []profilePayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}

	out := make([]domain.Profile, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, mapProfile(p))
	}
	return out, nil
}

func (s *profileService) ProfileByUsername(_ context.Context, username string) (domain.Profile, error) {
	data, err := s.client.Get(fmt.Sprintf("/comment/users/profile/by-username/%s/", url.PathEscape(username)))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetching profile %s: %w", username, err)
	}
	var p profilePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return mapProfile(p), nil
}

func mapProfile(p profilePayload) domain.Profile {
	return domain.Profile{
		ID:        strconv.FormatInt(p.ID, 10),
		Username:  p.Username,
		FullName:  p.FullName,
		Bio:       p.Bio,
		AvatarURL: p.ProfilePicture,
		Category:  p.Category,
		Followers: p.Followers,
		Following: p.Following,
	}
}
