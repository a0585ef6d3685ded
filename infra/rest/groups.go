package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"termfeed/domain"
)

// groupService implements app.GroupService.
type groupService struct {
	client *Client
}

// NewGroupService creates a GroupService backed by the REST API.
func NewGroupService(client *Client) *groupService {
	return &groupService{client: client}
}

type groupPayload struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	MembersCount int    `json:"members_count"`
	IsMember     bool   `json:"is_member"`
}

func (s *groupService) ListGroups(_ context.Context) ([]domain.Group, error) {
	data, err := s.client.Get("/app/groups/")
	if err != nil {
		return nil, fmt.Errorf("fetching groups: %w", err)
	}

	var payloads []groupPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("parsing groups: %w", err)
	}

	out := make([]domain.Group, 0, len(payloads))
	for _, g := range payloads {
		out = append(out, mapGroup(g))
	}
	return out, nil
}

func (s *groupService) JoinGroup(_ context.Context, groupID string) error {
	if _, err := s.client.PostJSON(fmt.Sprintf("/app/groups/%s/join/", url.PathEscape(groupID)), nil); err != nil {
		return fmt.Errorf("joining group: %w", err)
	}
	return nil
}

func mapGroup(g groupPayload) domain.Group {
	return domain.Group{
		ID:          strconv.FormatInt(g.ID, 10),
		Name:        g.Name,
		Description: g.Description,
		Members:     g.MembersCount,
		Joined:      g.IsMember,
	}
}
