package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"termfeed/domain"
	"termfeed/infra/auth"
)

// accountService implements app.AccountService. The current-user summary
// is cached to disk so the next session can render immediately while the
// fresh copy loads.
type accountService struct {
	client    *Client
	cachePath string
}

// NewAccountService creates an AccountService backed by the REST API.
// cachePath may be empty to disable the on-disk user cache.
func NewAccountService(client *Client, cachePath string) *accountService {
	return &accountService{client: client, cachePath: cachePath}
}

func (s *accountService) CurrentUser(_ context.Context) (domain.User, error) {
	data, err := s.client.Get("/app/api/current-user-profile/")
	if err != nil {
		return domain.User{}, fmt.Errorf("fetching current user: %w", err)
	}

	var payload struct {
		ID             int64  `json:"id"`
		Username       string `json:"username"`
		Email          string `json:"email"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.User{}, fmt.Errorf("parsing current user: %w", err)
	}

	u := domain.User{
		ID:        strconv.FormatInt(payload.ID, 10),
		Username:  payload.Username,
		Email:     payload.Email,
		AvatarURL: payload.ProfilePicture,
	}
	if s.cachePath != "" {
		_ = auth.SaveCachedUser(s.cachePath, u)
	}
	return u, nil
}

func (s *accountService) RequestPasswordChange(_ context.Context) error {
	if _, err := s.client.PostJSON("/accounts/password/request/", nil); err != nil {
		return fmt.Errorf("requesting password change: %w", err)
	}
	return nil
}

func (s *accountService) VerifyPasswordChange(_ context.Context, code string) (string, error) {
	return s.verify("/accounts/password/verify/", code)
}

func (s *accountService) CommitPasswordChange(_ context.Context, ticket, newPassword string) error {
	body := map[string]any{"ticket": ticket, "new_password": newPassword}
	if _, err := s.client.PostJSON("/accounts/password/commit/", body); err != nil {
		return fmt.Errorf("changing password: %w", err)
	}
	return nil
}

func (s *accountService) RequestDeletion(_ context.Context) error {
	if _, err := s.client.PostJSON("/accounts/delete/request/", nil); err != nil {
		return fmt.Errorf("requesting account deletion: %w", err)
	}
	return nil
}

func (s *accountService) VerifyDeletion(_ context.Context, code string) (string, error) {
	return s.verify("/accounts/delete/verify/", code)
}

func (s *accountService) CommitDeletion(_ context.Context, ticket string) error {
	body := map[string]any{"ticket": ticket}
	if _, err := s.client.PostJSON("/accounts/delete/commit/", body); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	return nil
}

func (s *accountService) verify(path, code string) (string, error) {
	data, err := s.client.PostJSON(path, map[string]any{"code": code})
	if err != nil {
		return "", fmt.Errorf("verifying code: %w", err)
	}
	var resp struct {
		Ticket string `json:"ticket"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("parsing verification response: %w", err)
	}
	if resp.Ticket == "" {
		return "", fmt.Errorf("verification response missing ticket")
	}
	return resp.Ticket, nil
}
