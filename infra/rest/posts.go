package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"termfeed/domain"
)

// postService implements app.PostService.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the REST API.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

type postPayload struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	CreatedAt     string      `json:"created_at"`
	User          userPayload `json:"user"`
	CommentsCount int         `json:"comments_count"`
	LikesCount    int         `json:"likes_count"`
}

func (s *postService) ListPosts(_ context.Context, page, perPage int) ([]domain.Post, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("order", "-created_at")

	data, err := s.client.Get("/app/posts/?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}

	var payloads []postPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("parsing posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(payloads))
	for _, p := range payloads {
		posts = append(posts, mapPost(p))
	}
	return posts, nil
}

func (s *postService) GetPost(_ context.Context, id string) (domain.Post, error) {
	data, err := s.client.Get(fmt.Sprintf("/app/posts/%s/", url.PathEscape(id)))
	if err != nil {
		return domain.Post{}, fmt.Errorf("fetching post: %w", err)
	}
	var p postPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Post{}, fmt.Errorf("parsing post: %w", err)
	}
	return mapPost(p), nil
}

func mapPost(p postPayload) domain.Post {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return domain.Post{
		ID:        strconv.FormatInt(p.ID, 10),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: createdAt,
		Author: domain.Author{
			ID:        strconv.FormatInt(p.User.ID, 10),
			Username:  p.User.Username,
			AvatarURL: p.User.ProfilePicture,
		},
		CommentsCount: p.CommentsCount,
		LikesCount:    p.LikesCount,
	}
}
