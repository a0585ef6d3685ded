package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"termfeed/app"
	"termfeed/domain"
)

// commentService implements app.CommentService.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the REST API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

// userPayload is the embedded author summary on the wire.
type userPayload struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// commentPayload is the wire shape of a comment. Permission flags are
// pointers: the serializer may omit them and the client falls back to its
// local heuristic.
type commentPayload struct {
	ID            int64            `json:"id"`
	Content       string           `json:"content"`
	CreatedAt     string           `json:"created_at"`
	IsPinned      bool             `json:"is_pinned"`
	LikesCount    int              `json:"likes_count"`
	HasLiked      bool             `json:"has_liked"`
	ReplyCount    int              `json:"reply_count"`
	Replies       []commentPayload `json:"replies"`
	ParentComment json.RawMessage  `json:"parent_comment"` // id or embedded object
	User          userPayload      `json:"user"`
	Image         string           `json:"image"`
	Video         string           `json:"video"`
	File          string           `json:"file"`
	IsOwner       *bool            `json:"is_owner"`
	IsPostOwner   *bool            `json:"is_post_owner"`
	UserCanPin    *bool            `json:"user_can_pin"`
	UserCanEdit   *bool            `json:"user_can_edit"`
	UserCanDelete *bool            `json:"user_can_delete"`
}

// commentPage is the paginated wrapper some endpoints use; others return a
// bare array.
type commentPage struct {
	Comments []commentPayload `json:"comments"`
	Replies  []commentPayload `json:"replies"`
	HasNext  *bool            `json:"has_next"`
}

func (s *commentService) ListComments(_ context.Context, postID string, page, perPage int, order string) (app.CommentPage, error) {
	if order == "" {
		order = "-created_at"
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("order", order)

	data, err := s.client.Get(fmt.Sprintf("/comment/posts/%s/comments/?%s", url.PathEscape(postID), q.Encode()))
	if err != nil {
		return app.CommentPage{}, fmt.Errorf("fetching comments: %w", err)
	}
	return decodeCommentPage(data)
}

func (s *commentService) ListReplies(_ context.Context, commentID string, page int) (app.CommentPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(app.ReplyPageSize))
	q.Set("order", "created_at")

	data, err := s.client.Get(fmt.Sprintf("/comment/comments/%s/replies/?%s", url.PathEscape(commentID), q.Encode()))
	if err != nil {
		return app.CommentPage{}, fmt.Errorf("fetching replies: %w", err)
	}
	return decodeCommentPage(data)
}

func (s *commentService) Create(_ context.Context, postID string, nc app.NewComment) (domain.Comment, error) {
	path := fmt.Sprintf("/comment/posts/%s/comments/", url.PathEscape(postID))

	var (
		data []byte
		err  error
	)
	if nc.MediaPath != "" {
		fields := map[string]string{"content": nc.Content}
		if nc.ParentID != "" {
			fields["parent_comment"] = nc.ParentID
		}
		data, err = s.client.PostMultipart(path, fields, string(nc.MediaKind), nc.MediaPath)
	} else {
		body := map[string]any{"content": nc.Content}
		if nc.ParentID != "" {
			body["parent_comment"] = nc.ParentID
		}
		data, err = s.client.PostJSON(path, body)
	}
	if err != nil {
		return domain.Comment{}, fmt.Errorf("creating comment: %w", err)
	}
	return parseComment(data)
}

func (s *commentService) Edit(_ context.Context, commentID string, edit app.CommentEdit) (domain.Comment, error) {
	path := fmt.Sprintf("/comment/comments/%s/", url.PathEscape(commentID))

	var (
		data []byte
		err  error
	)
	if edit.MediaPath != "" || len(edit.DeleteMedia) > 0 {
		fields := map[string]string{"content": edit.Content}
		for _, kind := range edit.DeleteMedia {
			fields["delete_"+string(kind)] = "true"
		}
		data, err = s.client.PutMultipart(path, fields, string(edit.MediaKind), edit.MediaPath)
	} else {
		data, err = s.client.PutJSON(path, map[string]any{"content": edit.Content})
	}
	if err != nil {
		return domain.Comment{}, fmt.Errorf("editing comment: %w", err)
	}
	return parseComment(data)
}

func (s *commentService) Delete(_ context.Context, commentID string) error {
	if _, err := s.client.Delete(fmt.Sprintf("/comment/comments/%s/", url.PathEscape(commentID))); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

func (s *commentService) Like(_ context.Context, commentID string) (bool, int, error) {
	data, err := s.client.PostJSON(fmt.Sprintf("/comment/comments/%s/like/", url.PathEscape(commentID)), nil)
	if err != nil {
		return false, 0, fmt.Errorf("liking comment: %w", err)
	}
	var resp struct {
		HasLiked   bool `json:"has_liked"`
		LikesCount int  `json:"likes_count"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, 0, fmt.Errorf("parsing like response: %w", err)
	}
	return resp.HasLiked, resp.LikesCount, nil
}

func (s *commentService) Pin(_ context.Context, commentID string) (bool, error) {
	data, err := s.client.PostJSON(fmt.Sprintf("/comment/comments/%s/pin/", url.PathEscape(commentID)), nil)
	if err != nil {
		return false, fmt.Errorf("pinning comment: %w", err)
	}
	var resp struct {
		IsPinned bool `json:"is_pinned"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("parsing pin response: %w", err)
	}
	return resp.IsPinned, nil
}

func (s *commentService) Report(_ context.Context, commentID, reason string) error {
	body := map[string]any{"reason": reason}
	if _, err := s.client.PostJSON(fmt.Sprintf("/comment/comments/%s/report/", url.PathEscape(commentID)), body); err != nil {
		return fmt.Errorf("reporting comment: %w", err)
	}
	return nil
}

// decodeCommentPage accepts both response shapes: a bare array, or an
// object wrapping the array with a has_next flag.
func decodeCommentPage(data []byte) (app.CommentPage, error) {
	var bare []commentPayload
	if err := json.Unmarshal(data, &bare); err == nil {
		return app.CommentPage{Comments: mapComments(bare)}, nil
	}

	var wrapped commentPage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return app.CommentPage{}, fmt.Errorf("parsing comment page: %w", err)
	}
	payloads := wrapped.Comments
	if payloads == nil {
		payloads = wrapped.Replies
	}
	return app.CommentPage{Comments: mapComments(payloads), HasNext: wrapped.HasNext}, nil
}

func parseComment(data []byte) (domain.Comment, error) {
	var p commentPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment response: %w", err)
	}
	return mapComment(p), nil
}

func mapComments(payloads []commentPayload) []domain.Comment {
	out := make([]domain.Comment, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, mapComment(p))
	}
	return out
}

func mapComment(p commentPayload) domain.Comment {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)

	c := domain.Comment{
		ID:         strconv.FormatInt(p.ID, 10),
		Content:    p.Content,
		CreatedAt:  createdAt,
		IsPinned:   p.IsPinned,
		LikesCount: p.LikesCount,
		HasLiked:   p.HasLiked,
		ReplyCount: p.ReplyCount,
		Replies:    mapCommentsOrNil(p.Replies),
		ParentID:   parentID(p.ParentComment),
		Author: domain.Author{
			ID:        strconv.FormatInt(p.User.ID, 10),
			Username:  p.User.Username,
			AvatarURL: p.User.ProfilePicture,
		},
		Media:         mapMedia(p),
		IsOwner:       p.IsOwner,
		IsPostOwner:   p.IsPostOwner,
		UserCanPin:    p.UserCanPin,
		UserCanEdit:   p.UserCanEdit,
		UserCanDelete: p.UserCanDelete,
	}
	return c
}

// mapCommentsOrNil preserves the absent/empty distinction: a missing
// replies field stays nil so ReplyCount remains the only truth.
func mapCommentsOrNil(payloads []commentPayload) []domain.Comment {
	if payloads == nil {
		return nil
	}
	return mapComments(payloads)
}

func mapMedia(p commentPayload) []domain.Media {
	switch {
	case p.Image != "":
		return []domain.Media{{Kind: domain.MediaImage, URL: p.Image}}
	case p.Video != "":
		return []domain.Media{{Kind: domain.MediaVideo, URL: p.Video}}
	case p.File != "":
		return []domain.Media{{Kind: domain.MediaFile, URL: p.File}}
	}
	return nil
}

// parentID accepts the two parent_comment encodings the serializer emits:
// a bare numeric id, or an embedded object carrying one.
func parentID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return strconv.FormatInt(id, 10)
	}
	var obj struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ID != 0 {
		return strconv.FormatInt(obj.ID, 10)
	}
	return ""
}
