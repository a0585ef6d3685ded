package thread

import (
	"context"
	"time"

	"termfeed/app"
	"termfeed/domain"
)

// stubComments satisfies app.CommentService with canned responses and
// call counters so tests can assert how often the network was hit.
type stubComments struct {
	listCalls    int
	replyCalls   int
	likeCalls    int
	deleteCalls  int
	pinCalls     int
	reportCalls  int
	page         app.CommentPage
	replyPage    app.CommentPage
	likeErr      error
	likeResult   [2]int // liked (0/1), count
	deleteErr    error
	lastReplyArg string
}

func (s *stubComments) ListComments(_ context.Context, _ string, _, _ int, _ string) (app.CommentPage, error) {
	s.listCalls++
	return s.page, nil
}

func (s *stubComments) ListReplies(_ context.Context, commentID string, _ int) (app.CommentPage, error) {
	s.replyCalls++
	s.lastReplyArg = commentID
	return s.replyPage, nil
}

func (s *stubComments) Create(_ context.Context, _ string, nc app.NewComment) (domain.Comment, error) {
	return domain.Comment{ID: "server-1", Content: nc.Content, ParentID: nc.ParentID}, nil
}

func (s *stubComments) Edit(_ context.Context, commentID string, edit app.CommentEdit) (domain.Comment, error) {
	return domain.Comment{ID: commentID, Content: edit.Content}, nil
}

func (s *stubComments) Delete(_ context.Context, _ string) error {
	s.deleteCalls++
	return s.deleteErr
}

func (s *stubComments) Like(_ context.Context, _ string) (bool, int, error) {
	s.likeCalls++
	if s.likeErr != nil {
		return false, 0, s.likeErr
	}
	return s.likeResult[0] == 1, s.likeResult[1], nil
}

func (s *stubComments) Pin(_ context.Context, _ string) (bool, error) {
	s.pinCalls++
	return true, nil
}

func (s *stubComments) Report(_ context.Context, _, _ string) error {
	s.reportCalls++
	return nil
}

func newTestModel(svc app.CommentService) Model {
	return New(svc, domain.Post{ID: "42", Title: "Test post"}, domain.User{ID: "u1", Username: "me"}, true, Options{
		SortMode:          domain.SortNewest,
		ShowPinned:        true,
		TrendingThreshold: 2,
		ReplyReloadDelay:  time.Millisecond,
	})
}

func comment(id string, sec int) domain.Comment {
	return domain.Comment{
		ID:        id,
		Content:   "c" + id,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, sec, 0, time.UTC),
		Author:    domain.Author{ID: "a-" + id, Username: "user" + id},
	}
}
