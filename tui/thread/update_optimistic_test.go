package thread

import (
	"errors"
	"testing"

	"termfeed/app"
	"termfeed/domain"
)

func TestToggleLike_OptimisticThenReconciled(t *testing.T) {
	svc := &stubComments{likeResult: [2]int{1, 5}}
	m := newTestModel(svc)
	c := comment("1", 1)
	c.LikesCount = 4
	m, _ = m.Update(CommentsLoadedMsg{Reset: true, Result: app.CommentPage{Comments: []domain.Comment{c}}})

	m, cmd := m.Update(keyMsg("l"))
	got, _ := m.store.Get("1")
	if !got.HasLiked || got.LikesCount != 5 {
		t.Fatalf("expected optimistic like to apply, got liked=%v count=%d", got.HasLiked, got.LikesCount)
	}
	if !m.likePulse["1"] {
		t.Fatalf("expected like pulse flag")
	}
	if cmd == nil {
		t.Fatalf("expected like command")
	}

	m, _ = m.Update(LikeResultMsg{ID: "1", Liked: true, Count: 5})
	got, _ = m.store.Get("1")
	if !got.HasLiked || got.LikesCount != 5 {
		t.Fatalf("server result should stick, got liked=%v count=%d", got.HasLiked, got.LikesCount)
	}
}

func TestToggleLike_RollsBackOnError(t *testing.T) {
	m := newTestModel(&stubComments{})
	c := comment("1", 1)
	c.HasLiked = true
	c.LikesCount = 3
	m, _ = m.Update(CommentsLoadedMsg{Reset: true, Result: app.CommentPage{Comments: []domain.Comment{c}}})

	m, _ = m.Update(keyMsg("l"))
	got, _ := m.store.Get("1")
	if got.HasLiked || got.LikesCount != 2 {
		t.Fatalf("unlike should apply optimistically")
	}

	m, _ = m.Update(LikeResultMsg{ID: "1", Err: errors.New("network down")})
	got, _ = m.store.Get("1")
	if !got.HasLiked || got.LikesCount != 3 {
		t.Fatalf("failed like should roll back, got liked=%v count=%d", got.HasLiked, got.LikesCount)
	}
	if m.likePulse["1"] {
		t.Fatalf("pulse should clear on failure")
	}
}

func TestToggleLike_SecondPressWhileInFlightIgnored(t *testing.T) {
	svc := &stubComments{}
	m := newTestModel(svc)
	m, _ = m.Update(CommentsLoadedMsg{Reset: true, Result: app.CommentPage{Comments: []domain.Comment{comment("1", 1)}}})

	m, _ = m.Update(keyMsg("l"))
	m, cmd := m.Update(keyMsg("l"))
	if cmd != nil {
		t.Fatalf("second like while pending should be a no-op")
	}
	got, _ := m.store.Get("1")
	if got.LikesCount != 1 {
		t.Fatalf("count should only move once, got %d", got.LikesCount)
	}
}

func TestAddOptimistic_TopLevelAndRollback(t *testing.T) {
	m := newTestModel(&stubComments{})

	m, _ = m.Update(AddOptimisticMsg{LocalID: "local-x", Content: "hello"})
	if m.store.Len() != 1 {
		t.Fatalf("optimistic comment should land in store")
	}
	if got, _ := m.store.Get("local-x"); !got.IsLocal() {
		t.Fatalf("optimistic comment should be local")
	}

	m, _ = m.Update(CreateResultMsg{LocalID: "local-x", Err: errors.New("rejected")})
	if m.store.Len() != 0 {
		t.Fatalf("failed create should remove the optimistic comment")
	}
}

func TestCreateResult_ReplacesLocalWithServerVersion(t *testing.T) {
	m := newTestModel(&stubComments{})
	m, _ = m.Update(AddOptimisticMsg{LocalID: "local-x", Content: "hello"})

	server := comment("100", 50)
	m, cmd := m.Update(CreateResultMsg{LocalID: "local-x", Comment: server})
	if _, ok := m.store.Get("local-x"); ok {
		t.Fatalf("local comment should be replaced")
	}
	if got, ok := m.store.Get("100"); !ok || got.Content != "c100" {
		t.Fatalf("server comment should be in store, got %#v", got)
	}
	if cmd != nil {
		t.Fatalf("top-level create should not schedule a reply reload")
	}
}

func TestCreateResult_ReplySchedulesSettleReload(t *testing.T) {
	m := newTestModel(&stubComments{})
	parent := comment("5", 1)
	parent.ReplyCount = 2
	m, _ = m.Update(CommentsLoadedMsg{Reset: true, Result: app.CommentPage{Comments: []domain.Comment{parent}}})

	m, _ = m.Update(AddOptimisticMsg{LocalID: "local-r", ParentID: "5", Content: "a reply"})
	replies := m.store.Replies("5")
	if len(replies) != 1 || replies[0].ID != "local-r" {
		t.Fatalf("optimistic reply should prepend, got %#v", replies)
	}

	server := comment("200", 60)
	server.ParentID = "5"
	m, cmd := m.Update(CreateResultMsg{LocalID: "local-r", ParentID: "5", Comment: server})
	if cmd == nil {
		t.Fatalf("reply create should schedule the settle reload")
	}
	replies = m.store.Replies("5")
	if len(replies) != 1 || replies[0].ID != "200" {
		t.Fatalf("server reply should replace the local one, got %#v", replies)
	}
}

func TestDeleteFlow_ConfirmsBeforeCalling(t *testing.T) {
	svc := &stubComments{}
	m := newTestModel(svc)
	own := comment("1", 1)
	own.Author.ID = "u1"
	m, _ = m.Update(CommentsLoadedMsg{Reset: true, Result: app.CommentPage{Comments: []domain.Comment{own}}})

	m, _ = m.Update(keyMsg("d"))
	if m.confirmDelete != "1" {
		t.Fatalf("delete should ask for confirmation first")
	}
	if svc.deleteCalls != 0 {
		t.Fatalf("no call before confirmation")
	}

	m, cmd := m.Update(keyMsg("n"))
	if m.confirmDelete != "" || cmd != nil {
		t.Fatalf("n should cancel")
	}

	m, _ = m.Update(keyMsg("d"))
	_, cmd = m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatalf("y should issue the delete command")
	}
}

func TestDeleteResult_RemovesOnSuccessOnly(t *testing.T) {
	m := newTestModel(&stubComments{})
	m, _ = m.Update(CommentsLoadedMsg{Reset: true, Result: app.CommentPage{
		Comments: []domain.Comment{comment("1", 1), comment("2", 2)},
	}})

	m, _ = m.Update(DeleteResultMsg{ID: "1", Err: errors.New("forbidden")})
	if m.store.Len() != 2 {
		t.Fatalf("failed delete should leave the store unchanged")
	}

	m, _ = m.Update(DeleteResultMsg{ID: "1"})
	if m.store.Len() != 1 {
		t.Fatalf("successful delete should remove the comment")
	}
}
