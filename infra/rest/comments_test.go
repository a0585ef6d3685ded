package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfeed/app"
)

func TestListComments_BareArrayResponse(t *testing.T) {
	body := `[
		{"id": 1, "content": "first", "created_at": "2025-06-01T10:00:00Z",
		 "likes_count": 2, "has_liked": true, "reply_count": 3,
		 "user": {"id": 9, "username": "alice"}, "is_owner": false},
		{"id": 2, "content": "", "image": "/media/a.png",
		 "created_at": "2025-06-01T11:00:00Z", "user": {"id": 10, "username": "bob"}}
	]`
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comment/posts/7/comments/", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "-created_at", r.URL.Query().Get("order"))
		_, _ = w.Write([]byte(body))
	}))
	svc := NewCommentService(c)

	page, err := svc.ListComments(context.Background(), "7", 1, 20, "")
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)
	assert.Nil(t, page.HasNext, "bare arrays carry no has_next hint")

	first := page.Comments[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, 3, first.ReplyCount)
	assert.True(t, first.HasLiked)
	assert.Equal(t, "alice", first.Author.Username)
	require.NotNil(t, first.IsOwner)
	assert.False(t, *first.IsOwner)
	assert.Nil(t, first.Replies, "absent replies stay nil; ReplyCount is the truth")

	media := page.Comments[1].Media
	require.Len(t, media, 1)
	assert.Equal(t, "/media/a.png", media[0].URL)
}

func TestListReplies_WrappedResponseWithHasNext(t *testing.T) {
	body := `{"replies": [{"id": 10, "content": "r", "parent_comment": 5,
		"user": {"id": 1, "username": "a"}}], "has_next": true}`
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comment/comments/5/replies/", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "created_at", r.URL.Query().Get("order"))
		_, _ = w.Write([]byte(body))
	}))
	svc := NewCommentService(c)

	page, err := svc.ListReplies(context.Background(), "5", 1)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	require.NotNil(t, page.HasNext)
	assert.True(t, *page.HasNext)
	assert.Equal(t, "5", page.Comments[0].ParentID)
}

func TestParentID_AcceptsBothEncodings(t *testing.T) {
	assert.Equal(t, "", parentID(nil))
	assert.Equal(t, "", parentID([]byte("null")))
	assert.Equal(t, "5", parentID([]byte("5")))
	assert.Equal(t, "8", parentID([]byte(`{"id": 8, "content": "parent"}`)))
	assert.Equal(t, "", parentID([]byte(`"garbage"`)))
}

func TestCreate_JSONWithoutMedia(t *testing.T) {
	var gotContentType, gotBody string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		_, _ = w.Write([]byte(`{"id": 12, "content": "hi", "parent_comment": 5,
			"user": {"id": 1, "username": "me"}}`))
	}))
	svc := NewCommentService(c)

	created, err := svc.Create(context.Background(), "7", app.NewComment{Content: "hi", ParentID: "5"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Contains(t, gotBody, `"parent_comment":"5"`)
	assert.Equal(t, "12", created.ID)
	assert.Equal(t, "5", created.ParentID)
}
