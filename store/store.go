// Package store keeps the in-memory comment state of one post.
//
// The web client this replaces kept two copies of the same subtree (the
// page-level comment forest and each reply loader's local list) and patched
// them independently. Here every comment lives exactly once in a normalized
// entity map; the top-level order and per-parent reply orders are views
// derived from it, so any mutation is visible to every UI surface.
package store

import "termfeed/domain"

// Store is the single source of truth for one post's comment thread.
// It is not safe for concurrent use; the TUI event loop owns it.
type Store struct {
	byID     map[string]domain.Comment
	topLevel []string
	replies  map[string][]string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		byID:    make(map[string]domain.Comment),
		replies: make(map[string][]string),
	}
}

// Len returns the number of comments held, at all depths.
func (s *Store) Len() int { return len(s.byID) }

// Get returns the comment with the given id.
func (s *Store) Get(id string) (domain.Comment, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// AddTopLevel prepends a new top-level comment. Comments without an ID are
// rejected silently; the caller is responsible for not double-submitting.
func (s *Store) AddTopLevel(c domain.Comment) {
	if c.ID == "" {
		return
	}
	if _, exists := s.byID[c.ID]; exists {
		s.byID[c.ID] = c
		return
	}
	s.insert(c)
	s.topLevel = append([]string{c.ID}, s.topLevel...)
}

// AddReply appends a reply under parentID and increments the parent's
// ReplyCount by one. When the parent is not materialized in the store the
// call is a no-op: no crash, no orphan insertion.
func (s *Store) AddReply(parentID string, r domain.Comment) {
	parent, ok := s.byID[parentID]
	if !ok || r.ID == "" {
		return
	}
	if _, exists := s.byID[r.ID]; exists {
		s.byID[r.ID] = r
		return
	}
	r.ParentID = parentID
	s.insert(r)
	s.replies[parentID] = append(s.replies[parentID], r.ID)
	parent.ReplyCount++
	s.byID[parentID] = parent
}

// PrependReply is AddReply with front insertion, used for the optimistic
// echo of a just-submitted reply before the reconciling reload.
func (s *Store) PrependReply(parentID string, r domain.Comment) {
	parent, ok := s.byID[parentID]
	if !ok || r.ID == "" {
		return
	}
	if _, exists := s.byID[r.ID]; exists {
		s.byID[r.ID] = r
		return
	}
	r.ParentID = parentID
	s.insert(r)
	s.replies[parentID] = append([]string{r.ID}, s.replies[parentID]...)
	parent.ReplyCount++
	s.byID[parentID] = parent
}

// Update replaces the stored comment with the same ID, at whatever depth it
// occurs. Unknown IDs are ignored. The stored position and parent are kept.
func (s *Store) Update(c domain.Comment) {
	prev, ok := s.byID[c.ID]
	if !ok {
		return
	}
	c.ParentID = prev.ParentID
	s.byID[c.ID] = c
}

// Delete removes the comment and its cached reply subtree. Deleting an
// absent ID is a no-op. The parent's ReplyCount is decremented when the
// deleted node was a materialized reply.
func (s *Store) Delete(id string) {
	c, ok := s.byID[id]
	if !ok {
		return
	}

	for _, childID := range s.replies[id] {
		s.deleteSubtree(childID)
	}
	delete(s.replies, id)
	delete(s.byID, id)

	if c.ParentID == "" {
		s.topLevel = removeID(s.topLevel, id)
		return
	}
	s.replies[c.ParentID] = removeID(s.replies[c.ParentID], id)
	if parent, ok := s.byID[c.ParentID]; ok && parent.ReplyCount > 0 {
		parent.ReplyCount--
		s.byID[c.ParentID] = parent
	}
}

func (s *Store) deleteSubtree(id string) {
	for _, childID := range s.replies[id] {
		s.deleteSubtree(childID)
	}
	delete(s.replies, id)
	delete(s.byID, id)
}

// MergeTopLevel merges a fetched page into the top-level view. reset
// replaces the whole view; otherwise the page is appended. Comments already
// present are refreshed in place rather than duplicated. Embedded Replies
// caches are materialized into the reply views.
func (s *Store) MergeTopLevel(page []domain.Comment, reset bool) {
	if reset {
		s.byID = make(map[string]domain.Comment, len(page))
		s.replies = make(map[string][]string)
		s.topLevel = s.topLevel[:0]
	}
	for _, c := range page {
		if c.ID == "" {
			continue
		}
		if _, exists := s.byID[c.ID]; exists {
			s.Update(c)
			continue
		}
		c.ParentID = ""
		s.insert(c)
		s.topLevel = append(s.topLevel, c.ID)
	}
}

// MergeReplies merges a fetched reply page under parentID. reset replaces
// the parent's reply view. The parent's ReplyCount is left alone: the
// server count stays authoritative during pagination.
func (s *Store) MergeReplies(parentID string, page []domain.Comment, reset bool) {
	if _, ok := s.byID[parentID]; !ok {
		return
	}
	if reset {
		for _, id := range s.replies[parentID] {
			s.deleteSubtree(id)
		}
		s.replies[parentID] = nil
	}
	for _, r := range page {
		if r.ID == "" {
			continue
		}
		if _, exists := s.byID[r.ID]; exists {
			s.Update(r)
			continue
		}
		r.ParentID = parentID
		s.insert(r)
		s.replies[parentID] = append(s.replies[parentID], r.ID)
	}
}

// SetLike sets the like state and count. The caller decides whether the
// values are the optimistic guess or the server's answer; the transient
// button animation lives in the TUI layer, not here.
func (s *Store) SetLike(id string, liked bool, count int) {
	c, ok := s.byID[id]
	if !ok {
		return
	}
	c.HasLiked = liked
	c.LikesCount = count
	s.byID[id] = c
}

// SetPinned applies the server-confirmed pin state.
func (s *Store) SetPinned(id string, pinned bool) {
	c, ok := s.byID[id]
	if !ok {
		return
	}
	c.IsPinned = pinned
	s.byID[id] = c
}

// TopLevel returns the top-level comments in insertion order. The slice is
// fresh on every call; mutating it does not touch the store.
func (s *Store) TopLevel() []domain.Comment {
	out := make([]domain.Comment, 0, len(s.topLevel))
	for _, id := range s.topLevel {
		out = append(out, s.byID[id])
	}
	return out
}

// Replies returns the materialized replies under parentID, oldest first.
// The result being empty says nothing about the parent's ReplyCount.
func (s *Store) Replies(parentID string) []domain.Comment {
	ids := s.replies[parentID]
	out := make([]domain.Comment, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out
}

// insert registers a comment and materializes any embedded reply cache.
func (s *Store) insert(c domain.Comment) {
	embedded := c.Replies
	c.Replies = nil
	s.byID[c.ID] = c
	for _, r := range embedded {
		if r.ID == "" {
			continue
		}
		if _, exists := s.byID[r.ID]; exists {
			continue
		}
		r.ParentID = c.ID
		s.insert(r)
		s.replies[c.ID] = append(s.replies[c.ID], r.ID)
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
