package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolp(b bool) *bool { return &b }

func TestComment_PermissionFallbackChain(t *testing.T) {
	own := Comment{Author: Author{ID: "u1"}}

	// Server flag wins even when the heuristic disagrees.
	denied := own
	denied.UserCanEdit = boolp(false)
	assert.False(t, denied.CanEdit("u1"))

	granted := Comment{Author: Author{ID: "other"}, UserCanDelete: boolp(true)}
	assert.True(t, granted.CanDelete("u1"))

	// No server flag: fall back to ownership.
	assert.True(t, own.CanEdit("u1"))
	assert.False(t, own.CanEdit("u2"))
	assert.False(t, own.CanEdit(""))
}

func TestComment_CanPinDefaultsToDeny(t *testing.T) {
	c := Comment{Author: Author{ID: "u1"}}
	// Owning the comment is not owning the post; without flags, deny.
	assert.False(t, c.CanPin())

	c.IsPostOwner = boolp(true)
	assert.True(t, c.CanPin())

	c.UserCanPin = boolp(false)
	assert.False(t, c.CanPin())
}

func TestComment_IsLocal(t *testing.T) {
	assert.True(t, Comment{ID: "local-42"}.IsLocal())
	assert.False(t, Comment{ID: "42"}.IsLocal())
	assert.False(t, Comment{ID: ""}.IsLocal())
}

func TestScanMentions(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"no mentions here", nil},
		{"@alice hi", []string{"alice"}},
		{"hi @alice and @bob", []string{"alice", "bob"}},
		{"@alice @alice twice", []string{"alice"}},
		{"line\n@carol start of line", []string{"carol"}},
		{"email test@example.com is not a mention", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScanMentions(tt.text), "text %q", tt.text)
	}
}
