package rest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfeed/domain"
)

type countingProfiles struct {
	mu      sync.Mutex
	lookups int
}

func (c *countingProfiles) ProfilesByCategory(context.Context, string) ([]domain.Profile, error) {
	return nil, nil
}

func (c *countingProfiles) ProfileByUsername(_ context.Context, username string) (domain.Profile, error) {
	c.mu.Lock()
	c.lookups++
	c.mu.Unlock()
	if username == "ghost" {
		return domain.Profile{}, fmt.Errorf("no such profile")
	}
	return domain.Profile{ID: "id-" + username, Username: username}, nil
}

func TestMentionResolver_CachesPerUsername(t *testing.T) {
	profiles := &countingProfiles{}
	r := NewMentionResolver(profiles)
	ctx := context.Background()

	id, err := r.ResolveMention(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "id-alice", id)

	// Same username, different case: served from cache.
	id, err = r.ResolveMention(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "id-alice", id)
	assert.Equal(t, 1, profiles.lookups)

	_, err = r.ResolveMention(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, profiles.lookups)
}

func TestMentionResolver_ConcurrentResolves(t *testing.T) {
	profiles := &countingProfiles{}
	r := NewMentionResolver(profiles)
	ctx := context.Background()
	usernames := []string{"alice", "bob", "carol", "alice", "bob", "carol"}

	// Overlapping comment submissions resolve mentions from separate
	// goroutines; the cache must tolerate that.
	var wg sync.WaitGroup
	for _, u := range usernames {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			id, err := r.ResolveMention(ctx, u)
			assert.NoError(t, err)
			assert.Equal(t, "id-"+u, id)
		}(u)
	}
	wg.Wait()

	id, err := r.ResolveMention(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "id-alice", id)
}

func TestMentionResolver_FailuresAreNotCached(t *testing.T) {
	profiles := &countingProfiles{}
	r := NewMentionResolver(profiles)
	ctx := context.Background()

	_, err := r.ResolveMention(ctx, "ghost")
	require.Error(t, err)
	_, err = r.ResolveMention(ctx, "ghost")
	require.Error(t, err)
	assert.Equal(t, 2, profiles.lookups, "failed lookups may be retried")

	_, err = r.ResolveMention(ctx, "  ")
	require.Error(t, err)
}
