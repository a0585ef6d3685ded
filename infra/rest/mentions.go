package rest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"termfeed/app"
)

// mentionResolver resolves @usernames to profile IDs through the profile
// lookup endpoint, caching results per username for the session so a
// mention repeated across comments costs exactly one request. Commands run
// in their own goroutines, so the cache is mutex-guarded.
type mentionResolver struct {
	profiles app.ProfileService

	mu    sync.Mutex
	cache map[string]string
}

// NewMentionResolver creates a caching MentionResolver.
func NewMentionResolver(profiles app.ProfileService) *mentionResolver {
	return &mentionResolver{
		profiles: profiles,
		cache:    make(map[string]string),
	}
}

func (r *mentionResolver) ResolveMention(ctx context.Context, username string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(username))
	if key == "" {
		return "", fmt.Errorf("empty mention")
	}
	r.mu.Lock()
	id, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return id, nil
	}

	profile, err := r.profiles.ProfileByUsername(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolving mention @%s: %w", username, err)
	}
	r.mu.Lock()
	r.cache[key] = profile.ID
	r.mu.Unlock()
	return profile.ID, nil
}
