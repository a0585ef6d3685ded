package domain

import "time"

// Post is a feed entry. The comment thread lives under it.
type Post struct {
	ID            string
	Title         string
	Content       string
	CreatedAt     time.Time
	Author        Author
	CommentsCount int
	LikesCount    int
}

// Profile is a platform member as shown in search and category listings.
type Profile struct {
	ID        string
	Username  string
	FullName  string
	Bio       string
	AvatarURL string
	Category  string
	Followers int
	Following int
}

// Group is a community a user can join.
type Group struct {
	ID          string
	Name        string
	Description string
	Members     int
	Joined      bool
}

// User is the authenticated account summary, cached between sessions the
// way the web client cached it.
type User struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
}
