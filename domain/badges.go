package domain

// DefaultTrendingThreshold is the minimum likes a comment needs before it
// can carry the trending badge.
const DefaultTrendingThreshold = 2

// Badges identifies the two highlighted comments of a post. Empty IDs mean
// no comment qualifies.
type Badges struct {
	FirstID    string
	TrendingID string
}

// CalculateBadges computes the first (oldest) and trending (most liked)
// comment of a snapshot. Ties on likes go to the more recent comment; ties
// on identical timestamps keep the first-encountered comment. The trending
// badge requires at least threshold likes; threshold <= 0 falls back to
// DefaultTrendingThreshold.
func CalculateBadges(comments []Comment, threshold int) Badges {
	if threshold <= 0 {
		threshold = DefaultTrendingThreshold
	}
	if len(comments) == 0 {
		return Badges{}
	}

	first := comments[0]
	trending := comments[0]
	for _, c := range comments[1:] {
		if c.CreatedAt.Before(first.CreatedAt) {
			first = c
		}
		if c.LikesCount > trending.LikesCount ||
			(c.LikesCount == trending.LikesCount && c.CreatedAt.After(trending.CreatedAt)) {
			trending = c
		}
	}

	b := Badges{FirstID: first.ID}
	if trending.LikesCount >= threshold {
		b.TrendingID = trending.ID
	}
	return b
}
