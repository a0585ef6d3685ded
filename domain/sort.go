package domain

import "sort"

// SortMode selects the ordering of the unpinned partition of a thread.
type SortMode string

const (
	SortNewest      SortMode = "newest"
	SortOldest      SortMode = "oldest"
	SortMostLiked   SortMode = "most_liked"
	SortMostReplied SortMode = "most_replied"
)

// SortModes lists the selectable modes in menu order.
var SortModes = []SortMode{SortNewest, SortOldest, SortMostLiked, SortMostReplied}

// Label returns the user-facing name of the mode.
func (m SortMode) Label() string {
	switch m {
	case SortOldest:
		return "Oldest"
	case SortMostLiked:
		return "Most liked"
	case SortMostReplied:
		return "Most replied"
	default:
		return "Newest"
	}
}

// SortComments returns a fresh ordering of comments: pinned comments first,
// newest-first regardless of mode, then the rest ordered per mode. Unknown
// modes fall back to newest. The input slice is never mutated; callers rely
// on that for memoization.
func SortComments(comments []Comment, mode SortMode) []Comment {
	if len(comments) == 0 {
		return []Comment{}
	}

	pinned := make([]Comment, 0, len(comments))
	regular := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.IsPinned {
			pinned = append(pinned, c)
		} else {
			regular = append(regular, c)
		}
	}

	sort.SliceStable(pinned, func(i, j int) bool {
		return pinned[i].CreatedAt.After(pinned[j].CreatedAt)
	})

	less := regularLess(mode)
	sort.SliceStable(regular, less(regular))

	return append(pinned, regular...)
}

func regularLess(mode SortMode) func([]Comment) func(i, j int) bool {
	switch mode {
	case SortOldest:
		return func(cs []Comment) func(i, j int) bool {
			return func(i, j int) bool { return cs[i].CreatedAt.Before(cs[j].CreatedAt) }
		}
	case SortMostLiked:
		return func(cs []Comment) func(i, j int) bool {
			return func(i, j int) bool {
				if cs[i].LikesCount != cs[j].LikesCount {
					return cs[i].LikesCount > cs[j].LikesCount
				}
				return cs[i].CreatedAt.After(cs[j].CreatedAt)
			}
		}
	case SortMostReplied:
		return func(cs []Comment) func(i, j int) bool {
			return func(i, j int) bool {
				if cs[i].ReplyCount != cs[j].ReplyCount {
					return cs[i].ReplyCount > cs[j].ReplyCount
				}
				return cs[i].CreatedAt.After(cs[j].CreatedAt)
			}
		}
	default: // SortNewest and anything unrecognized.
		return func(cs []Comment) func(i, j int) bool {
			return func(i, j int) bool { return cs[i].CreatedAt.After(cs[j].CreatedAt) }
		}
	}
}
