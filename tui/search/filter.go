package search

import (
	"strings"

	"termfeed/app"
)

// Filter narrows a loaded result set by case-insensitive substring. Posts
// match on title and body, profiles on username and full name, groups on
// name and description. A blank query passes everything through.
func Filter(results app.SearchResults, query string) app.SearchResults {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}

	var out app.SearchResults
	for _, p := range results.Posts {
		if containsFold(p.Title, q) || containsFold(p.Content, q) {
			out.Posts = append(out.Posts, p)
		}
	}
	for _, p := range results.Profiles {
		if containsFold(p.Username, q) || containsFold(p.FullName, q) {
			out.Profiles = append(out.Profiles, p)
		}
	}
	for _, g := range results.Groups {
		if containsFold(g.Name, q) || containsFold(g.Description, q) {
			out.Groups = append(out.Groups, g)
		}
	}
	return out
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
