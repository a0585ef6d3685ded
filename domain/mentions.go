package domain

import "regexp"

// mentionRe matches @username tokens that start at the beginning of the
// text or after whitespace, mirroring how the composer highlights them.
var mentionRe = regexp.MustCompile(`(?:^|[\s\n])@(\w+)`)

// ScanMentions extracts the unique @mention usernames from comment text,
// in first-occurrence order and without the leading '@'.
func ScanMentions(text string) []string {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
