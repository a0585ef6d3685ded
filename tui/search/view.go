package search

import (
	"fmt"
	"strings"

	"termfeed/app"
	"termfeed/tui/common"
)

// View renders the search overlay.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(common.TaglineStyle.Render("category: " + string(m.Category()) + " (tab to switch)"))
	b.WriteString("\n\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render("  Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(fmt.Sprintf("  %s searching...\n", m.spinner.View()))
	case m.input.Value() == "":
		b.WriteString(m.renderRecent())
	default:
		b.WriteString(m.renderResults())
	}

	b.WriteString(common.StatusBarStyle.Render("enter: open · tab: category · ctrl+l: clear recent · esc: back"))
	return b.String()
}

func (m Model) renderRecent() string {
	if len(m.recent) == 0 {
		return common.TaglineStyle.Render("  No recent searches.") + "\n"
	}
	var b strings.Builder
	b.WriteString(common.TaglineStyle.Render("  Recent:"))
	b.WriteString("\n")
	for i, r := range m.recent {
		line := fmt.Sprintf("%s (%s)", r.Query, r.Category)
		if i == m.cursor {
			b.WriteString(common.ActionActiveStyle.Render("> " + line))
		} else {
			b.WriteString(common.ActionInactiveStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderResults() string {
	filtered := m.Filtered()
	var lines []string
	switch m.Category() {
	case app.SearchPosts:
		for _, p := range filtered.Posts {
			lines = append(lines, fmt.Sprintf("%s · @%s · %s", p.Title, p.Author.Username, common.Plural(p.CommentsCount, "comment")))
		}
	case app.SearchProfiles:
		for _, p := range filtered.Profiles {
			lines = append(lines, fmt.Sprintf("@%s · %s", p.Username, p.FullName))
		}
	case app.SearchGroups:
		for _, g := range filtered.Groups {
			lines = append(lines, fmt.Sprintf("%s · %s", g.Name, common.Plural(g.Members, "member")))
		}
	}

	if len(lines) == 0 {
		if m.loaded {
			return common.TaglineStyle.Render("  No matches.") + "\n"
		}
		return ""
	}

	var b strings.Builder
	for i, line := range lines {
		if i == m.cursor {
			b.WriteString(common.ActionActiveStyle.Render("> " + line))
		} else {
			b.WriteString(common.ActionInactiveStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
