package feed

import (
	"fmt"
	"strings"
	"time"

	"termfeed/tui/common"
)

var sectionNames = []string{"Posts", "Profiles", "Groups"}

// View renders the feed view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("termfeed"))
	b.WriteString("\n")

	tabs := make([]string, len(sectionNames))
	for i, name := range sectionNames {
		if section(i) == m.section {
			tabs[i] = common.ActionActiveStyle.Render(name)
		} else {
			tabs[i] = common.ActionInactiveStyle.Render(name)
		}
	}
	b.WriteString(strings.Join(tabs, ""))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("  %s Loading...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render("  Error: " + m.err.Error()))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderSection())
	}

	b.WriteString(common.StatusBarStyle.Render("enter: open · tab: section · / search · a account · q quit"))
	return b.String()
}

func (m Model) renderSection() string {
	now := time.Now()
	var b strings.Builder

	switch m.section {
	case sectionPosts:
		if len(m.list) == 0 {
			return common.TaglineStyle.Render("  Nothing here yet.") + "\n"
		}
		for i, p := range m.list {
			head := common.AuthorStyle.Render("@"+p.Author.Username) + " " +
				common.TimestampStyle.Render(common.TimeAgo(p.CreatedAt, now))
			meta := common.TimestampStyle.Render(fmt.Sprintf("♥ %d · %s", p.LikesCount, common.Plural(p.CommentsCount, "comment")))
			block := head + "\n" + common.ContentStyle.Render(p.Title) + "\n" + meta
			style := common.UnselectedStyle
			if i == m.cursor {
				style = common.SelectedStyle
			}
			b.WriteString(style.Render(block))
			b.WriteString("\n")
		}
		if m.hasMore {
			b.WriteString(common.TaglineStyle.Render("  m: more posts\n"))
		}

	case sectionProfiles:
		if len(m.members) == 0 {
			return common.TaglineStyle.Render("  No profiles.") + "\n"
		}
		for i, p := range m.members {
			line := fmt.Sprintf("@%s · %s", p.Username, p.FullName)
			if p.Category != "" {
				line += " · " + p.Category
			}
			if i == m.cursor {
				b.WriteString(common.ActionActiveStyle.Render("> " + line))
			} else {
				b.WriteString(common.ActionInactiveStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}

	case sectionGroups:
		if len(m.rooms) == 0 {
			return common.TaglineStyle.Render("  No groups.") + "\n"
		}
		for i, g := range m.rooms {
			line := fmt.Sprintf("%s · %s", g.Name, common.Plural(g.Members, "member"))
			if g.Joined {
				line += " · joined"
			} else {
				line += " · enter to join"
			}
			if i == m.cursor {
				b.WriteString(common.ActionActiveStyle.Render("> " + line))
			} else {
				b.WriteString(common.ActionInactiveStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
