package thread

import (
	"fmt"
	"strings"
	"time"

	"termfeed/domain"
	"termfeed/tui/common"
)

// View renders the thread view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render(m.post.Title))
	b.WriteString("\n")
	b.WriteString(common.TaglineStyle.Render(fmt.Sprintf(
		"%s · sort: %s · pinned: %s",
		common.Plural(m.store.Len(), "comment"),
		m.sortMode.Label(),
		onOff(m.showPinned),
	)))
	b.WriteString("\n\n")

	if m.loading && m.store.Len() == 0 {
		b.WriteString(fmt.Sprintf("  %s Loading comments...\n", m.spinner.View()))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("  Error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(common.TaglineStyle.Render("  No comments yet. Be the first."))
		b.WriteString("\n")
	}

	badges := domain.CalculateBadges(m.store.TopLevel(), m.trendingThreshold)
	now := time.Now()

	idx := 0
	for _, c := range visible {
		b.WriteString(m.renderComment(c, badges, idx == m.cursor, 0, now))
		b.WriteString("\n")
		idx++
		if !m.expanded[c.ID] {
			continue
		}
		for _, r := range m.store.Replies(c.ID) {
			b.WriteString(m.renderComment(r, domain.Badges{}, idx == m.cursor, 1, now))
			b.WriteString("\n")
			idx++
		}
		if m.loadingReplies[c.ID] {
			b.WriteString(fmt.Sprintf("    %s loading replies...\n", m.spinner.View()))
		} else if m.replyHasMore[c.ID] {
			b.WriteString(common.TaglineStyle.Render("    m: more replies"))
			b.WriteString("\n")
		}
	}

	if m.hasMore {
		b.WriteString(common.TaglineStyle.Render("  m: more comments"))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderComment(c domain.Comment, badges domain.Badges, selected bool, depth int, now time.Time) string {
	var head strings.Builder

	head.WriteString(common.AuthorStyle.Render("@" + c.Author.Username))
	if c.Owned(m.user.ID) {
		head.WriteString(common.OwnBadgeStyle.Render("you"))
	}
	head.WriteString(" ")
	head.WriteString(common.TimestampStyle.Render(common.TimeAgo(c.CreatedAt, now)))

	if depth == 0 {
		if c.IsPinned {
			head.WriteString(common.PinnedBadgeStyle.Render("PINNED"))
		}
		if c.ID == badges.FirstID {
			head.WriteString(common.FirstBadgeStyle.Render("FIRST"))
		}
		if c.ID == badges.TrendingID {
			head.WriteString(common.TrendingBadgeStyle.Render("TRENDING"))
		}
	}
	if c.IsLocal() {
		head.WriteString(common.TaglineStyle.Render(" sending..."))
	}

	body := common.ContentStyle.Render(c.Content)
	meta := m.renderMeta(c, depth)

	block := head.String() + "\n" + body
	if len(c.Media) > 0 {
		block += "\n" + renderMedia(c.Media)
	}
	if meta != "" {
		block += "\n" + meta
	}

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	rendered := style.Render(block)
	if depth > 0 {
		rendered = indentBlock(rendered, 4)
	}
	return rendered
}

func (m Model) renderMeta(c domain.Comment, depth int) string {
	likes := fmt.Sprintf("♥ %d", c.LikesCount)
	switch {
	case m.likePulse[c.ID]:
		likes = common.LikedStyle.Render("♥+ " + fmt.Sprint(c.LikesCount))
	case c.HasLiked:
		likes = common.LikedStyle.Render(likes)
	default:
		likes = common.TimestampStyle.Render(likes)
	}
	parts := []string{likes}
	if depth == 0 && c.ReplyCount > 0 {
		label := fmt.Sprintf("⤷ %d replies", c.ReplyCount)
		if c.ReplyCount == 1 {
			label = "⤷ 1 reply"
		}
		parts = append(parts, common.TimestampStyle.Render(label))
	}
	return strings.Join(parts, "  ")
}

func renderMedia(media []domain.Media) string {
	parts := make([]string, 0, len(media))
	for _, item := range media {
		parts = append(parts, common.TaglineStyle.Render(fmt.Sprintf("[%s] %s", item.Kind, item.URL)))
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderStatusBar() string {
	if m.confirmDelete != "" {
		return common.ConfirmStyle.Render("Delete this comment? (y/n)")
	}
	if m.confirmReport != "" {
		return common.ConfirmStyle.Render("Report as: [1] spam  [2] abuse  [3] inappropriate  [n] cancel")
	}
	help := "↑/↓ move · enter replies · l like · r reply · c comment · s sort · P pinned · esc back"
	if m.status != "" {
		return common.StatusBarStyle.Render(m.status + "  " + help)
	}
	return common.StatusBarStyle.Render(help)
}

func indentBlock(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func onOff(v bool) string {
	if v {
		return "shown"
	}
	return "hidden"
}
