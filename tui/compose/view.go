package compose

import (
	"fmt"
	"strings"

	"termfeed/tui/common"
)

// View renders the compose view.
func (m Model) View() string {
	if m.mode == editorMode {
		return common.TaglineStyle.Render("\n  " + m.status)
	}

	var b strings.Builder

	title := "New comment"
	switch {
	case m.isEdit:
		title = "Edit comment"
	case m.parentID != "":
		title = "Reply"
		if m.replyTo != "" {
			title = "Reply to @" + m.replyTo
		}
	}
	b.WriteString(common.AppTitleStyle.Render(title))
	b.WriteString("\n\n")

	if m.attaching {
		b.WriteString("  Attach file: " + m.attachInput.View())
		b.WriteString("\n")
		b.WriteString(common.StatusBarStyle.Render("enter: attach · esc: back"))
		return b.String()
	}

	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	if m.mediaPath != "" {
		b.WriteString(common.TaglineStyle.Render(fmt.Sprintf("  attaching %s (%s)", m.mediaPath, m.mediaKind)))
		b.WriteString("\n")
	}
	if m.isEdit && len(m.existingMedia) > 0 {
		parts := make([]string, 0, len(m.existingMedia))
		for _, k := range m.existingMedia {
			label := string(k)
			if m.deleteMedia[k] {
				label += " (will remove)"
			}
			parts = append(parts, label)
		}
		b.WriteString(common.TaglineStyle.Render("  existing: " + strings.Join(parts, ", ")))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(common.ErrorStyle.Render("  " + m.status))
		b.WriteString("\n")
	}

	help := "ctrl+d: submit · ctrl+a: attach · esc: cancel"
	if m.isEdit && len(m.existingMedia) > 0 {
		help += " · ctrl+x: toggle remove media"
	}
	b.WriteString(common.StatusBarStyle.Render(help))
	return b.String()
}
