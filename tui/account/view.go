package account

import (
	"fmt"
	"strings"

	"termfeed/tui/common"
)

// View renders the account security view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("Account"))
	b.WriteString("\n")
	b.WriteString(common.TaglineStyle.Render("@" + m.user.Username + " · " + m.user.Email))
	b.WriteString("\n\n")

	switch m.step {
	case stepMenu:
		items := []string{"Change password", "Delete account"}
		for i, item := range items {
			if i == m.menuCursor {
				b.WriteString(common.ActionActiveStyle.Render("> " + item))
			} else {
				b.WriteString(common.ActionInactiveStyle.Render("  " + item))
			}
			b.WriteString("\n")
		}
		if m.status != "" {
			b.WriteString("\n" + common.SuccessStyle.Render("  "+m.status) + "\n")
		}

	case stepRequesting:
		b.WriteString("  Sending verification code...\n")

	case stepCode:
		b.WriteString("  Enter the code from your email:\n\n  ")
		b.WriteString(m.code.View())
		b.WriteString("\n\n")
		if m.cooldown > 0 {
			b.WriteString(common.TaglineStyle.Render(fmt.Sprintf("  resend available in %ds", m.cooldown)))
		} else {
			b.WriteString(common.TaglineStyle.Render("  ctrl+r: resend code"))
		}
		b.WriteString("\n")

	case stepVerifying:
		b.WriteString("  Checking code...\n")

	case stepNewPassword:
		b.WriteString("  Choose a new password (8+ chars, letters and digits):\n\n  ")
		b.WriteString(m.pw1.View())
		b.WriteString("\n  ")
		b.WriteString(m.pw2.View())
		b.WriteString("\n")

	case stepDeleteConfirm:
		b.WriteString(common.ConfirmStyle.Render("  This permanently deletes your account."))
		b.WriteString("\n\n  ")
		b.WriteString(m.confirm.View())
		b.WriteString("\n")

	case stepCommitting:
		b.WriteString("  Working...\n")
	}

	if m.err != nil {
		b.WriteString("\n" + common.ErrorStyle.Render("  "+m.err.Error()) + "\n")
	}

	b.WriteString(common.StatusBarStyle.Render("enter: continue · esc: back"))
	return b.String()
}
