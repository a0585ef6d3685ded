package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// TaglineStyle styles the app's tagline.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")). // Dimmed grey
			Italic(true).
			MarginLeft(1)

	// AuthorStyle styles comment author names.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles comment and post body text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// SelectedStyle highlights the currently selected item.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6600")).
			Padding(0, 1)

	// UnselectedStyle gives unselected items a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// FirstBadgeStyle marks the earliest comment in a thread.
	FirstBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F")).
			Bold(true).
			MarginLeft(1)

	// TrendingBadgeStyle marks the most liked comment in a thread.
	TrendingBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F5A97F")).
				Bold(true).
				MarginLeft(1)

	// PinnedBadgeStyle marks pinned comments.
	PinnedBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C6A0F6")).
			Bold(true).
			MarginLeft(1)

	// OwnBadgeStyle highlights comments that belong to the user.
	OwnBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true).
			MarginLeft(1)

	// LikedStyle styles the like counter when the user has liked the comment.
	LikedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// MentionStyle styles @username mentions inside comment bodies.
	MentionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8AADF4")).
			Bold(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ActionActiveStyle styles the currently selected action in a menu.
	ActionActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6600")).
				Bold(true).
				Padding(0, 1)

	// ActionInactiveStyle styles unselected actions in a menu.
	ActionInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6E738D")).
				Padding(0, 1)

	// ConfirmStyle styles destructive-action confirmation prompts.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true).
			Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
