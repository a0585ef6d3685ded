package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit         key.Binding
	Back         key.Binding
	Refresh      key.Binding
	Up           key.Binding
	Down         key.Binding
	Open         key.Binding // enter: open post / expand replies
	Compose      key.Binding // c: new comment (inline)
	ComposeABuf  key.Binding // C: new comment ($EDITOR)
	Reply        key.Binding // r: reply to selected comment
	Edit         key.Binding // e: edit own comment
	Delete       key.Binding // d: delete own comment
	Like         key.Binding // l: like/unlike
	Pin          key.Binding // p: pin/unpin (post owner)
	Report       key.Binding // !: report comment
	Sort         key.Binding // s: cycle sort mode
	TogglePinned key.Binding // P: show/hide pinned section
	LoadMore     key.Binding // m: next page
	Search       key.Binding // /: search overlay
	Account      key.Binding // a: account security
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Compose: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		ComposeABuf: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "comment ($EDITOR)"),
		),
		Reply: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reply"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin"),
		),
		Report: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "report"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		TogglePinned: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "pinned on/off"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Account: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "account"),
		),
	}
}
