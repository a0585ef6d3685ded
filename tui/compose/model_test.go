package compose

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"termfeed/domain"
)

func typeRunes(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func submit(t *testing.T, m Model) DoneMsg {
	t.Helper()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatalf("expected a done command")
	}
	msg, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg, got %#v", cmd())
	}
	return msg
}

func TestSubmit_TrimsAndNormalizes(t *testing.T) {
	m := NewInline(Params{LoggedIn: true})
	// "e" followed by a combining acute accent; NFC folds them into é.
	m = typeRunes(t, m, "  café  ")

	msg := submit(t, m)
	if msg.Content != "café" {
		t.Fatalf("expected NFC-normalized trimmed content, got %q", msg.Content)
	}
	if msg.Cancelled || msg.IsEdit {
		t.Fatalf("unexpected flags: %#v", msg)
	}
}

func TestSubmit_CollectsMentions(t *testing.T) {
	m := NewInline(Params{LoggedIn: true, ParentID: "7"})
	m = typeRunes(t, m, "thanks @alice and @bob")

	msg := submit(t, m)
	if msg.ParentID != "7" {
		t.Fatalf("parent should carry through, got %q", msg.ParentID)
	}
	if len(msg.Mentions) != 2 || msg.Mentions[0] != "alice" || msg.Mentions[1] != "bob" {
		t.Fatalf("unexpected mentions: %#v", msg.Mentions)
	}
}

func TestSubmit_BlockedWhenEmpty(t *testing.T) {
	m := NewInline(Params{LoggedIn: true})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd != nil {
		t.Fatalf("empty composer should not submit")
	}
	if m.status == "" {
		t.Fatalf("expected a status hint")
	}
}

func TestSubmit_BlockedWhenLoggedOut(t *testing.T) {
	m := NewInline(Params{LoggedIn: false})
	m = typeRunes(t, m, "hello")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd != nil {
		t.Fatalf("logged-out composer should not submit")
	}
}

func TestCancel_SendsCancelledDone(t *testing.T) {
	m := NewInline(Params{LoggedIn: true, EditID: "9", Content: "old"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("esc should produce a done command")
	}
	msg := cmd().(DoneMsg)
	if !msg.Cancelled || !msg.IsEdit || msg.CommentID != "9" {
		t.Fatalf("unexpected cancel message: %#v", msg)
	}
}

func TestAttach_ReplacesPreviousPick(t *testing.T) {
	m := NewInline(Params{LoggedIn: true})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if !m.attaching {
		t.Fatalf("ctrl+a should open the attach prompt")
	}
	m = typeRunes(t, m, "shot.png")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mediaKind != domain.MediaImage || m.mediaPath != "shot.png" {
		t.Fatalf("unexpected attachment: %s %s", m.mediaKind, m.mediaPath)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	m = typeRunes(t, m, "clip.mp4")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mediaKind != domain.MediaVideo || m.mediaPath != "clip.mp4" {
		t.Fatalf("new attachment should replace the old one: %s %s", m.mediaKind, m.mediaPath)
	}

	msg := submit(t, m)
	if msg.MediaPath != "clip.mp4" || msg.MediaKind != domain.MediaVideo {
		t.Fatalf("submitted attachment mismatch: %#v", msg)
	}
}

func TestEdit_DeleteMarksFlowIntoResult(t *testing.T) {
	m := NewInline(Params{
		LoggedIn:      true,
		EditID:        "9",
		Content:       "body",
		ExistingMedia: []domain.MediaKind{domain.MediaImage, domain.MediaVideo},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	msg := submit(t, m)
	if len(msg.DeleteMedia) != 2 {
		t.Fatalf("expected both attachments marked, got %#v", msg.DeleteMedia)
	}

	// Toggling again clears the marks.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	msg = submit(t, m)
	if len(msg.DeleteMedia) != 0 {
		t.Fatalf("expected marks cleared, got %#v", msg.DeleteMedia)
	}
}

func TestEdit_AllMediaDeletedAndNoTextBlocksSubmit(t *testing.T) {
	m := NewInline(Params{
		LoggedIn:      true,
		EditID:        "9",
		ExistingMedia: []domain.MediaKind{domain.MediaImage},
	})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd != nil {
		t.Fatalf("stripping the only attachment with no replacement should block submit")
	}
}
