package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/unicode/norm"

	"termfeed/domain"
	"termfeed/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when composing is complete (submit or cancel).
type DoneMsg struct {
	Content     string
	ParentID    string
	CommentID   string // Set when editing.
	IsEdit      bool
	MediaKind   domain.MediaKind
	MediaPath   string
	DeleteMedia []domain.MediaKind
	Mentions    []string
	Cancelled   bool
	Err         error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode     mode
	editor   *editor.EnvEditor
	loggedIn bool

	textarea    textarea.Model  // Inline mode.
	attachInput textinput.Model // Path prompt while attaching.
	attaching   bool

	isEdit    bool
	commentID string
	parentID  string
	replyTo   string // Username shown in the reply banner.
	content   string // Initial content when editing.

	existingMedia []domain.MediaKind
	deleteMedia   map[domain.MediaKind]bool
	mediaPath     string
	mediaKind     domain.MediaKind

	tmpPath string
	status  string
}

// Params configures a composer instance.
type Params struct {
	LoggedIn      bool
	ParentID      string
	ReplyTo       string
	EditID        string
	Content       string
	ExistingMedia []domain.MediaKind
}

// NewInline creates a composer with an inline textarea.
func NewInline(p Params) Model {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	if p.ParentID != "" {
		ta.Placeholder = "Write a reply..."
	}
	ta.CharLimit = MaxContentLength
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.SetValue(p.Content)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "path/to/attachment"
	ti.CharLimit = 512
	ti.Width = 60

	return Model{
		mode:          inlineMode,
		loggedIn:      p.LoggedIn,
		textarea:      ta,
		attachInput:   ti,
		isEdit:        p.EditID != "",
		commentID:     p.EditID,
		parentID:      p.ParentID,
		replyTo:       p.ReplyTo,
		content:       p.Content,
		existingMedia: p.ExistingMedia,
		deleteMedia:   make(map[domain.MediaKind]bool),
	}
}

// NewEditor creates a composer that opens $EDITOR via tea.Exec.
func NewEditor(ed *editor.EnvEditor, p Params) Model {
	m := NewInline(p)
	m.mode = editorMode
	m.editor = ed
	m.status = "Opening editor..."
	return m
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.content, m.replyTo)
	if err != nil {
		return func() tea.Msg {
			return DoneMsg{Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	m.tmpPath = tmpPath

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(m.doneMsg("", true, fmt.Errorf("editor: %w", msg.err)))
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(m.doneMsg("", true, err))
		}
		if strings.TrimSpace(content) == "" || content == m.content {
			return m, done(m.doneMsg("", true, nil)) // Cancel.
		}
		return m, done(m.doneMsg(content, false, nil))

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		if m.attaching {
			switch msg.String() {
			case "esc":
				m.attaching = false
				m.attachInput.SetValue("")
				return m, nil
			case "enter":
				path := strings.TrimSpace(m.attachInput.Value())
				m.attaching = false
				m.attachInput.SetValue("")
				if path != "" {
					// A new attachment replaces any previous pick.
					m.mediaPath = path
					m.mediaKind = KindForPath(path)
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.attachInput, cmd = m.attachInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc":
			return m, done(m.doneMsg("", true, nil))

		case "ctrl+a":
			m.attaching = true
			m.attachInput.Focus()
			return m, textinput.Blink

		case "ctrl+x":
			if !m.isEdit || len(m.existingMedia) == 0 {
				return m, nil
			}
			m.toggleDeleteMarks()
			return m, nil

		case "ctrl+d":
			if !m.submittable() {
				m.status = "Nothing to submit."
				return m, nil
			}
			return m, done(m.doneMsg(m.textarea.Value(), false, nil))
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode && !m.attaching {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

// toggleDeleteMarks flips the removal flag on every existing attachment.
func (m *Model) toggleDeleteMarks() {
	allMarked := true
	for _, k := range m.existingMedia {
		if !m.deleteMedia[k] {
			allMarked = false
			break
		}
	}
	for _, k := range m.existingMedia {
		m.deleteMedia[k] = !allMarked
	}
}

func (m Model) submittable() bool {
	marked := 0
	for _, k := range m.existingMedia {
		if m.deleteMedia[k] {
			marked++
		}
	}
	return CanSubmit(SubmitCheck{
		LoggedIn:        m.loggedIn,
		Text:            m.textarea.Value(),
		HasNewMedia:     m.mediaPath != "",
		Editing:         m.isEdit,
		ExistingMedia:   len(m.existingMedia),
		MarkedForDelete: marked,
	})
}

// doneMsg assembles the outgoing result. The body is normalized to NFC
// so visually identical input always submits identical bytes.
func (m Model) doneMsg(content string, cancelled bool, err error) DoneMsg {
	if cancelled || err != nil {
		return DoneMsg{
			ParentID:  m.parentID,
			CommentID: m.commentID,
			IsEdit:    m.isEdit,
			Cancelled: err == nil,
			Err:       err,
		}
	}

	normalized := norm.NFC.String(strings.TrimSpace(content))
	var deletes []domain.MediaKind
	for _, k := range m.existingMedia {
		if m.deleteMedia[k] {
			deletes = append(deletes, k)
		}
	}
	return DoneMsg{
		Content:     normalized,
		ParentID:    m.parentID,
		CommentID:   m.commentID,
		IsEdit:      m.isEdit,
		MediaKind:   m.mediaKind,
		MediaPath:   m.mediaPath,
		DeleteMedia: deletes,
		Mentions:    domain.ScanMentions(normalized),
	}
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
