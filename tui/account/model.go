package account

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"termfeed/app"
	"termfeed/domain"
)

// resendCooldown is how long the resend key stays disabled after a
// verification code goes out.
const resendCooldown = 60

type flow int

const (
	flowPassword flow = iota
	flowDeletion
)

type step int

const (
	stepMenu step = iota
	stepRequesting
	stepCode
	stepVerifying
	stepNewPassword
	stepDeleteConfirm
	stepCommitting
)

// --- Messages ---

// DeletedMsg tells the root model the account is gone and the session
// must end.
type DeletedMsg struct{}

type requestedMsg struct {
	flow flow
	err  error
}

type verifiedMsg struct {
	flow   flow
	ticket string
	err    error
}

type committedMsg struct {
	flow flow
	err  error
}

type cooldownTickMsg struct{}

// --- Model ---

// Model drives the two account security flows: password change and
// account deletion. Both are request-code, verify-code, commit.
type Model struct {
	svc  app.AccountService
	user domain.User

	flow   flow
	step   step
	ticket string

	menuCursor int
	cooldown   int // Seconds until resend unlocks.

	code    textinput.Model
	pw1     textinput.Model
	pw2     textinput.Model
	confirm textinput.Model
	pwFocus int // 0: new password, 1: repeat.

	status string
	err    error
}

// New creates the account view for the given user.
func New(svc app.AccountService, user domain.User) Model {
	code := textinput.New()
	code.Placeholder = "verification code"
	code.CharLimit = 12
	code.Width = 24

	pw1 := textinput.New()
	pw1.Placeholder = "new password"
	pw1.EchoMode = textinput.EchoPassword
	pw1.CharLimit = 128
	pw1.Width = 32

	pw2 := textinput.New()
	pw2.Placeholder = "repeat password"
	pw2.EchoMode = textinput.EchoPassword
	pw2.CharLimit = 128
	pw2.Width = 32

	confirm := textinput.New()
	confirm.Placeholder = "type " + DeleteConfirmation + " to continue"
	confirm.CharLimit = 16
	confirm.Width = 32

	return Model{
		svc:     svc,
		user:    user,
		code:    code,
		pw1:     pw1,
		pw2:     pw2,
		confirm: confirm,
	}
}

// Init is a no-op; the menu needs no startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// AtRoot reports whether the view sits at its top-level menu, where esc
// should leave the account view entirely.
func (m Model) AtRoot() bool {
	return m.step == stepMenu
}

// Update handles messages for the account view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestedMsg:
		if msg.flow != m.flow || m.step != stepRequesting {
			return m, nil
		}
		if msg.err != nil {
			m.step = stepMenu
			m.err = msg.err
			return m, nil
		}
		m.step = stepCode
		m.err = nil
		m.status = "Code sent to " + m.user.Email
		m.cooldown = resendCooldown
		m.code.SetValue("")
		m.code.Focus()
		return m, cooldownTick()

	case verifiedMsg:
		if msg.flow != m.flow || m.step != stepVerifying {
			return m, nil
		}
		if msg.err != nil {
			m.step = stepCode
			m.err = msg.err
			return m, nil
		}
		m.ticket = msg.ticket
		m.err = nil
		m.status = ""
		if m.flow == flowPassword {
			m.step = stepNewPassword
			m.pw1.SetValue("")
			m.pw2.SetValue("")
			m.pwFocus = 0
			m.pw1.Focus()
			m.pw2.Blur()
		} else {
			m.step = stepDeleteConfirm
			m.confirm.SetValue("")
			m.confirm.Focus()
		}
		return m, nil

	case committedMsg:
		if msg.flow != m.flow || m.step != stepCommitting {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			if m.flow == flowPassword {
				m.step = stepNewPassword
			} else {
				m.step = stepDeleteConfirm
			}
			return m, nil
		}
		if m.flow == flowDeletion {
			return m, func() tea.Msg { return DeletedMsg{} }
		}
		m.step = stepMenu
		m.err = nil
		m.status = "Password changed."
		return m, nil

	case cooldownTickMsg:
		if m.cooldown <= 0 {
			return m, nil
		}
		m.cooldown--
		if m.cooldown > 0 {
			return m, cooldownTick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.step {
	case stepMenu:
		switch msg.String() {
		case "up", "k":
			if m.menuCursor > 0 {
				m.menuCursor--
			}
		case "down", "j":
			if m.menuCursor < 1 {
				m.menuCursor++
			}
		case "enter":
			m.err = nil
			m.status = ""
			if m.menuCursor == 0 {
				m.flow = flowPassword
			} else {
				m.flow = flowDeletion
			}
			m.step = stepRequesting
			return m, m.requestCode()
		}
		return m, nil

	case stepCode:
		switch msg.String() {
		case "enter":
			codeValue := m.code.Value()
			if codeValue == "" {
				return m, nil
			}
			m.step = stepVerifying
			return m, m.verifyCode(codeValue)
		case "ctrl+r":
			if m.cooldown > 0 {
				return m, nil
			}
			m.step = stepRequesting
			return m, m.requestCode()
		case "esc":
			m.step = stepMenu
			return m, nil
		}

	case stepNewPassword:
		switch msg.String() {
		case "tab", "shift+tab":
			m.pwFocus = 1 - m.pwFocus
			if m.pwFocus == 0 {
				m.pw1.Focus()
				m.pw2.Blur()
			} else {
				m.pw1.Blur()
				m.pw2.Focus()
			}
			return m, nil
		case "enter":
			if err := ValidatePassword(m.pw1.Value()); err != nil {
				m.err = err
				return m, nil
			}
			if m.pw1.Value() != m.pw2.Value() {
				m.err = domain.ErrConfirmationMismatch
				return m, nil
			}
			m.err = nil
			m.step = stepCommitting
			return m, m.commitPassword(m.pw1.Value())
		case "esc":
			m.step = stepMenu
			return m, nil
		}

	case stepDeleteConfirm:
		switch msg.String() {
		case "enter":
			if err := ConfirmDeletion(m.confirm.Value()); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.step = stepCommitting
			return m, m.commitDeletion()
		case "esc":
			m.step = stepMenu
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.step {
	case stepCode:
		m.code, cmd = m.code.Update(msg)
	case stepNewPassword:
		if m.pwFocus == 0 {
			m.pw1, cmd = m.pw1.Update(msg)
		} else {
			m.pw2, cmd = m.pw2.Update(msg)
		}
	case stepDeleteConfirm:
		m.confirm, cmd = m.confirm.Update(msg)
	}
	return m, cmd
}

// --- Commands ---

func (m Model) requestCode() tea.Cmd {
	svc := m.svc
	f := m.flow
	return func() tea.Msg {
		var err error
		if f == flowPassword {
			err = svc.RequestPasswordChange(context.Background())
		} else {
			err = svc.RequestDeletion(context.Background())
		}
		return requestedMsg{flow: f, err: err}
	}
}

func (m Model) verifyCode(code string) tea.Cmd {
	svc := m.svc
	f := m.flow
	return func() tea.Msg {
		var ticket string
		var err error
		if f == flowPassword {
			ticket, err = svc.VerifyPasswordChange(context.Background(), code)
		} else {
			ticket, err = svc.VerifyDeletion(context.Background(), code)
		}
		return verifiedMsg{flow: f, ticket: ticket, err: err}
	}
}

func (m Model) commitPassword(newPassword string) tea.Cmd {
	svc := m.svc
	ticket := m.ticket
	return func() tea.Msg {
		return committedMsg{flow: flowPassword, err: svc.CommitPasswordChange(context.Background(), ticket, newPassword)}
	}
}

func (m Model) commitDeletion() tea.Cmd {
	svc := m.svc
	ticket := m.ticket
	return func() tea.Msg {
		return committedMsg{flow: flowDeletion, err: svc.CommitDeletion(context.Background(), ticket)}
	}
}

func cooldownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return cooldownTickMsg{}
	})
}
