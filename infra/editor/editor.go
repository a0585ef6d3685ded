package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback:
// "vi") for composing long comments. It does NOT run the editor itself;
// callers use tea.Exec with the returned *exec.Cmd so Bubble Tea properly
// suspends raw terminal mode.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionComment = `<!--
termfeed: write your comment below.

- SAVE and EXIT to submit (e.g., :wq in vi).
- Emptying the file or making NO CHANGES will cancel.
-->

`

// Cmd prepares an *exec.Cmd for the editor and a temp file path seeded
// with content. replyTo, when non-empty, is mentioned in the template so
// the user sees which comment they are answering.
func (e *EnvEditor) Cmd(content, replyTo string) (*exec.Cmd, string, error) {
	editorCmd := os.Getenv("EDITOR")
	if editorCmd == "" {
		editorCmd = "vi"
	}

	tmpFile, err := os.CreateTemp("", "termfeed-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	header := instructionComment
	if replyTo != "" {
		header = strings.Replace(header, "write your comment below.",
			fmt.Sprintf("Replying to %s. Write your reply below.", replyTo), 1)
	}
	if _, err := tmpFile.WriteString(header + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	cmd := exec.Command(editorCmd, "+", tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, tmpPath, nil
}

// ReadContent reads the composed text back, strips the instruction header
// and removes the temp file.
func (e *EnvEditor) ReadContent(tmpPath string) (string, error) {
	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}
	_ = os.Remove(tmpPath)

	text := string(data)
	if idx := strings.Index(text, "-->"); idx >= 0 {
		text = text[idx+len("-->"):]
	}
	return strings.TrimSpace(text), nil
}
