package compose

import (
	"path/filepath"
	"strings"

	"termfeed/domain"
)

// MaxContentLength caps the comment body, matching the server limit.
const MaxContentLength = 2000

// SubmitCheck carries everything the submit gate looks at.
type SubmitCheck struct {
	LoggedIn        bool
	Submitting      bool
	Text            string
	HasNewMedia     bool
	Editing         bool
	ExistingMedia   int // Attachments already on the comment being edited.
	MarkedForDelete int // How many of those are flagged for removal.
}

// CanSubmit decides whether the composer may submit. A comment needs a
// non-blank body or at least one attachment surviving the edit; edits
// that strip every attachment must bring replacement text or media.
func CanSubmit(c SubmitCheck) bool {
	if !c.LoggedIn || c.Submitting {
		return false
	}
	hasText := strings.TrimSpace(c.Text) != ""
	if !c.Editing {
		return hasText || c.HasNewMedia
	}
	kept := c.ExistingMedia - c.MarkedForDelete
	return hasText || c.HasNewMedia || kept > 0
}

// KindForPath classifies an attachment by file extension. Anything not
// recognizably an image or video uploads as a generic file.
func KindForPath(path string) domain.MediaKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return domain.MediaImage
	case ".mp4", ".mov", ".webm", ".mkv":
		return domain.MediaVideo
	default:
		return domain.MediaFile
	}
}
