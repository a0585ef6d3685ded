package domain

import "errors"

var (
	// ErrNotLoggedIn indicates missing or invalid credentials; the action
	// is blocked before any request is made.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrEmptyComment indicates a submission with no text and no media.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrCommentTooLong indicates the comment exceeds the character limit.
	ErrCommentTooLong = errors.New("comment exceeds character limit")

	// ErrWeakPassword indicates the new password fails the strength rules.
	ErrWeakPassword = errors.New("password must be at least 8 characters with a letter and a digit")

	// ErrConfirmationMismatch indicates a typed confirmation did not match.
	ErrConfirmationMismatch = errors.New("confirmation text does not match")
)
