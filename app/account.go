package app

import (
	"context"

	"termfeed/domain"
)

// AccountService covers the authenticated user and the two verification
// flows (password change, account deletion). Both follow the same shape:
// request a code, verify it, commit the action.
type AccountService interface {
	// CurrentUser returns the authenticated account summary.
	CurrentUser(ctx context.Context) (domain.User, error)

	// RequestPasswordChange emails a verification code.
	RequestPasswordChange(ctx context.Context) error

	// VerifyPasswordChange checks the code and returns a one-time ticket
	// for the commit step.
	VerifyPasswordChange(ctx context.Context, code string) (ticket string, err error)

	// CommitPasswordChange sets the new password using the ticket.
	CommitPasswordChange(ctx context.Context, ticket, newPassword string) error

	// RequestDeletion emails a deletion verification code.
	RequestDeletion(ctx context.Context) error

	// VerifyDeletion checks the code and returns the commit ticket.
	VerifyDeletion(ctx context.Context, code string) (ticket string, err error)

	// CommitDeletion permanently deletes the account.
	CommitDeletion(ctx context.Context, ticket string) error
}
