package models

import "errors"

// Error taxonomy shared by every domain package. Operations wrap one of these
// sentinels with fmt.Errorf("%w: ...") so callers can classify with errors.Is.
var (
	// ErrValidation reports empty or invalid input. The operation made no changes.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized reports an action the requester is not allowed to perform,
	// such as a non-owner deleting a group, or a request without a logged-in user.
	ErrUnauthorized = errors.New("not authorized")

	// ErrNotFound reports a reference to a missing group, invitation, participant or record.
	ErrNotFound = errors.New("not found")

	// ErrNotActionable reports an invitation that is already resolved, superseded by a
	// newer pending invitation, or addressed to someone else.
	ErrNotActionable = errors.New("invitation not actionable")
)
