package contactsync

import "errors"

var (
	// ErrAborted marks a run that stopped before reaching a decision
	ErrAborted = errors.New("sync aborted")

	// ErrMultipleContacts means more than one contact shares the user's email
	ErrMultipleContacts = errors.New("multiple contacts found with the same email")

	// ErrMissingEmail means the GitHub user has no public email to match on
	ErrMissingEmail = errors.New("GitHub user has no public email")

	// ErrWriteFailed means the create or update call failed
	ErrWriteFailed = errors.New("contact write failed")
)
