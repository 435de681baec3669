package domain

import "errors"

var (
	// ErrUnauthorized is returned when the actor's capability set does not
	// permit the requested action. Checked before any storage access.
	ErrUnauthorized = errors.New("action not permitted")

	ErrPageNotFound       = errors.New("wiki page not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrPostNotFound       = errors.New("announcement not found")

	// ErrSubmissionClosed is returned when a reviewer acts on a submission
	// that already reached a terminal state.
	ErrSubmissionClosed = errors.New("submission already resolved")

	// ErrIdentityLookup marks a failed guild member query. The role resolver
	// degrades to an all-false capability set instead of surfacing it to
	// action handlers; it exists for callers that must tell "no roles" apart
	// from "lookup failed".
	ErrIdentityLookup = errors.New("identity lookup failed")

	// ErrStorageUnavailable marks a persistence failure. Retryable; no
	// transition is considered to have occurred.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrInvalidCategory = errors.New("invalid announcement category")
)
