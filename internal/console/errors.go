// Package console implements the client side of the dashboard: a typed
// Resource Service client, per-collection caches reconciled by reload after
// every write, pure view projections, and the add/edit dialog state machine.
package console

import "errors"

// Error taxonomy surfaced to views. All of these render as inline messages
// next to the triggering control; none are fatal.
var (
	// ErrNetwork indicates the request did not complete.
	ErrNetwork = errors.New("network failure")
	// ErrNotFound indicates an id-targeted mutation on an absent record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey indicates a registration collision.
	ErrDuplicateKey = errors.New("user id already taken")
	// ErrForbidden indicates the server rejected the caller's role.
	ErrForbidden = errors.New("forbidden")
	// ErrMissingField indicates a required form field was left empty.
	ErrMissingField = errors.New("missing required field")
	// ErrPasswordTooShort indicates a registration password under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)
