package shared

import "errors"

var (
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserIDTaken occurs when registration collides with an existing handle.
	ErrUserIDTaken = errors.New("user id already taken")
	// ErrTerminalStatus occurs when mutating a request already decided.
	ErrTerminalStatus = errors.New("request already decided")
)
