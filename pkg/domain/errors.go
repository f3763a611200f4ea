package domain

import (
	"errors"
	"fmt"
)

// ErrFormat is returned when a connection token does not match the grammar.
var ErrFormat = errors.New("malformed connection token")

// ErrRange is returned when a numeric field of a token does not fit its type.
var ErrRange = errors.New("connection token field out of range")

// ErrDanglingReference is returned when a template or instance id cannot be resolved.
var ErrDanglingReference = errors.New("dangling reference")

// ErrInstanceNotFound is returned when an operation targets an unknown instance.
var ErrInstanceNotFound = errors.New("instance not found")

// ErrDuplicateInstance is returned when an instance id is already taken.
var ErrDuplicateInstance = errors.New("duplicate instance")

// ErrTerminalMismatch is returned when an edge does not join an output to an input.
var ErrTerminalMismatch = errors.New("terminal mismatch")

// ErrInvalidTemplate is returned for templates a project document cannot carry.
var ErrInvalidTemplate = errors.New("invalid template")

// ErrNonFinite is returned for NaN or infinite positions and angles.
var ErrNonFinite = errors.New("non-finite value")

// ErrProjectNotFound is returned by stores for unknown project names.
var ErrProjectNotFound = errors.New("project not found")

// TokenError describes a connection token that failed to decode.
type TokenError struct {
	Token string
	Err   error // ErrFormat or ErrRange
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}
