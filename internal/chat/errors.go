package chat

import "errors"

var (
	// ErrNotConfigured indicates the backend has no credentials and calls
	// should degrade rather than fail.
	ErrNotConfigured = errors.New("chat backend not configured")
	// ErrEmptyCompletion indicates the backend answered without any choice.
	ErrEmptyCompletion = errors.New("chat backend returned no completion")
)
