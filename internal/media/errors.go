package media

import "errors"

var (
	// ErrNotConfigured indicates no transcription backend is configured.
	ErrNotConfigured = errors.New("transcription backend not configured")
	// ErrAudioTooLarge indicates the fetched audio exceeds the size limit.
	ErrAudioTooLarge = errors.New("audio attachment too large")
)
