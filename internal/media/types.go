// Package media converts inbound attachments into textual descriptions for
// the classifier. Interpretation failures are non-fatal to the pipeline.
package media

import (
	"context"
	"io"
)

// AttachmentType classifies the kind of inbound attachment.
type AttachmentType string

const (
	AttachmentTypeImage AttachmentType = "image"
	AttachmentTypeAudio AttachmentType = "audio"
)

// Attachment is a media reference carried on an inbound message.
type Attachment struct {
	Type AttachmentType `json:"type"`
	URL  string         `json:"url"`
}

// Interpretation is the textual reading of an attachment. Text is nil when
// there was nothing to interpret.
type Interpretation struct {
	Text *string `json:"text"`
}

// VisionDescriber produces a textual description of an image URL.
type VisionDescriber interface {
	Describe(ctx context.Context, imageURL string) (string, error)
}

// Transcriber converts audio bytes into text. The backend accepts file
// content, not a remote URL; callers check Configured and fetch the bytes
// first, so no download happens without credentials to use it.
type Transcriber interface {
	Configured() bool
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Fetcher downloads attachment bytes from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, string, error)
}
