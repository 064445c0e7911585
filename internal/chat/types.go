// Package chat provides the language-model backend client used for intent
// classification and vision description.
package chat

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// ResponseFormat specifies the format requested from the model.
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// Request is a single completion request.
type Request struct {
	Messages       []Message
	Model          string
	Temperature    *float64
	MaxTokens      *int
	ResponseFormat *ResponseFormat
}

// Usage reports token accounting from the backend.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Result is the completion result.
type Result struct {
	Message      Message
	Model        string
	FinishReason string
	Usage        Usage
}

// Client is the language-model backend contract. Complete returns
// ErrNotConfigured when no backend credentials are present, letting callers
// degrade instead of failing the request.
type Client interface {
	Complete(ctx context.Context, req Request) (Result, error)
}
