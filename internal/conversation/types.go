// Package conversation defines conversation history types and the context
// store contract.
package conversation

import "context"

// Turn roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one prior exchange in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store supplies prior turns for a conversation id. Implementations must
// return at least one system turn. The processing pipeline treats the
// history as a read-only snapshot; persistence is owned by the store.
type Store interface {
	History(ctx context.Context, conversationID string) ([]Turn, error)
}
