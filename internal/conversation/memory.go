package conversation

import (
	"context"
	"sync"
)

// DefaultSystemPrompt is the seed instruction used when a conversation has
// no stored history.
const DefaultSystemPrompt = "Você é a agente Mari, assistente de vendas gentil e jovial. Ajude o cliente em português."

// defaultSeed mirrors the fixed greeting exchange every new conversation
// starts from.
func defaultSeed() []Turn {
	return []Turn{
		{Role: RoleSystem, Content: DefaultSystemPrompt},
		{Role: RoleUser, Content: "Olá"},
		{Role: RoleAssistant, Content: "Olá! Como posso te ajudar hoje?"},
	}
}

// MemoryStore is an in-process Store stand-in. A real deployment backs the
// Store contract with external storage; this implementation serves every
// conversation the seed history unless a specific history was loaded.
type MemoryStore struct {
	mu        sync.RWMutex
	histories map[string][]Turn
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{histories: make(map[string][]Turn)}
}

// History returns the stored turns for the conversation, or the seed
// history when none were loaded. The returned slice is a copy.
func (s *MemoryStore) History(_ context.Context, conversationID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns, ok := s.histories[conversationID]
	if !ok || len(turns) == 0 {
		return defaultSeed(), nil
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Load replaces the stored history for a conversation. The first turn must
// be a system turn; histories violating that are prefixed with the default
// system prompt so the Store contract holds.
func (s *MemoryStore) Load(conversationID string, turns []Turn) {
	if len(turns) == 0 || turns[0].Role != RoleSystem {
		turns = append([]Turn{{Role: RoleSystem, Content: DefaultSystemPrompt}}, turns...)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[conversationID] = turns
}

var _ Store = (*MemoryStore)(nil)
