package intent

import (
	"context"
	"errors"
	"log/slog"

	"github.com/marialabs/mari-gateway/internal/chat"
	"github.com/marialabs/mari-gateway/internal/conversation"
)

// Fixed degraded-path strings.
const (
	SimulationPrefix = "Simulação: "
	ApologyMessage   = "Desculpe, erro ao contactar a IA."
	EmptyReply       = "Desculpe, sem resposta da IA."
)

const (
	classifyMaxTokens   = 400
	classifyTemperature = 0.2
)

// Classifier sends conversation context plus the new message to the
// language-model backend and normalizes the structured reply.
type Classifier struct {
	client chat.Client
	store  conversation.Store
	model  string
	logger *slog.Logger
}

// NewClassifier creates the classifier over a chat client and a context
// store.
func NewClassifier(log *slog.Logger, client chat.Client, store conversation.Store, model string) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{
		client: client,
		store:  store,
		model:  model,
		logger: log.With(slog.String("service", "classifier")),
	}
}

// Classify fetches the conversation context, composes the user turn (with
// the media interpretation appended when present) and asks the backend for
// a structured classification.
//
// Degradation tiers, in order:
//  1. backend unconfigured: general_query echoing the composed input;
//  2. transport/API failure (timeouts included): error intent with a fixed
//     apology;
//  3. empty or unparsable reply: general_query carrying a fixed notice or
//     the raw text.
// The pipeline is never blocked on a missing or failing backend.
func (c *Classifier) Classify(ctx context.Context, conversationID, text string, mediaText *string) Classification {
	history, err := c.store.History(ctx, conversationID)
	if err != nil || len(history) == 0 {
		if err != nil {
			c.logger.Error("context fetch failed, using default prompt",
				slog.String("conversation_id", conversationID),
				slog.String("error", err.Error()),
			)
		}
		history = []conversation.Turn{{Role: conversation.RoleSystem, Content: conversation.DefaultSystemPrompt}}
	}

	userMessage := text
	if mediaText != nil {
		userMessage = text + " (Mídia: " + *mediaText + ")"
	}

	messages := make([]chat.Message, 0, len(history)+1)
	messages = append(messages, chat.Message{Role: chat.RoleSystem, Content: history[0].Content})
	for _, turn := range history[1:] {
		messages = append(messages, chat.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, chat.Message{Role: chat.RoleUser, Content: userMessage})

	maxTokens := classifyMaxTokens
	temperature := float64(classifyTemperature)
	result, err := c.client.Complete(ctx, chat.Request{
		Model:          c.model,
		Messages:       messages,
		MaxTokens:      &maxTokens,
		Temperature:    &temperature,
		ResponseFormat: &chat.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		if errors.Is(err, chat.ErrNotConfigured) {
			c.logger.Warn("chat backend not configured, returning simulated classification")
			return Classification{Intent: IntentGeneralQuery, ResponseText: SimulationPrefix + userMessage}
		}
		if errors.Is(err, chat.ErrEmptyCompletion) {
			c.logger.Warn("chat backend returned no completion",
				slog.String("conversation_id", conversationID),
			)
			return Classification{Intent: IntentGeneralQuery, ResponseText: EmptyReply}
		}
		c.logger.Error("chat backend call failed",
			slog.String("conversation_id", conversationID),
			slog.String("error", err.Error()),
		)
		return Classification{Intent: IntentError, ResponseText: ApologyMessage}
	}

	raw := result.Message.Content
	if raw == "" {
		return Classification{Intent: IntentGeneralQuery, ResponseText: EmptyReply}
	}
	classification, ok := parseModelOutput(raw)
	if !ok {
		c.logger.Warn("malformed classifier output, degrading to raw text",
			slog.String("conversation_id", conversationID),
		)
		return Classification{Intent: IntentGeneralQuery, ResponseText: raw}
	}
	return classification
}
