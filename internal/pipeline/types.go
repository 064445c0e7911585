// Package pipeline implements the message-processing core: media
// interpretation, intent classification, intent dispatch and response
// assembly.
package pipeline

import (
	"context"

	"github.com/marialabs/mari-gateway/internal/intent"
	"github.com/marialabs/mari-gateway/internal/media"
)

// Reply actions.
const (
	ActionReply   = "reply"
	ActionHandoff = "handoff"
)

// HandoffMessage is the fixed reply when the conversation is transferred
// to a human operator.
const HandoffMessage = "Entendido. Vou transferir você para um de nossos atendentes."

// InboundMessage is the request payload. Immutable once received.
type InboundMessage struct {
	ConversationID string             `json:"conversation_id" validate:"required"`
	Content        string             `json:"content"`
	Attachments    []media.Attachment `json:"attachments" validate:"omitempty,dive"`
}

// CartStatus is the cart summary carried in the reply envelope.
type CartStatus struct {
	Total string `json:"total"`
	Items int    `json:"items"`
}

// ReplyEnvelope is the sole response shape of the processing endpoint.
// Invariant: HandoffRequired == (Action == ActionHandoff).
type ReplyEnvelope struct {
	Action          string     `json:"action"`
	ResponseText    string     `json:"response_text"`
	HandoffRequired bool       `json:"handoff_required"`
	CartStatus      CartStatus `json:"cart_status"`
}

// Interpreter converts attachments into text for the classifier.
type Interpreter interface {
	Interpret(ctx context.Context, attachments []media.Attachment) media.Interpretation
}

// Classifier produces a normalized classification for the new message.
type Classifier interface {
	Classify(ctx context.Context, conversationID, text string, mediaText *string) intent.Classification
}

// Defaults are applied when the classifier omits extracted fields.
type Defaults struct {
	ProductID     string
	Quantity      int
	PaymentAmount string
	PaymentMethod string
}
