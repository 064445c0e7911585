package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/marialabs/mari-gateway/internal/commerce"
	"github.com/marialabs/mari-gateway/internal/intent"
	"github.com/marialabs/mari-gateway/internal/payment"
)

// Service runs the message-processing pipeline. Each request owns exactly
// one InboundMessage and produces exactly one ReplyEnvelope; no pipeline
// state outlives the request.
type Service struct {
	interpreter Interpreter
	classifier  Classifier
	cart        commerce.Client
	payments    payment.Client
	defaults    Defaults
	logger      *slog.Logger
}

// NewService wires the pipeline stages together.
func NewService(log *slog.Logger, interpreter Interpreter, classifier Classifier, cart commerce.Client, payments payment.Client, defaults Defaults) *Service {
	if log == nil {
		log = slog.Default()
	}
	if defaults.ProductID == "" {
		defaults.ProductID = "123"
	}
	if defaults.Quantity <= 0 {
		defaults.Quantity = 1
	}
	if defaults.PaymentAmount == "" {
		defaults.PaymentAmount = "150.00"
	}
	if defaults.PaymentMethod == "" {
		defaults.PaymentMethod = payment.MethodPIX
	}
	return &Service{
		interpreter: interpreter,
		classifier:  classifier,
		cart:        cart,
		payments:    payments,
		defaults:    defaults,
		logger:      log.With(slog.String("service", "pipeline")),
	}
}

// Process runs compliance-cleared messages through media interpretation,
// classification, dispatch and assembly.
func (s *Service) Process(ctx context.Context, msg InboundMessage) ReplyEnvelope {
	interpretation := s.interpreter.Interpret(ctx, msg.Attachments)

	processedContent := msg.Content
	if processedContent == "" && interpretation.Text != nil {
		processedContent = *interpretation.Text
	}

	classification := s.classifier.Classify(ctx, msg.ConversationID, processedContent, interpretation.Text)

	envelope := s.dispatch(ctx, msg.ConversationID, classification)
	envelope = assemble(envelope, msg.Content)

	s.logger.Info("message processed",
		slog.String("conversation_id", msg.ConversationID),
		slog.String("ai_intent", string(classification.Intent)),
		slog.Bool("handoff_required", envelope.HandoffRequired),
		slog.String("cart_total", envelope.CartStatus.Total),
	)
	return envelope
}

// dispatch is a single-step state machine over the closed intent enum:
// one classified intent maps to one business action.
func (s *Service) dispatch(ctx context.Context, conversationID string, c intent.Classification) ReplyEnvelope {
	envelope := ReplyEnvelope{
		Action:       ActionReply,
		ResponseText: c.ResponseText,
		CartStatus:   CartStatus{Total: "0.00", Items: 0},
	}

	switch c.Intent {
	case intent.IntentAddToCart:
		productID := c.ProductID
		if productID == "" {
			productID = s.defaults.ProductID
		}
		quantity := c.Quantity
		if quantity <= 0 {
			quantity = s.defaults.Quantity
		}
		result := s.cart.Update(ctx, conversationID, productID, quantity)
		envelope.ResponseText = result.ResponseText
		if result.Success {
			envelope.CartStatus = CartStatus{Total: result.Total, Items: result.Items}
		}

	case intent.IntentInitiatePayment:
		amount := s.resolveAmount(ctx, conversationID, c.TotalAmount)
		method := c.PaymentMethod
		if method == "" {
			method = s.defaults.PaymentMethod
		}
		result := s.payments.Initiate(ctx, conversationID, amount, method)
		text := result.ResponseText
		if result.QRCodeLink != "" {
			text += "\nLink do QR Code: " + result.QRCodeLink
		}
		if result.PaymentLink != "" {
			text += "\nLink de pagamento: " + result.PaymentLink
		}
		envelope.ResponseText = text

	case intent.IntentHandoff:
		envelope.Action = ActionHandoff
		envelope.HandoffRequired = true
		envelope.ResponseText = HandoffMessage

	case intent.IntentError, intent.IntentGeneralQuery:
		// classifier's response text is kept

	default:
		// unknown intents are normalized away at the classifier boundary;
		// treat any stray value like a general query
	}

	return envelope
}

// resolveAmount picks the payment amount: the classifier's extracted
// total, else the conversation's current cart total, else the configured
// default.
func (s *Service) resolveAmount(ctx context.Context, conversationID string, extracted float64) string {
	if extracted > 0 {
		return strconv.FormatFloat(extracted, 'f', 2, 64)
	}
	if total, ok := s.cart.Total(ctx, conversationID); ok && !isZeroAmount(total) {
		return total
	}
	return s.defaults.PaymentAmount
}

func isZeroAmount(amount string) bool {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return true
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	return err == nil && parsed == 0
}

// assemble enforces the envelope invariants: handoff flag consistency and
// a non-empty response text.
func assemble(envelope ReplyEnvelope, originalContent string) ReplyEnvelope {
	envelope.HandoffRequired = envelope.Action == ActionHandoff
	if strings.TrimSpace(envelope.ResponseText) == "" {
		if originalContent != "" {
			envelope.ResponseText = `Olá! Recebi sua mensagem: "` + originalContent + `".`
		} else {
			envelope.ResponseText = "Olá! Recebi sua mensagem."
		}
	}
	if envelope.CartStatus.Total == "" {
		envelope.CartStatus.Total = "0.00"
	}
	return envelope
}
