// Package payment provides the payment-initiation collaborator. The
// current client simulates the gateway; the contract is what the
// dispatcher depends on.
package payment

import (
	"context"
	"log/slog"
)

// Supported payment methods.
const (
	MethodPIX  = "PIX"
	MethodCard = "CARD"
)

// User-safe fixed messages.
const (
	UnsupportedMethodMessage = "Método de pagamento não suportado."
	FailureMessage           = "Erro ao processar o pagamento."
)

// Result is the payment collaborator's response.
type Result struct {
	Success        bool   `json:"success"`
	Type           string `json:"type,omitempty"`
	ResponseText   string `json:"response_text"`
	QRCodeLink     string `json:"qr_code_link,omitempty"`
	PaymentLink    string `json:"payment_link,omitempty"`
	ExpirationTime string `json:"expiration_time,omitempty"`
}

// Client is the payment collaborator contract.
type Client interface {
	Initiate(ctx context.Context, conversationID, amount, method string) Result
}

// GatewayClient is the simulated payment-gateway client.
type GatewayClient struct {
	apiKey string
	logger *slog.Logger
}

// NewGatewayClient creates the payment client. apiKey may be empty; the
// simulated gateway does not require it but health reporting does.
func NewGatewayClient(log *slog.Logger, apiKey string) *GatewayClient {
	if log == nil {
		log = slog.Default()
	}
	return &GatewayClient{
		apiKey: apiKey,
		logger: log.With(slog.String("service", "payment")),
	}
}

// Initiate triggers the external payment flow for the given amount and
// method. Failures are converted to a success:false result; they never
// propagate as errors.
func (c *GatewayClient) Initiate(ctx context.Context, conversationID, amount, method string) Result {
	c.logger.Info("initiating payment",
		slog.String("conversation_id", conversationID),
		slog.String("amount", amount),
		slog.String("method", method),
	)

	switch method {
	case MethodPIX:
		return Result{
			Success:        true,
			Type:           MethodPIX,
			ResponseText:   "PIX gerado: R$ " + amount + ". Use o QR Code para pagar.",
			QRCodeLink:     "https://simulado.pix/qrcode/12345",
			ExpirationTime: "30 minutos",
		}
	case MethodCard:
		return Result{
			Success:      true,
			Type:         MethodCard,
			ResponseText: "Link de pagamento por cartão gerado: R$ " + amount + ".",
			PaymentLink:  "https://simulado.pagamento/link/67890",
		}
	default:
		return Result{Success: false, ResponseText: UnsupportedMethodMessage}
	}
}

var _ Client = (*GatewayClient)(nil)
