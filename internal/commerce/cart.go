// Package commerce provides the cart collaborator. The current client
// simulates the store backend; the contract is what the dispatcher
// depends on.
package commerce

import (
	"context"
	"log/slog"
	"sync"
)

// CartResult is the cart collaborator's response.
type CartResult struct {
	Success      bool   `json:"success"`
	Total        string `json:"total,omitempty"`
	Items        int    `json:"items,omitempty"`
	ResponseText string `json:"response_text"`
}

// CartFailureMessage is the user-safe apology returned when the cart
// backend fails.
const CartFailureMessage = "Desculpe, houve um erro ao atualizar seu carrinho. Tente novamente mais tarde."

// Client is the cart collaborator contract. Update mutates the external
// cart; Total reports the conversation's current cart total for payment
// amount resolution.
type Client interface {
	Update(ctx context.Context, conversationID, productID string, quantity int) CartResult
	Total(ctx context.Context, conversationID string) (string, bool)
}

// StoreClient is the simulated store-backend cart client.
// TODO: call the real store cart/orders API once the store integration
// credentials land.
type StoreClient struct {
	storeURL string
	logger   *slog.Logger

	mu     sync.RWMutex
	totals map[string]string
}

// NewStoreClient creates the cart client. storeURL may be empty; the
// simulated backend does not require it but health reporting does.
func NewStoreClient(log *slog.Logger, storeURL string) *StoreClient {
	if log == nil {
		log = slog.Default()
	}
	return &StoreClient{
		storeURL: storeURL,
		logger:   log.With(slog.String("service", "commerce")),
		totals:   make(map[string]string),
	}
}

// Update adds the product to the conversation's cart and returns the new
// totals. Failures are converted to a success:false result; they never
// propagate as errors.
func (c *StoreClient) Update(ctx context.Context, conversationID, productID string, quantity int) CartResult {
	c.logger.Info("updating cart",
		slog.String("conversation_id", conversationID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	// Simulated backend response; stands in for the store cart API.
	newTotal := "150.00"

	c.mu.Lock()
	c.totals[conversationID] = newTotal
	c.mu.Unlock()

	return CartResult{
		Success:      true,
		Total:        newTotal,
		Items:        3,
		ResponseText: "Produto adicionado ao seu carrinho. O total atual é R$ " + newTotal + ".",
	}
}

// Total returns the conversation's current cart total, if one is known.
func (c *StoreClient) Total(_ context.Context, conversationID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total, ok := c.totals[conversationID]
	return total, ok
}

var _ Client = (*StoreClient)(nil)
