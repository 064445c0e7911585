// Package intent classifies user messages into business intents through
// the language-model backend.
package intent

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentAddToCart       Intent = "add_to_cart"
	IntentInitiatePayment Intent = "initiate_payment"
	IntentHandoff         Intent = "handoff"
	IntentGeneralQuery    Intent = "general_query"
	IntentError           Intent = "error"
)

// Known reports whether the intent belongs to the closed enum.
func (i Intent) Known() bool {
	switch i {
	case IntentAddToCart, IntentInitiatePayment, IntentHandoff, IntentGeneralQuery, IntentError:
		return true
	}
	return false
}

// Classification is the normalized classifier output. Extracted fields are
// partially trusted: any of them may be absent and the dispatcher applies
// defaults.
type Classification struct {
	Intent        Intent  `json:"intent"`
	ResponseText  string  `json:"response_text"`
	ProductID     string  `json:"product_id,omitempty"`
	Quantity      int     `json:"quantity,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}
