package intent

import (
	"encoding/json"
	"strconv"
	"strings"
)

// flexString accepts JSON strings and numbers; model output is not strict
// about id fields.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// flexInt accepts JSON numbers and numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = flexInt(v)
		}
		return nil
	}
	*f = 0
	return nil
}

// flexFloat accepts JSON numbers and numeric strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(v)
		}
		return nil
	}
	*f = 0
	return nil
}

type rawClassification struct {
	Intent        string     `json:"intent"`
	ResponseText  string     `json:"response_text"`
	ProductID     flexString `json:"product_id"`
	Quantity      flexInt    `json:"quantity"`
	TotalAmount   flexFloat  `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
}

// parseModelOutput normalizes raw model text into a Classification at the
// boundary. A bare JSON string or unparsable output becomes a
// general_query carrying the raw text; an unknown intent value is coerced
// to general_query. A missing response_text stays empty so the assembler
// can fill its acknowledgement instead of the raw JSON leaking to the
// user.
func parseModelOutput(raw string) (Classification, bool) {
	trimmed := strings.TrimSpace(raw)

	var asString string
	if err := json.Unmarshal([]byte(trimmed), &asString); err == nil {
		return Classification{Intent: IntentGeneralQuery, ResponseText: asString}, true
	}

	var parsed rawClassification
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return Classification{}, false
	}

	c := Classification{
		Intent:        Intent(strings.TrimSpace(parsed.Intent)),
		ResponseText:  parsed.ResponseText,
		ProductID:     string(parsed.ProductID),
		Quantity:      int(parsed.Quantity),
		TotalAmount:   float64(parsed.TotalAmount),
		PaymentMethod: strings.ToUpper(strings.TrimSpace(parsed.PaymentMethod)),
	}
	if !c.Intent.Known() {
		c.Intent = IntentGeneralQuery
	}
	return c, true
}
