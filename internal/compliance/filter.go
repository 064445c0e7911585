// Package compliance blocks requests carrying regulated personal or
// financial data patterns before they reach message processing.
package compliance

import (
	"regexp"
	"unicode/utf8"
)

const (
	// RedactionToken replaces sensitive matches in the audit-log copy.
	RedactionToken = "[DADO_SENSIVEL_MASCARADO]"

	// RejectionMessage is the fixed user-facing message returned when a
	// request is blocked.
	RejectionMessage = "Olá! Detectamos que você pode ter incluído informações sensíveis (como CPF ou número de cartão). Por segurança e conformidade, bloqueamos o processamento. Remova esses dados e tente novamente."

	// snippetLimit bounds how much of an offending body is ever logged.
	snippetLimit = 200
)

// sensitiveData matches a Brazilian CPF (formatted or a bare 11-digit run)
// or a 16-digit payment card number grouped in fours with optional
// space/hyphen separators.
var sensitiveData = regexp.MustCompile(`(\d{3}\.\d{3}\.\d{3}-\d{2}|\b\d{11}\b)|((\d{4}[- ]?){3}\d{4})`)

// Filter scans serialized request bodies for sensitive data patterns.
type Filter struct{}

// NewFilter returns a Filter using the fixed CPF and payment-card patterns.
func NewFilter() *Filter {
	return &Filter{}
}

// Scan reports whether the body contains a sensitive data pattern.
func (f *Filter) Scan(body []byte) bool {
	return sensitiveData.Match(body)
}

// Sanitize returns a copy of body with every sensitive match replaced by
// the redaction token. The original body is left untouched.
func (f *Filter) Sanitize(body []byte) string {
	return sensitiveData.ReplaceAllString(string(body), RedactionToken)
}

// Snippet returns a bounded prefix of the body safe for warn-level logging.
// The cut lands on a rune boundary so multi-byte text stays valid UTF-8.
func Snippet(body []byte) string {
	if len(body) <= snippetLimit {
		return string(body)
	}
	cut := snippetLimit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut])
}
