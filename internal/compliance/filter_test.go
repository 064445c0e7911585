package compliance

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_SensitivePatterns(t *testing.T) {
	t.Parallel()
	f := NewFilter()

	cases := []struct {
		name string
		body string
		want bool
	}{
		{"formatted cpf", `{"content":"meu CPF é 123.456.789-01"}`, true},
		{"bare 11 digit run", `{"content":"documento 12345678901"}`, true},
		{"card plain", `{"content":"1234567812345678"}`, true},
		{"card spaced", `{"content":"1234 5678 1234 5678"}`, true},
		{"card hyphenated", `{"content":"1234-5678-1234-5678"}`, true},
		{"plain message", `{"content":"quero um tênis azul"}`, false},
		{"short digits", `{"content":"pedido 12345"}`, false},
		{"ten digits", `{"content":"1234567890"}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Scan([]byte(tc.body)); got != tc.want {
				t.Fatalf("Scan(%q) = %v, want %v", tc.body, got, tc.want)
			}
		})
	}
}

func TestSanitize_RedactsAllMatches(t *testing.T) {
	t.Parallel()
	f := NewFilter()

	body := `{"content":"CPF 123.456.789-01 cartão 1234 5678 1234 5678"}`
	got := f.Sanitize([]byte(body))

	assert.NotContains(t, got, "123.456.789-01")
	assert.NotContains(t, got, "1234 5678 1234 5678")
	assert.Contains(t, got, RedactionToken)
	// The sanitized copy must not retain any sequence matching the patterns.
	assert.False(t, sensitiveData.MatchString(got))
}

func TestSnippet_Bounded(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("a", 500)
	if got := Snippet([]byte(long)); len(got) != 200 {
		t.Fatalf("Snippet length = %d, want 200", len(got))
	}
	if got := Snippet([]byte("short")); got != "short" {
		t.Fatalf("Snippet(short) = %q", got)
	}
}

func TestSnippet_KeepsRunesWhole(t *testing.T) {
	t.Parallel()
	// "ã" is two bytes; an odd-length ASCII prefix puts the cut point in
	// the middle of a rune.
	body := []byte("x" + strings.Repeat("ã", 200))

	got := Snippet(body)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 200)
}

func TestMiddleware_BlocksSensitiveBody(t *testing.T) {
	t.Parallel()
	e := echo.New()

	called := false
	h := Middleware(NewFilter(), nil)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/process-message",
		strings.NewReader(`{"conversation_id":"c1","content":"cartão 1234 5678 1234 5678"}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h(c))
	assert.False(t, called, "downstream handler must not run for blocked requests")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "compliance_error")
	assert.Contains(t, rec.Body.String(), "informações sensíveis")
}

func TestMiddleware_ForwardsOriginalBody(t *testing.T) {
	t.Parallel()
	e := echo.New()

	body := `{"conversation_id":"c1","content":"olá"}`
	var seen string
	h := Middleware(NewFilter(), nil)(func(c echo.Context) error {
		b := make([]byte, len(body))
		n, _ := c.Request().Body.Read(b)
		seen = string(b[:n])
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/process-message", strings.NewReader(body))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, seen, "downstream must receive the original, non-sanitized body")
}
