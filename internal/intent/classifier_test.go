package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marialabs/mari-gateway/internal/chat"
	"github.com/marialabs/mari-gateway/internal/conversation"
)

func newClassifier(client chat.Client) *Classifier {
	return NewClassifier(nil, client, conversation.NewMemoryStore(), "gpt-4o-mini")
}

func TestClassify_StructuredReply(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Reply(`{"intent":"add_to_cart","response_text":"adicionado","product_id":"123","quantity":2}`)
	c := newClassifier(mock)

	got := c.Classify(context.Background(), "conv-1", "quero dois", nil)
	assert.Equal(t, IntentAddToCart, got.Intent)
	assert.Equal(t, "adicionado", got.ResponseText)
	assert.Equal(t, "123", got.ProductID)
	assert.Equal(t, 2, got.Quantity)
}

func TestClassify_NumericProductID(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Reply(`{"intent":"add_to_cart","response_text":"ok","product_id":456,"quantity":"3"}`)
	c := newClassifier(mock)

	got := c.Classify(context.Background(), "conv-1", "quero", nil)
	assert.Equal(t, "456", got.ProductID)
	assert.Equal(t, 3, got.Quantity)
}

func TestClassify_UnparsableReplyDegradesToRawText(t *testing.T) {
	t.Parallel()
	raw := "Claro! Posso ajudar com o seu pedido."
	mock := chat.NewMockClient().Reply(raw)
	c := newClassifier(mock)

	got := c.Classify(context.Background(), "conv-1", "oi", nil)
	assert.Equal(t, IntentGeneralQuery, got.Intent)
	assert.Equal(t, raw, got.ResponseText)
}

func TestClassify_BackendUnconfigured(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Fail(chat.ErrNotConfigured)
	c := newClassifier(mock)

	got := c.Classify(context.Background(), "conv-1", "oi", nil)
	assert.Equal(t, IntentGeneralQuery, got.Intent)
	assert.Equal(t, SimulationPrefix+"oi", got.ResponseText)
}

func TestClassify_TransportErrorReturnsApology(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Fail(errors.New("connection reset"))
	c := newClassifier(mock)

	got := c.Classify(context.Background(), "conv-1", "oi", nil)
	assert.Equal(t, IntentError, got.Intent)
	assert.Equal(t, ApologyMessage, got.ResponseText)
}

func TestClassify_UserTurnComposition(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Reply(`{"intent":"general_query","response_text":"ok"}`)
	c := newClassifier(mock)

	c.Classify(context.Background(), "conv-1", "hi", nil)
	require.Len(t, mock.Requests, 1)
	sent := mock.Requests[0]
	last := sent.Messages[len(sent.Messages)-1]
	assert.Equal(t, chat.RoleUser, last.Role)
	assert.Equal(t, "hi", last.Content, "no media suffix without media text")

	media := "uma foto de tênis"
	c.Classify(context.Background(), "conv-1", "hi", &media)
	require.Len(t, mock.Requests, 2)
	last = mock.Requests[1].Messages[len(mock.Requests[1].Messages)-1]
	assert.Equal(t, "hi (Mídia: uma foto de tênis)", last.Content)
}

func TestClassify_PromptUsesContextHistory(t *testing.T) {
	t.Parallel()
	store := conversation.NewMemoryStore()
	store.Load("conv-1", []conversation.Turn{
		{Role: conversation.RoleSystem, Content: "prompt do sistema"},
		{Role: conversation.RoleUser, Content: "primeira"},
		{Role: conversation.RoleAssistant, Content: "resposta"},
	})
	mock := chat.NewMockClient().Reply(`{"intent":"general_query","response_text":"ok"}`)
	c := NewClassifier(nil, mock, store, "gpt-4o-mini")

	c.Classify(context.Background(), "conv-1", "nova", nil)
	require.Len(t, mock.Requests, 1)
	msgs := mock.Requests[0].Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, chat.RoleSystem, msgs[0].Role)
	assert.Equal(t, "prompt do sistema", msgs[0].Content)
	assert.Equal(t, "primeira", msgs[1].Content)
	assert.Equal(t, "resposta", msgs[2].Content)
	assert.Equal(t, "nova", msgs[3].Content)
}

func TestClassify_RequestsStructuredOutput(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Reply(`{"intent":"general_query","response_text":"ok"}`)
	c := newClassifier(mock)

	c.Classify(context.Background(), "conv-1", "oi", nil)
	require.Len(t, mock.Requests, 1)
	require.NotNil(t, mock.Requests[0].ResponseFormat)
	assert.Equal(t, "json_object", mock.Requests[0].ResponseFormat.Type)
}

func TestClassify_UnknownIntentCoerced(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Reply(`{"intent":"refund","response_text":"vou verificar"}`)
	c := newClassifier(mock)

	got := c.Classify(context.Background(), "conv-1", "oi", nil)
	assert.Equal(t, IntentGeneralQuery, got.Intent)
	assert.Equal(t, "vou verificar", got.ResponseText)
}

func TestClassify_MissingResponseTextStaysEmpty(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Reply(`{"intent":"general_query"}`)
	c := newClassifier(mock)

	got := c.Classify(context.Background(), "conv-1", "oi", nil)
	assert.Equal(t, IntentGeneralQuery, got.Intent)
	assert.Empty(t, got.ResponseText, "raw model JSON must not become the reply text")
}

func TestClassify_EmptyCompletionDegrades(t *testing.T) {
	t.Parallel()
	mock := chat.NewMockClient().Fail(chat.ErrEmptyCompletion)
	c := newClassifier(mock)

	got := c.Classify(context.Background(), "conv-1", "oi", nil)
	assert.Equal(t, IntentGeneralQuery, got.Intent)
	assert.Equal(t, EmptyReply, got.ResponseText)
}

func TestParseModelOutput_BareJSONString(t *testing.T) {
	t.Parallel()
	got, ok := parseModelOutput(`"apenas texto"`)
	require.True(t, ok)
	assert.Equal(t, IntentGeneralQuery, got.Intent)
	assert.Equal(t, "apenas texto", got.ResponseText)
}

func TestParseModelOutput_PaymentFields(t *testing.T) {
	t.Parallel()
	got, ok := parseModelOutput(`{"intent":"initiate_payment","response_text":"vamos pagar","total_amount":"99.90","payment_method":"pix"}`)
	require.True(t, ok)
	assert.Equal(t, IntentInitiatePayment, got.Intent)
	assert.InDelta(t, 99.90, got.TotalAmount, 0.001)
	assert.Equal(t, "PIX", got.PaymentMethod)
}
