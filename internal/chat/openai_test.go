package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClientComplete(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"model": "gpt-4o-mini",
			"choices": [{"message": {"role": "assistant", "content": "oi"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 2, "total_tokens": 12}
		}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	maxTokens := 50
	res, err := client.Complete(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "oi"}},
		MaxTokens: &maxTokens,
	})
	require.NoError(t, err)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	assert.Equal(t, 50, gotBody.MaxTokens)
	assert.Equal(t, "oi", res.Message.Content)
	assert.Equal(t, "stop", res.FinishReason)
	assert.Equal(t, 12, res.Usage.TotalTokens)
}

func TestOpenAIClientNotConfigured(t *testing.T) {
	client := NewOpenAIClient(OpenAIConfig{APIKey: " "})
	_, err := client.Complete(context.Background(), Request{})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenAIClientBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "oi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model": "gpt-4o-mini", "choices": []}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "oi"}}})
	require.ErrorIs(t, err, ErrEmptyCompletion)
}
