package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katakuxiko/guidance/internal/config"
	"github.com/katakuxiko/guidance/internal/model"
)

func newOpenAIServer(t *testing.T, handler http.HandlerFunc) *LLMClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLLMClient(&config.Config{
		OpenAIKey:     "sk-test",
		OpenAIBaseURL: srv.URL + "/v1",
	})
}

func TestLLMClient_Guidance(t *testing.T) {
	client := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "You are a helpful AI assistant for career and course guidance.", req.Messages[0].Content)
		assert.Equal(t, "Provide detailed guidance about: machine learning", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "  Start with linear algebra.\n"},
			}},
		})
	})

	res := client.Guidance(context.Background(), "machine learning")
	require.NoError(t, res.Err)
	assert.Equal(t, model.ProviderOpenAI, res.Provider)
	assert.Equal(t, "Start with linear algebra.", res.Content())
}

func TestLLMClient_AuthError(t *testing.T) {
	client := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	})

	res := client.Guidance(context.Background(), "go")
	require.Error(t, res.Err)
	assert.True(t, strings.HasPrefix(res.Content(), "OpenAI error: "))
	assert.Contains(t, res.Content(), "Incorrect API key provided")

	var apiErr *openai.APIError
	assert.ErrorAs(t, res.Err, &apiErr)
}

func TestLLMClient_NoChoices(t *testing.T) {
	client := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	})

	res := client.Guidance(context.Background(), "go")
	require.Error(t, res.Err)
	assert.Equal(t, "OpenAI error: no choices returned by model", res.Content())
}

func TestLLMClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewLLMClient(&config.Config{OpenAIBaseURL: url + "/v1"})
	res := client.Guidance(context.Background(), "go")
	require.Error(t, res.Err)
	assert.True(t, strings.HasPrefix(res.Content(), "OpenAI error: "))
}
