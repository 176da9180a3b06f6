package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/katakuxiko/guidance/internal/config"
	"github.com/katakuxiko/guidance/internal/model"
)

const (
	guidanceSystemPrompt = "You are a helpful AI assistant for career and course guidance."
	guidancePrefix       = "Provide detailed guidance about: "
)

func guidancePrompt(query string) string {
	return guidancePrefix + query
}

// LLMClient asks an OpenAI compatible chat model for guidance.
type LLMClient struct {
	client   *openai.Client
	chatName string
}

// NewLLMClient builds the client from config. An empty API key is
// accepted here; the call itself will then fail with an auth error.
func NewLLMClient(cfg *config.Config) *LLMClient {
	oaiCfg := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		oaiCfg.BaseURL = cfg.OpenAIBaseURL
	}
	chatName := cfg.OpenAIModel
	if chatName == "" {
		chatName = openai.GPT4oMini
	}
	return &LLMClient{
		client:   openai.NewClientWithConfig(oaiCfg),
		chatName: chatName,
	}
}

// Guidance runs one chat completion. Failures come back as an Err result,
// never as a Go error.
func (l *LLMClient) Guidance(ctx context.Context, query string) model.ProviderResult {
	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.chatName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: guidanceSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: guidancePrompt(query)},
		},
	})
	if err != nil {
		return model.Failed(model.ProviderOpenAI, model.NewProviderError(model.ProviderOpenAI, "chat_completion", err))
	}
	if len(resp.Choices) == 0 {
		return model.Failed(model.ProviderOpenAI, model.NewProviderError(model.ProviderOpenAI, "chat_completion", errors.New("no choices returned by model")))
	}
	return model.Ok(model.ProviderOpenAI, strings.TrimSpace(resp.Choices[0].Message.Content))
}
