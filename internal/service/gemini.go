package service

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/katakuxiko/guidance/internal/config"
	"github.com/katakuxiko/guidance/internal/model"
)

// contentGenerator is the part of *genai.GenerativeModel we use.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient asks a Gemini model for guidance.
type GeminiClient struct {
	client *genai.Client
	model  contentGenerator
	// initErr is reported on every call when the client could not be built.
	initErr error
}

// NewGeminiClient never fails: a missing key or client error is kept and
// surfaced when Guidance is called.
func NewGeminiClient(ctx context.Context, cfg *config.Config) *GeminiClient {
	if cfg.GeminiKey == "" {
		return &GeminiClient{initErr: errors.New("GEMINI_API_KEY is not set")}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiKey))
	if err != nil {
		return &GeminiClient{initErr: errors.Wrap(err, "create gemini client")}
	}
	name := cfg.GeminiModel
	if name == "" {
		name = "gemini-1.5-flash"
	}
	return &GeminiClient{client: client, model: client.GenerativeModel(name)}
}

// Guidance returns the trimmed answer text, the no-response sentinel when
// the model answered with no text, or an Err result.
func (g *GeminiClient) Guidance(ctx context.Context, query string) model.ProviderResult {
	if g.initErr != nil {
		return model.Failed(model.ProviderGemini, model.NewProviderError(model.ProviderGemini, "init", g.initErr))
	}
	resp, err := g.model.GenerateContent(ctx, genai.Text(guidancePrompt(query)))
	if err != nil {
		return model.Failed(model.ProviderGemini, model.NewProviderError(model.ProviderGemini, "generate_content", err))
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return model.Ok(model.ProviderGemini, model.NoGeminiResponse)
	}
	return model.Ok(model.ProviderGemini, text)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

func (g *GeminiClient) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
