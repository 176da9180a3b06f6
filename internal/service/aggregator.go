package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katakuxiko/guidance/internal/logger"
	"github.com/katakuxiko/guidance/internal/model"
)

// Summarizer looks a query up in a reference source.
type Summarizer interface {
	Summary(ctx context.Context, query string) model.ProviderResult
}

// Advisor asks a chat model for guidance on a query.
type Advisor interface {
	Guidance(ctx context.Context, query string) model.ProviderResult
}

type AggregatorService struct {
	wiki   Summarizer
	openai Advisor
	gemini Advisor
	log    *zap.Logger
}

func NewAggregatorService(wiki Summarizer, openai, gemini Advisor, log *zap.Logger) *AggregatorService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AggregatorService{wiki: wiki, openai: openai, gemini: gemini, log: log}
}

// Query calls the providers one after another and merges their output.
// Provider failures end up as text in the response, so this never fails.
func (s *AggregatorService) Query(ctx context.Context, query string) model.AggregatedResponse {
	results := []model.ProviderResult{
		s.wiki.Summary(ctx, query),
		s.openai.Guidance(ctx, query),
		s.gemini.Guidance(ctx, query),
	}
	for _, r := range results {
		if r.Err != nil {
			s.log.Warn("provider failed",
				zap.String("request_id", logger.RequestID(ctx)),
				zap.String("provider", r.Provider),
				zap.Error(r.Err),
			)
		}
	}

	wiki, ai, gem := results[0].Content(), results[1].Content(), results[2].Content()
	return model.AggregatedResponse{
		Wikipedia:   wiki,
		OpenAI:      ai,
		Gemini:      gem,
		FinalAnswer: FinalAnswer(wiki, ai, gem),
	}
}

// FinalAnswer joins the three sections in fixed order.
func FinalAnswer(wiki, openai, gemini string) string {
	return fmt.Sprintf("📘 Wikipedia:\n%s\n\n🤖 OpenAI:\n%s\n\n✨ Gemini:\n%s", wiki, openai, gemini)
}
