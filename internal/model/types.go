package model

import "fmt"

// Provider names, used as JSON keys and log fields.
const (
	ProviderWikipedia = "wikipedia"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// Sentinels returned when a provider succeeds without usable content.
const (
	NoWikipediaResults = "No results found on Wikipedia."
	NoGeminiResponse   = "No response from Gemini."
)

type QueryRequest struct {
	Query string `json:"query"`
}

// AggregatedResponse always carries every provider key, even when a
// provider failed.
type AggregatedResponse struct {
	Wikipedia   string `json:"wikipedia"`
	OpenAI      string `json:"openai"`
	Gemini      string `json:"gemini"`
	FinalAnswer string `json:"final_answer"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ProviderResult is either Ok (Err == nil, Text holds the answer or a
// sentinel) or Err.
type ProviderResult struct {
	Provider string
	Text     string
	Err      error
}

func Ok(provider, text string) ProviderResult {
	return ProviderResult{Provider: provider, Text: text}
}

func Failed(provider string, err error) ProviderResult {
	return ProviderResult{Provider: provider, Err: err}
}

// Content is the string placed into the response for this provider.
func (r ProviderResult) Content() string {
	if r.Err == nil {
		return r.Text
	}
	return fmt.Sprintf("%s error: %s", displayName(r.Provider), Reason(r.Err))
}

func displayName(provider string) string {
	switch provider {
	case ProviderWikipedia:
		return "Wikipedia"
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGemini:
		return "Gemini"
	default:
		return provider
	}
}
