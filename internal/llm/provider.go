package llm

import (
	"context"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

// Provider generates commentary text for a finished report. Commentary is
// produced after ranking and never feeds back into scores.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Comment generates commentary for the report.
	Comment(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Request is the input for commentary generation.
type Request struct {
	// Report is the finished scoreboard report.
	Report model.Report

	// Prompt overrides the default instruction when non-empty.
	Prompt string

	// Model is the provider-specific model name.
	Model string

	// MaxTokens bounds the response length.
	MaxTokens int
}

// Response is the provider's output.
type Response struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai", "ollama", or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// ConfigFromModel converts the yaml-facing configuration.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}
