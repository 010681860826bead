package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider talks to OpenAI's Chat Completions API, or to any
// OpenAI-compatible endpoint (Ollama) via the BaseURL override.
type OpenAIProvider struct {
	client *openai.Client
	config Config
	name   string
}

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return newChatProvider(config, "openai"), nil
}

// NewOllamaProvider creates a provider for a local Ollama server, which
// speaks the OpenAI-compatible chat API. No API key is required.
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434/v1"
	}
	if config.APIKey == "" {
		config.APIKey = "ollama" // the client requires a non-empty token
	}
	return &OllamaProvider{*newChatProvider(config, "ollama")}, nil
}

// OllamaProvider is an OpenAI-compatible provider pointed at Ollama.
type OllamaProvider struct {
	OpenAIProvider
}

func newChatProvider(config Config, name string) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		name:   name,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return p.name
}

// IsAvailable checks the endpoint with a lightweight model listing.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Comment generates commentary via the chat completions API.
func (p *OpenAIProvider) Comment(ctx context.Context, req Request) (*Response, error) {
	m := req.Model
	if m == "" {
		m = p.config.Model
	}
	if m == "" {
		m = defaultOpenAIModel
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 400
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Report)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     m,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &Response{
		Text:       strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

const systemPrompt = `You summarize a community stock-ticker scoreboard. ` +
	`Stick strictly to the tickers and counts you are given. Do not invent ` +
	`tickers, prices, or news, and do not give financial advice.`
