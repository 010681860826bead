package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

// NewProvider creates a provider from configuration. An empty provider name
// disables commentary and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// Commentator produces the optional report commentary.
type Commentator struct {
	provider Provider
	config   Config
}

// NewCommentator builds a commentator, or nil when no provider is configured.
func NewCommentator(config Config) (*Commentator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Commentator{provider: provider, config: config}, nil
}

// Generate creates commentary for a finished report. It is called after
// ranking; nothing it returns influences scores or ordering.
func (c *Commentator) Generate(ctx context.Context, report model.Report) (*model.Commentary, error) {
	resp, err := c.provider.Comment(ctx, Request{
		Report:    report,
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	commentary := &model.Commentary{
		Provider: c.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
	}
	for _, warning := range auditCommentary(resp.Text, report) {
		commentary.Warnings = append(commentary.Warnings, warning)
	}
	return commentary, nil
}

// BuildPrompt renders the ranked results as the user prompt.
func BuildPrompt(report model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Community: r/%s\n", report.Subreddit)
	if report.Thread.Title != "" {
		fmt.Fprintf(&b, "Thread: %s\n", report.Thread.Title)
	}

	b.WriteString("\nScoreboard (ticker, unique authors):\n")
	if len(report.Scoreboard) == 0 {
		b.WriteString("  none\n")
	}
	for _, item := range report.Scoreboard {
		fmt.Fprintf(&b, "  %s: %d\n", item.Ticker, item.UniqueAuthors)
	}

	if len(report.Radar) > 0 {
		b.WriteString("\nCross-community radar (ticker, weighted score):\n")
		for _, item := range report.Radar {
			fmt.Fprintf(&b, "  %s: %.2f\n", item.Ticker, item.Score)
		}
	}

	b.WriteString("\nWrite two or three sentences of neutral commentary on " +
		"today's mention activity. Mention only tickers listed above.")
	return b.String()
}

// auditCommentary flags tickers the LLM mentioned that are not in the report.
// The commentary is still published; the warnings make drift visible.
func auditCommentary(text string, report model.Report) []string {
	known := make(map[string]struct{})
	for _, item := range report.Scoreboard {
		known[item.Ticker] = struct{}{}
	}
	for _, item := range report.Radar {
		known[item.Ticker] = struct{}{}
	}

	var warnings []string
	flagged := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?:;()\"'")
		if len(word) < 2 || len(word) > 5 || word != strings.ToUpper(word) {
			continue
		}
		if !isAllLetters(word) {
			continue
		}
		if _, ok := known[word]; ok {
			continue
		}
		if _, dup := flagged[word]; dup {
			continue
		}
		flagged[word] = struct{}{}
		warnings = append(warnings, fmt.Sprintf("commentary mentions %s, which is not in the report", word))
	}
	return warnings
}

func isAllLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
