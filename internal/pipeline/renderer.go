package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

// Renderer turns a report into the outputs the bot publishes: the comment
// body posted back into the thread and an optional JSON artifact.
type Renderer struct {
	hubURL string
}

// NewRenderer creates a renderer. hubURL is the community hub linked in the
// comment footer; empty omits the footer.
func NewRenderer(hubURL string) *Renderer {
	return &Renderer{hubURL: hubURL}
}

// CommentBody renders the report as the scoreboard comment text.
func (r *Renderer) CommentBody(report *model.Report) string {
	var lines []string
	lines = append(lines, "Daily Scoreboard")
	lines = append(lines, "")
	lines = append(lines, "Top tickers by unique authors mentioning them in this thread (not financial advice).")
	lines = append(lines, fmt.Sprintf("Updated: %s", report.GeneratedAt.Format("2006-01-02 15:04 UTC")))
	lines = append(lines, "")

	if len(report.Scoreboard) == 0 {
		lines = append(lines, "No tickers detected yet. Post in the format: TICKER - catalyst - invalidation - 1 data point.")
	} else {
		for i, item := range report.Scoreboard {
			line := fmt.Sprintf("%d. %s — %d unique posters", i+1, item.Ticker, item.UniqueAuthors)
			if item.BestComment != nil {
				line += fmt.Sprintf(" — top comment: %s", *item.BestComment)
			}
			lines = append(lines, line)
		}
	}

	if len(report.Radar) > 0 {
		lines = append(lines, "")
		lines = append(lines, "Viral radar (cross-subreddit, weighted):")
		for _, item := range report.Radar {
			line := fmt.Sprintf("- %s — radar score %.2f", item.Ticker, item.Score)
			switch {
			case item.BestPost != nil && item.BestSource != nil:
				line += fmt.Sprintf(" — %s: %s", *item.BestSource, *item.BestPost)
			case item.BestPost != nil:
				line += fmt.Sprintf(" — %s", *item.BestPost)
			}
			lines = append(lines, line)
		}
	}

	if report.Commentary != nil && report.Commentary.Text != "" {
		lines = append(lines, "")
		lines = append(lines, report.Commentary.Text)
	}

	if r.hubURL != "" {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("Templates + rules (Hub): %s", r.hubURL))
	}

	return strings.Join(lines, "\n")
}

// RenderJSON writes the report as a JSON artifact.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteSummary prints the human-facing preview.
func (r *Renderer) WriteSummary(w io.Writer, report *model.Report) {
	fmt.Fprintln(w, "=== TARGET THREAD ===")
	fmt.Fprintln(w, report.Thread.Title)
	fmt.Fprintln(w, report.Thread.Permalink)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== COMMENT PREVIEW ===")
	fmt.Fprintln(w, r.CommentBody(report))
}
