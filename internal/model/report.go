package model

import "time"

// ScoreboardItem is one ranked entry of the single-thread scoreboard.
type ScoreboardItem struct {
	Ticker        string  `json:"ticker"`
	UniqueAuthors int     `json:"unique_authors"`
	BestComment   *string `json:"best_comment,omitempty"` // permalink of the strongest comment, if any
}

// RadarItem is one ranked entry of the cross-source engagement radar.
type RadarItem struct {
	Ticker     string  `json:"ticker"`
	Score      float64 `json:"score"` // rounded to two decimals
	BestPost   *string `json:"best_post,omitempty"`
	BestSource *string `json:"best_source,omitempty"` // display name of the contributing source
}

// Report is the complete output of one scoreboard run.
type Report struct {
	Subreddit   string    `json:"subreddit"`
	Thread      Thread    `json:"thread"`
	GeneratedAt time.Time `json:"generated_at"`

	Scoreboard []ScoreboardItem `json:"scoreboard"`
	Radar      []RadarItem      `json:"radar,omitempty"`

	// Commentary is optional LLM-generated color. It is produced after
	// ranking and never influences scores or ordering.
	Commentary *Commentary `json:"commentary,omitempty"`
}

// Commentary holds the optional LLM summary of a report.
type Commentary struct {
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Text     string   `json:"text,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
