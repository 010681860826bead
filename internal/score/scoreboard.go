package score

import (
	"sort"
	"strings"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/extract"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

// commentEvidence tracks the strongest comment seen for a ticker. Updates use
// strict greater-than, so the earliest comment wins on equal scores.
type commentEvidence struct {
	score     int
	permalink string
}

// Scoreboard ranks tickers mentioned in a thread's top-level comments by the
// number of distinct authors mentioning them. Comments without a body or
// without a usable author are skipped; author identity is case-insensitive;
// a ticker mentioned twice in one comment counts once for that comment.
// Ties rank by ticker, both keys descending, so output is reproducible.
func Scoreboard(comments []model.Comment, stop extract.Stopwords, maxTickers int) []model.ScoreboardItem {
	if maxTickers <= 0 {
		maxTickers = model.DefaultScoreboardMaxTickers
	}

	authors := make(map[string]map[string]struct{})
	best := make(map[string]commentEvidence)

	for _, c := range comments {
		if c.Body == "" || !c.HasAuthor() {
			continue
		}
		author := strings.ToLower(c.Author)
		tickers := extract.UniqueTickers(c.Body, stop)
		for _, t := range tickers {
			set := authors[t]
			if set == nil {
				set = make(map[string]struct{})
				authors[t] = set
			}
			set[author] = struct{}{}

			prev, seen := best[t]
			if !seen || c.Score > prev.score {
				best[t] = commentEvidence{score: c.Score, permalink: c.Permalink}
			}
		}
	}

	ranked := make([]string, 0, len(authors))
	for t := range authors {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ci, cj := len(authors[ranked[i]]), len(authors[ranked[j]])
		if ci != cj {
			return ci > cj
		}
		return ranked[i] > ranked[j]
	})
	if len(ranked) > maxTickers {
		ranked = ranked[:maxTickers]
	}

	items := make([]model.ScoreboardItem, 0, len(ranked))
	for _, t := range ranked {
		item := model.ScoreboardItem{
			Ticker:        t,
			UniqueAuthors: len(authors[t]),
		}
		if ev, ok := best[t]; ok && ev.permalink != "" {
			link := ev.permalink
			item.BestComment = &link
		}
		items = append(items, item)
	}
	return items
}
