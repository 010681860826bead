package score

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/extract"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

// engagementCap bounds any single post's influence on the aggregate so one
// viral post cannot dominate the radar arbitrarily.
const engagementCap = 12.0

// FeedSource supplies posts for one configured feed.
type FeedSource interface {
	// DisplayName is the human-readable source label used in evidence
	// attribution (e.g. "r/stocks").
	DisplayName() string

	// SupportsMode reports whether the source can serve the given listing.
	SupportsMode(mode model.FeedMode) bool

	// Fetch returns up to limit posts from the given listing.
	Fetch(ctx context.Context, mode model.FeedMode, limit int) ([]model.Post, error)
}

// SourceResolver resolves a configured source name to its feed. A nil result
// means the source cannot be located; the radar skips it.
type SourceResolver interface {
	Resolve(name string) FeedSource
}

// postEvidence tracks the single highest-contribution post per ticker, with
// the source it came from. Strict greater-than, first-wins on ties.
type postEvidence struct {
	contribution float64
	permalink    string
	source       string
}

// Radar aggregates weighted post engagement per ticker across all configured
// sources. The accumulation table is shared across sources within one call;
// nothing persists between calls. Posts outside a source's lookback window,
// or whose creation time is unknown, are skipped. A per-source fetch error
// aborts the run and propagates.
func Radar(ctx context.Context, resolver SourceResolver, cfg model.RadarConfig, stop extract.Stopwords, now time.Time) ([]model.RadarItem, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	maxOut := cfg.MaxTickers
	if maxOut <= 0 {
		maxOut = model.DefaultRadarMaxTickers
	}

	totals := make(map[string]float64)
	best := make(map[string]postEvidence)

	for _, raw := range cfg.Sources {
		src := raw.Normalized()
		if src.Name == "" {
			continue
		}
		feed := resolver.Resolve(src.Name)
		if feed == nil {
			continue
		}

		mode := model.ParseFeedMode(src.Mode)
		if !feed.SupportsMode(mode) {
			// One source's listing limitation must not abort the batch.
			mode = model.ModeHot
		}

		posts, err := feed.Fetch(ctx, mode, src.MaxPosts)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
		}

		cutoff := now.Add(-time.Duration(src.LookbackHours) * time.Hour)
		for _, post := range posts {
			if post.CreatedAt.IsZero() || post.CreatedAt.Before(cutoff) {
				continue
			}
			tickers := extract.UniqueTickers(post.Text(), stop)
			if len(tickers) == 0 {
				continue
			}

			inc := src.Weight * engagement(post.Score, post.NumComments)
			for _, t := range tickers {
				totals[t] += inc
				prev, seen := best[t]
				if !seen || inc > prev.contribution {
					best[t] = postEvidence{
						contribution: inc,
						permalink:    post.Permalink,
						source:       feed.DisplayName(),
					}
				}
			}
		}
	}

	ranked := make([]string, 0, len(totals))
	for t := range totals {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if totals[ranked[i]] != totals[ranked[j]] {
			return totals[ranked[i]] > totals[ranked[j]]
		}
		return ranked[i] > ranked[j]
	})
	if len(ranked) > maxOut {
		ranked = ranked[:maxOut]
	}

	items := make([]model.RadarItem, 0, len(ranked))
	for _, t := range ranked {
		item := model.RadarItem{
			Ticker: t,
			Score:  math.Round(totals[t]*100) / 100,
		}
		if ev, ok := best[t]; ok {
			if ev.permalink != "" {
				link := ev.permalink
				item.BestPost = &link
			}
			if ev.source != "" {
				name := ev.source
				item.BestSource = &name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// engagement computes the log-dampened popularity proxy for one post:
// 1 + ln(1+score) + 0.5*ln(1+comments), clamped to engagementCap. Negative
// inputs count as zero.
func engagement(score, comments int) float64 {
	e := 1.0 + math.Log1p(math.Max(0, float64(score))) + 0.5*math.Log1p(math.Max(0, float64(comments)))
	return math.Min(e, engagementCap)
}
