package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/cache"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/extract"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/llm"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/reddit"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/score"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/util"
)

// Pipeline orchestrates one scoreboard run: locate the daily thread, fold its
// comments into the scoreboard, sweep the configured feeds into the radar,
// and assemble the report.
type Pipeline struct {
	client      *reddit.Client
	stopwords   extract.Stopwords
	commentator *llm.Commentator
	renderer    *Renderer
	config      *model.Config
}

// NewPipeline builds a pipeline from configuration. Extra client options are
// applied last, so callers can redirect the client (tests, mirrors).
func NewPipeline(cfg *model.Config, extra ...reddit.Option) (*Pipeline, error) {
	cfg.Normalize()

	stopwords := extract.DefaultStopwords()
	if cfg.Stopwords.File != "" {
		words, err := extract.LoadStopwordsFile(cfg.Stopwords.File)
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
		stopwords = stopwords.Merge(words...)
	}
	if len(cfg.Stopwords.Extra) > 0 {
		stopwords = stopwords.Merge(cfg.Stopwords.Extra...)
	}

	var opts []reddit.Option
	if cfg.Cache.Enabled {
		var store cache.Cache
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
		opts = append(opts, reddit.WithCache(store, cfg.Cache.TTL))
	}
	if cfg.HTTP.CheckRobots {
		opts = append(opts, reddit.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)))
	}
	if creds, ok := reddit.CredentialsFromEnv(); ok {
		opts = append(opts, reddit.WithCredentials(creds))
	}
	opts = append(opts, extra...)

	var commentator *llm.Commentator
	if cfg.LLM.Provider != "" {
		c, err := llm.NewCommentator(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			commentator = c
		}
	}

	return &Pipeline{
		client:      reddit.NewClient(cfg.HTTP, opts...),
		stopwords:   stopwords,
		commentator: commentator,
		renderer:    NewRenderer(cfg.Scoreboard.HubURL),
		config:      cfg,
	}, nil
}

// Run generates the report for one community.
func (p *Pipeline) Run(ctx context.Context, subreddit string) (*model.Report, error) {
	sb := p.config.Scoreboard

	thread, err := p.client.FindDailyThread(ctx, subreddit, sb.TitlePrefix, sb.LookbackHours)
	if err != nil {
		return nil, fmt.Errorf("find daily thread: %w", err)
	}
	if thread == nil {
		return nil, fmt.Errorf("no recent thread in r/%s starting with %q", subreddit, sb.TitlePrefix)
	}

	comments, err := p.client.TopLevelComments(ctx, *thread)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}

	items := score.Scoreboard(comments, p.stopwords, sb.MaxTickers)

	radar, err := score.Radar(ctx, p.client, p.config.Radar, p.stopwords, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("radar: %w", err)
	}

	report := &model.Report{
		Subreddit:   subreddit,
		Thread:      *thread,
		GeneratedAt: time.Now().UTC(),
		Scoreboard:  items,
		Radar:       radar,
	}

	// Commentary comes after ranking and never affects it.
	if p.commentator != nil {
		commentary, err := p.commentator.Generate(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: commentary generation failed: %v\n", err)
		} else {
			report.Commentary = commentary
		}
	}

	return report, nil
}

// Publish posts the rendered scoreboard as a top-level comment in the
// report's thread.
func (p *Pipeline) Publish(ctx context.Context, report *model.Report) error {
	body := p.renderer.CommentBody(report)
	if err := p.client.Reply(ctx, report.Thread, body); err != nil {
		return fmt.Errorf("post scoreboard comment: %w", err)
	}
	return nil
}

// Renderer exposes the pipeline's renderer for output handling.
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
