package worker

import (
	"context"
	"sort"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

// Runner generates a scoreboard report for one community.
type Runner interface {
	Run(ctx context.Context, subreddit string) (*model.Report, error)
}

// ReportJob is one community report generation.
type ReportJob struct {
	Subreddit string
	Runner    Runner
}

// ReportResult is the outcome of a ReportJob.
type ReportResult struct {
	Subreddit string
	Report    *model.Report
	Error     error
}

// Err implements Result.
func (r *ReportResult) Err() error {
	return r.Error
}

// Execute runs the report.
func (j *ReportJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.Run(ctx, j.Subreddit)
	return &ReportResult{
		Subreddit: j.Subreddit,
		Report:    report,
		Error:     err,
	}
}

// RunReports generates reports for the given communities concurrently and
// returns results sorted by community name. Each run owns its tables, so
// concurrent runs never share state.
func RunReports(ctx context.Context, runner Runner, subreddits []string, workers int) []*ReportResult {
	pool := NewPoolContext(ctx, workers)
	pool.Start()

	for _, sub := range subreddits {
		pool.Submit(&ReportJob{Subreddit: sub, Runner: runner})
	}

	raw := pool.Wait()
	results := make([]*ReportResult, 0, len(raw))
	for _, r := range raw {
		if rr, ok := r.(*ReportResult); ok {
			results = append(results, rr)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Subreddit < results[j].Subreddit
	})
	return results
}
