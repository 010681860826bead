package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

type stubRunner struct {
	fail map[string]bool
}

func (r *stubRunner) Run(ctx context.Context, subreddit string) (*model.Report, error) {
	if r.fail[subreddit] {
		return nil, errors.New("boom")
	}
	return &model.Report{Subreddit: subreddit}, nil
}

func TestRunReports_AllSucceed(t *testing.T) {
	runner := &stubRunner{}
	results := RunReports(context.Background(), runner, []string{"stocks", "pennystocks", "options"}, 2)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// Sorted by community name regardless of completion order.
	want := []string{"options", "pennystocks", "stocks"}
	for i, r := range results {
		if r.Subreddit != want[i] {
			t.Errorf("result %d: expected %s, got %s", i, want[i], r.Subreddit)
		}
		if r.Err() != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err())
		}
		if r.Report == nil || r.Report.Subreddit != r.Subreddit {
			t.Errorf("result %d: report not attached", i)
		}
	}
}

func TestRunReports_FailureIsLocal(t *testing.T) {
	runner := &stubRunner{fail: map[string]bool{"pennystocks": true}}
	results := RunReports(context.Background(), runner, []string{"stocks", "pennystocks"}, 2)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		failed := r.Err() != nil
		if failed != runner.fail[r.Subreddit] {
			t.Errorf("%s: unexpected error state %v", r.Subreddit, r.Err())
		}
	}
}
