package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/pipeline"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	subsFile     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [community]...",
	Short: "Generate scoreboards for multiple communities in parallel",
	Long: `Batch runs the daily scoreboard for several communities at once.
Communities come from the arguments, from --file (one name per line), or
from the config file's radar sources. Each run is independent; a failing
community does not abort the others. Batch never posts.

Example:
  sss-scoreboard batch ShortSqueezeStonks pennystocks
  sss-scoreboard batch --file communities.txt --concurrency 4`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 2, "number of concurrent workers")
	batchCmd.Flags().StringVar(&subsFile, "file", "", "file with community names, one per line")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	subs, err := batchCommunities(args, subsFile, cfg)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return fmt.Errorf("no communities to process (pass names, --file, or configure radar sources)")
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Processing %d communities with %d workers\n\n", len(subs), concurrency)

	results := worker.RunReports(ctx, p, subs, concurrency)

	failed := 0
	for _, r := range results {
		if r.Err() != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ r/%s: %v\n", r.Subreddit, r.Err())
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ r/%s: %d scoreboard entries\n", r.Subreddit, len(r.Report.Scoreboard))
		p.Renderer().WriteSummary(os.Stdout, r.Report)
		fmt.Println()
	}

	if failed == len(results) {
		return fmt.Errorf("all %d communities failed", failed)
	}
	return nil
}

// batchCommunities resolves the community list: explicit args win, then the
// file, then the configured radar sources.
func batchCommunities(args []string, file string, cfg *model.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open communities file: %w", err)
		}
		defer func() { _ = f.Close() }()

		var subs []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			subs = append(subs, line)
		}
		return subs, scanner.Err()
	}

	var subs []string
	for _, src := range cfg.Radar.Sources {
		if name := strings.TrimSpace(src.Name); name != "" {
			subs = append(subs, name)
		}
	}
	return subs, nil
}
