package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	reportSub     string
	outJSON       string
	post          bool
	noCache       bool
	noRadar       bool
	reportTimeout time.Duration
	llmProvider   string
	llmModel      string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the daily scoreboard for one community",
	Long: `Report locates the newest daily scanner thread, ranks the tickers
mentioned in its top-level comments by unique authors, runs the optional
cross-subreddit radar, and prints the comment that would be posted.

Nothing is published unless --post is given.

Example:
  sss-scoreboard report
  sss-scoreboard report --sub ShortSqueezeStonks --json report.json
  sss-scoreboard report --post
  sss-scoreboard report --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportSub, "sub", "", "subreddit (default from config)")
	reportCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	reportCmd.Flags().BoolVar(&post, "post", false, "post the scoreboard comment (default: dry run)")
	reportCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	reportCmd.Flags().BoolVar(&noRadar, "no-radar", false, "skip the cross-subreddit radar")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 2*time.Minute, "overall run timeout")

	reportCmd.Flags().StringVar(&llmProvider, "llm", "", "enable LLM commentary (openai, ollama)")
	reportCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reportSub != "" {
		cfg.Scoreboard.Subreddit = reportSub
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noRadar {
		cfg.Radar.Enabled = false
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Community: r/%s\n", cfg.Scoreboard.Subreddit)
		fmt.Fprintf(os.Stderr, "Thread prefix: %q\n", cfg.Scoreboard.TitlePrefix)
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.Run(ctx, cfg.Scoreboard.Subreddit)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Scoreboard entries: %d\n", len(report.Scoreboard))
		fmt.Fprintf(os.Stderr, "✓ Radar entries: %d\n", len(report.Radar))
		fmt.Fprintln(os.Stderr)
	}

	p.Renderer().WriteSummary(os.Stdout, report)

	if outJSON != "" {
		if err := p.Renderer().RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if !post {
		fmt.Println("\nDry run: not posting. Use --post to publish.")
		return nil
	}

	if err := p.Publish(ctx, report); err != nil {
		return err
	}
	fmt.Println("\nPosted scoreboard comment successfully.")
	return nil
}
