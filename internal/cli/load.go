package cli

import (
	"fmt"
	"os"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// loadConfig assembles the effective configuration: defaults, then the config
// file, then SSS_* environment overrides for the common knobs.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment overrides (SSS_SUBREDDIT, SSS_TITLE_PREFIX, ...).
	if v := viper.GetString("subreddit"); v != "" {
		cfg.Scoreboard.Subreddit = v
	}
	if v := viper.GetString("title_prefix"); v != "" {
		cfg.Scoreboard.TitlePrefix = v
	}
	if v := viper.GetString("hub_url"); v != "" {
		cfg.Scoreboard.HubURL = v
	}
	if v := viper.GetInt("max_tickers"); v > 0 {
		cfg.Scoreboard.MaxTickers = v
	}
	if v := viper.GetInt("lookback_hours"); v > 0 {
		cfg.Scoreboard.LookbackHours = v
	}

	cfg.Normalize()
	return cfg, nil
}
