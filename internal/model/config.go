package model

import (
	"strings"
	"time"
)

// Default values for per-source radar configuration. Malformed or missing
// fields fall back to these rather than failing the run.
const (
	DefaultSourceWeight   = 0.35
	DefaultSourceMode     = "hot"
	DefaultSourceMaxPosts = 40
	DefaultLookbackHours  = 24

	DefaultRadarMaxTickers      = 8
	DefaultScoreboardMaxTickers = 12
	DefaultThreadLookbackHours  = 48
)

// Config is the complete runtime configuration.
type Config struct {
	Scoreboard ScoreboardConfig `yaml:"scoreboard"`
	Radar      RadarConfig      `yaml:"radar"`
	Stopwords  StopwordsConfig  `yaml:"stopwords"`
	HTTP       HTTPConfig       `yaml:"http"`
	Cache      CacheConfig      `yaml:"cache"`
	LLM        LLMConfig        `yaml:"llm"`
	Output     OutputConfig     `yaml:"output"`
}

// ScoreboardConfig drives the single-thread unique-author scoreboard.
type ScoreboardConfig struct {
	Subreddit     string `yaml:"subreddit"`
	TitlePrefix   string `yaml:"title_prefix"`
	HubURL        string `yaml:"hub_url"`
	LookbackHours int    `yaml:"lookback_hours"` // thread discovery window
	MaxTickers    int    `yaml:"max_tickers"`
}

// RadarConfig drives the cross-source engagement radar.
type RadarConfig struct {
	Enabled    bool           `yaml:"enabled"` // global kill-switch for the whole radar
	MaxTickers int            `yaml:"max_tickers"`
	Sources    []SourceConfig `yaml:"sources"`
}

// SourceConfig configures one weighted feed.
type SourceConfig struct {
	Name          string  `yaml:"name"` // required; blank entries are skipped
	Weight        float64 `yaml:"weight"`
	Mode          string  `yaml:"mode"` // hot, new, top
	MaxPosts      int     `yaml:"max_posts"`
	LookbackHours int     `yaml:"lookback_hours"`
}

// Normalized returns a copy of s with defaults applied to missing or
// malformed fields. The name is trimmed but never defaulted; callers skip
// sources whose normalized name is empty.
func (s SourceConfig) Normalized() SourceConfig {
	out := s
	out.Name = strings.TrimSpace(s.Name)
	if out.Weight <= 0 {
		out.Weight = DefaultSourceWeight
	}
	out.Mode = string(ParseFeedMode(s.Mode))
	if out.MaxPosts <= 0 {
		out.MaxPosts = DefaultSourceMaxPosts
	}
	if out.LookbackHours <= 0 {
		out.LookbackHours = DefaultLookbackHours
	}
	return out
}

// StopwordsConfig extends the built-in stopword set.
type StopwordsConfig struct {
	File  string   `yaml:"file,omitempty"`  // optional newline-delimited extra stopwords
	Extra []string `yaml:"extra,omitempty"` // inline extra stopwords
}

// HTTPConfig configures the feed client.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	Proxy         string        `yaml:"proxy,omitempty"` // optional; falls back to HTTPS_PROXY/HTTP_PROXY
	RatePerSecond float64       `yaml:"rate_per_second"`
	CheckRobots   bool          `yaml:"check_robots"`
}

// CacheConfig configures feed response caching.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir,omitempty"` // empty disables the disk tier
	TTL     time.Duration `yaml:"ttl"`
}

// LLMConfig configures the optional report commentary.
type LLMConfig struct {
	Provider  string `yaml:"provider,omitempty"` // openai, ollama, or empty (disabled)
	Model     string `yaml:"model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"` // prefer OPENAI_API_KEY env
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout,omitempty"` // seconds
	MaxTokens int    `yaml:"max_tokens,omitempty"`
}

// OutputConfig drives rendering.
type OutputConfig struct {
	Verbose  bool   `yaml:"verbose"`
	JSONPath string `yaml:"json_path,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoreboard: ScoreboardConfig{
			Subreddit:     "ShortSqueezeStonks",
			TitlePrefix:   "Daily Squeeze Scanner + Discussion",
			HubURL:        "https://www.reddit.com/r/ShortSqueezeStonks",
			LookbackHours: DefaultThreadLookbackHours,
			MaxTickers:    DefaultScoreboardMaxTickers,
		},
		Radar: RadarConfig{
			Enabled:    false,
			MaxTickers: DefaultRadarMaxTickers,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "sss-scoreboard/0.1 (+https://github.com/SSSScoreboardBot/sss-scoreboard-bot-simple)",
			MaxBodyBytes:  4_000_000,
			RatePerSecond: 1,
			CheckRobots:   true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Output: OutputConfig{},
	}
}

// Normalize applies defaults to zero or malformed fields in place.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Scoreboard.LookbackHours <= 0 {
		c.Scoreboard.LookbackHours = def.Scoreboard.LookbackHours
	}
	if c.Scoreboard.MaxTickers <= 0 {
		c.Scoreboard.MaxTickers = def.Scoreboard.MaxTickers
	}
	if c.Radar.MaxTickers <= 0 {
		c.Radar.MaxTickers = def.Radar.MaxTickers
	}
	for i, s := range c.Radar.Sources {
		c.Radar.Sources[i] = s.Normalized()
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = def.HTTP.Timeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = def.HTTP.UserAgent
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = def.HTTP.MaxBodyBytes
	}
	if c.HTTP.RatePerSecond <= 0 {
		c.HTTP.RatePerSecond = def.HTTP.RatePerSecond
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = def.Cache.TTL
	}
}
