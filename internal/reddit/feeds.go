package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	stdhtml "html"
	"net/url"
	"strings"
	"time"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/extract"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/score"
)

// listing mirrors the envelope of Reddit's public JSON API.
type listing struct {
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID           string  `json:"id"`
	CreatedUTC   float64 `json:"created_utc"`
	Title        string  `json:"title"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
	Score        int     `json:"score"`
	NumComments  int     `json:"num_comments"`
	Permalink    string  `json:"permalink"`
}

type commentData struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	BodyHTML  string `json:"body_html"`
	Score     int    `json:"score"`
	Permalink string `json:"permalink"`
}

// SubredditFeed serves one subreddit's listings. It satisfies the radar's
// feed-source contract.
type SubredditFeed struct {
	client *Client
	name   string
}

// Resolve returns the feed for a subreddit name. It never fails up front;
// a nonexistent subreddit surfaces as a fetch error.
func (c *Client) Resolve(name string) score.FeedSource {
	return &SubredditFeed{client: c, name: name}
}

// DisplayName returns the conventional "r/<name>" label.
func (f *SubredditFeed) DisplayName() string {
	return "r/" + f.name
}

// SupportsMode reports listing support. The public JSON API serves hot, new,
// and day-filtered top.
func (f *SubredditFeed) SupportsMode(mode model.FeedMode) bool {
	switch mode {
	case model.ModeHot, model.ModeNew, model.ModeTop:
		return true
	}
	return false
}

// Fetch returns up to limit posts from the given listing.
func (f *SubredditFeed) Fetch(ctx context.Context, mode model.FeedMode, limit int) ([]model.Post, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	q.Set("raw_json", "1")
	if mode == model.ModeTop {
		q.Set("t", "day")
	}
	endpoint := fmt.Sprintf("%s/r/%s/%s.json?%s", f.client.baseURL, url.PathEscape(f.name), mode, q.Encode())

	body, err := f.client.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var list listing
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	posts := make([]model.Post, 0, len(list.Data.Children))
	for _, child := range list.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var pd postData
		if err := json.Unmarshal(child.Data, &pd); err != nil {
			// One unreadable record must not abort the listing.
			continue
		}
		posts = append(posts, pd.toPost())
	}
	return posts, nil
}

func (pd postData) toPost() model.Post {
	post := model.Post{
		Title:       pd.Title,
		Body:        pd.Selftext,
		Score:       pd.Score,
		NumComments: pd.NumComments,
		Permalink:   absolutize(pd.Permalink),
	}
	if pd.CreatedUTC > 0 {
		sec := int64(pd.CreatedUTC)
		post.CreatedAt = time.Unix(sec, 0).UTC()
	}
	if post.Body == "" && pd.SelftextHTML != "" {
		post.Body = extract.VisibleText(stdhtml.UnescapeString(pd.SelftextHTML))
	}
	return post
}

// FindDailyThread locates the newest thread whose title starts with prefix,
// created within the lookback window. Returns nil when none qualifies.
func (c *Client) FindDailyThread(ctx context.Context, subreddit, titlePrefix string, lookbackHours int) (*model.Thread, error) {
	endpoint := fmt.Sprintf("%s/r/%s/new.json?limit=50&raw_json=1", c.baseURL, url.PathEscape(subreddit))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var list listing
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	cutoff := time.Now().UTC().Add(-time.Duration(lookbackHours) * time.Hour)
	for _, child := range list.Data.Children {
		var pd postData
		if err := json.Unmarshal(child.Data, &pd); err != nil {
			continue
		}
		created := time.Unix(int64(pd.CreatedUTC), 0).UTC()
		if created.Before(cutoff) {
			// Listings are newest-first; everything after this is older.
			break
		}
		if strings.HasPrefix(strings.TrimSpace(pd.Title), titlePrefix) {
			return &model.Thread{
				ID:        pd.ID,
				Title:     pd.Title,
				Permalink: absolutize(pd.Permalink),
			}, nil
		}
	}
	return nil, nil
}

// TopLevelComments returns the top-level comments of a thread. Nested
// replies are not crawled.
func (c *Client) TopLevelComments(ctx context.Context, thread model.Thread) ([]model.Comment, error) {
	endpoint := fmt.Sprintf("%s/comments/%s.json?limit=500&depth=1&raw_json=1", c.baseURL, url.PathEscape(thread.ID))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	// The comments endpoint returns a two-element array: the thread itself,
	// then its top-level comment listing.
	var envelope []listing
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	if len(envelope) < 2 {
		return nil, nil
	}

	var comments []model.Comment
	for _, child := range envelope[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var cd commentData
		if err := json.Unmarshal(child.Data, &cd); err != nil {
			continue
		}
		comments = append(comments, cd.toComment())
	}
	return comments, nil
}

func (cd commentData) toComment() model.Comment {
	comment := model.Comment{
		Author:    cd.Author,
		Body:      cd.Body,
		Score:     cd.Score,
		Permalink: absolutize(cd.Permalink),
	}
	if comment.Author == "[deleted]" {
		comment.Author = ""
	}
	if comment.Body == "" && cd.BodyHTML != "" {
		comment.Body = extract.VisibleText(stdhtml.UnescapeString(cd.BodyHTML))
	}
	return comment
}

func absolutize(permalink string) string {
	if permalink == "" || strings.HasPrefix(permalink, "http") {
		return permalink
	}
	return DefaultBaseURL + permalink
}
