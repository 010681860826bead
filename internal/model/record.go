package model

import (
	"strings"
	"time"
)

// Comment is one top-level comment from a discussion thread.
type Comment struct {
	Author    string `json:"author"`    // empty for deleted/anonymous accounts
	Body      string `json:"body"`      // plain text body
	Score     int    `json:"score"`     // net vote score
	Permalink string `json:"permalink"` // full URL to the comment
}

// HasAuthor reports whether the comment has a usable author identity.
// Deleted and anonymized accounts must never count toward uniqueness.
func (c Comment) HasAuthor() bool {
	return c.Author != ""
}

// Post is one submission from a feed.
type Post struct {
	CreatedAt   time.Time `json:"created_at"` // zero value when the source omitted it
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	Permalink   string    `json:"permalink"`
}

// Text returns the scannable text of the post: title and body, newline-joined.
func (p Post) Text() string {
	if p.Body == "" {
		return p.Title
	}
	return p.Title + "\n" + p.Body
}

// Thread identifies a located discussion thread.
type Thread struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

// FeedMode selects which listing of a source to read.
type FeedMode string

const (
	ModeHot FeedMode = "hot"
	ModeNew FeedMode = "new"
	ModeTop FeedMode = "top"
)

// ParseFeedMode normalizes a configured mode string. Unknown values fall
// back to ModeHot rather than failing the run.
func ParseFeedMode(s string) FeedMode {
	switch FeedMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeNew:
		return ModeNew
	case ModeTop:
		return ModeTop
	default:
		return ModeHot
	}
}
