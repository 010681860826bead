package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/cache"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

func testConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:       5 * time.Second,
		UserAgent:     "scoreboard-test/1.0",
		MaxBodyBytes:  1 << 20,
		RatePerSecond: 1000,
	}
}

func noSleep(t *testing.T) {
	t.Helper()
	orig := sleepFunc
	sleepFunc = func(time.Duration) {}
	t.Cleanup(func() { sleepFunc = orig })
}

const hotListing = `{
	"data": {"children": [
		{"kind": "t3", "data": {"id": "p1", "created_utc": %d, "title": "GME squeeze watch", "selftext": "it moves", "score": 42, "num_comments": 7, "permalink": "/r/stocks/comments/p1/"}},
		{"kind": "t3", "data": {"id": "p2", "created_utc": %d, "title": "AMC update", "selftext": "", "selftext_html": "&lt;p&gt;still holding&lt;/p&gt;", "score": 5, "num_comments": 1, "permalink": "/r/stocks/comments/p2/"}},
		{"kind": "t5", "data": {"id": "sub"}}
	]}
}`

func TestSubredditFeed_Fetch(t *testing.T) {
	now := time.Now().Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/stocks/hot.json" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "25" {
			t.Errorf("Expected limit=25, got %s", r.URL.Query().Get("limit"))
		}
		if ua := r.Header.Get("User-Agent"); ua != "scoreboard-test/1.0" {
			t.Errorf("Expected test user agent, got %q", ua)
		}
		fmt.Fprintf(w, hotListing, now, now)
	}))
	defer srv.Close()

	client := NewClient(testConfig(), WithBaseURL(srv.URL))
	feed := client.Resolve("stocks")

	if got := feed.DisplayName(); got != "r/stocks" {
		t.Errorf("Expected r/stocks, got %q", got)
	}

	posts, err := feed.Fetch(context.Background(), model.ModeHot, 25)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts (non-t3 skipped), got %d", len(posts))
	}
	if posts[0].Title != "GME squeeze watch" || posts[0].Score != 42 || posts[0].NumComments != 7 {
		t.Errorf("Unexpected first post: %+v", posts[0])
	}
	if posts[0].CreatedAt.IsZero() {
		t.Error("Expected created_utc to populate CreatedAt")
	}
	if !strings.HasPrefix(posts[0].Permalink, "https://www.reddit.com/") {
		t.Errorf("Expected absolutized permalink, got %q", posts[0].Permalink)
	}
	// posts[1] carried only an HTML body.
	if posts[1].Body != "still holding" {
		t.Errorf("Expected HTML body recovered as text, got %q", posts[1].Body)
	}
}

func TestSubredditFeed_TopModeAddsWindow(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		fmt.Fprint(w, `{"data":{"children":[]}}`)
	}))
	defer srv.Close()

	client := NewClient(testConfig(), WithBaseURL(srv.URL))
	if _, err := client.Resolve("stocks").Fetch(context.Background(), model.ModeTop, 10); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(query, "t=day") {
		t.Errorf("Expected top listing to request t=day, got %q", query)
	}
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	noSleep(t)

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"data":{"children":[]}}`)
	}))
	defer srv.Close()

	client := NewClient(testConfig(), WithBaseURL(srv.URL))
	_, err := client.Resolve("stocks").Fetch(context.Background(), model.ModeHot, 10)
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	noSleep(t)

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testConfig(), WithBaseURL(srv.URL))
	_, err := client.Resolve("nope").Fetch(context.Background(), model.ModeHot, 10)
	if err == nil {
		t.Fatal("Expected error for 404")
	}
	if calls != 1 {
		t.Errorf("Expected single attempt for 404, got %d", calls)
	}
}

func TestClient_CacheServesRepeatRequests(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"data":{"children":[]}}`)
	}))
	defer srv.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient(testConfig(), WithBaseURL(srv.URL), WithCache(store, time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := client.Resolve("stocks").Fetch(context.Background(), model.ModeHot, 10); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 upstream call with cache enabled, got %d", calls)
	}
}

func TestFindDailyThread(t *testing.T) {
	now := time.Now().Unix()
	old := time.Now().Add(-72 * time.Hour).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/ShortSqueezeStonks/new.json" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		fmt.Fprintf(w, `{
			"data": {"children": [
				{"kind": "t3", "data": {"id": "x1", "created_utc": %d, "title": "Unrelated chatter", "permalink": "/p/x1/"}},
				{"kind": "t3", "data": {"id": "x2", "created_utc": %d, "title": "Daily Squeeze Scanner + Discussion - Aug 31", "permalink": "/p/x2/"}},
				{"kind": "t3", "data": {"id": "x3", "created_utc": %d, "title": "Daily Squeeze Scanner + Discussion - Aug 28", "permalink": "/p/x3/"}}
			]}
		}`, now, now, old)
	}))
	defer srv.Close()

	client := NewClient(testConfig(), WithBaseURL(srv.URL))
	thread, err := client.FindDailyThread(context.Background(), "ShortSqueezeStonks", "Daily Squeeze Scanner + Discussion", 48)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if thread == nil {
		t.Fatal("Expected a thread")
	}
	if thread.ID != "x2" {
		t.Errorf("Expected newest matching thread x2, got %s", thread.ID)
	}
	if thread.Permalink != "https://www.reddit.com/p/x2/" {
		t.Errorf("Expected absolutized permalink, got %q", thread.Permalink)
	}
}

func TestFindDailyThread_NoneWithinLookback(t *testing.T) {
	old := time.Now().Add(-100 * time.Hour).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"data": {"children": [
				{"kind": "t3", "data": {"id": "x1", "created_utc": %d, "title": "Daily Squeeze Scanner + Discussion", "permalink": "/p/x1/"}}
			]}
		}`, old)
	}))
	defer srv.Close()

	client := NewClient(testConfig(), WithBaseURL(srv.URL))
	thread, err := client.FindDailyThread(context.Background(), "ShortSqueezeStonks", "Daily Squeeze Scanner + Discussion", 48)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if thread != nil {
		t.Errorf("Expected nil thread outside the lookback window, got %+v", thread)
	}
}

func TestTopLevelComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comments/x2.json" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"data": {"children": [{"kind": "t3", "data": {"id": "x2"}}]}},
			{"data": {"children": [
				{"kind": "t1", "data": {"author": "alice", "body": "GME to the moon", "score": 12, "permalink": "/c/1/"}},
				{"kind": "t1", "data": {"author": "[deleted]", "body": "AMC", "score": 1, "permalink": "/c/2/"}},
				{"kind": "more", "data": {}}
			]}}
		]`)
	}))
	defer srv.Close()

	client := NewClient(testConfig(), WithBaseURL(srv.URL))
	comments, err := client.TopLevelComments(context.Background(), model.Thread{ID: "x2"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("Expected 2 comments (more-stub skipped), got %d", len(comments))
	}
	if comments[0].Author != "alice" || comments[0].Score != 12 {
		t.Errorf("Unexpected first comment: %+v", comments[0])
	}
	if comments[1].Author != "" {
		t.Errorf("Expected [deleted] author normalized to empty, got %q", comments[1].Author)
	}
}

func TestReply_RequiresCredentials(t *testing.T) {
	client := NewClient(testConfig())
	err := client.Reply(context.Background(), model.Thread{ID: "x2"}, "body")
	if err == nil {
		t.Fatal("Expected error without credentials")
	}
	if !strings.Contains(err.Error(), "credentials") {
		t.Errorf("Expected credentials error, got %v", err)
	}
}

func TestReply_PostsComment(t *testing.T) {
	var gotToken, gotThing string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/access_token":
			fmt.Fprint(w, `{"access_token": "tok", "expires_in": 3600}`)
		case "/api/comment":
			gotToken = r.Header.Get("Authorization")
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			gotThing = r.PostFormValue("thing_id")
			fmt.Fprint(w, `{"json": {"errors": []}}`)
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	creds := Credentials{ClientID: "id", ClientSecret: "secret", Username: "bot", Password: "pw"}
	client := NewClient(testConfig(), WithBaseURL(srv.URL), WithCredentials(creds))

	if err := client.Reply(context.Background(), model.Thread{ID: "x2"}, "scoreboard"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotToken != "Bearer tok" {
		t.Errorf("Expected bearer token, got %q", gotToken)
	}
	if gotThing != "t3_x2" {
		t.Errorf("Expected thing_id t3_x2, got %q", gotThing)
	}
}
