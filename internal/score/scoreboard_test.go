package score

import (
	"testing"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/extract"
	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

func TestScoreboard_UniqueAuthors(t *testing.T) {
	stop := extract.DefaultStopwords()
	comments := []model.Comment{
		{Author: "A", Body: "GME GME AMC", Score: 1},
		{Author: "B", Body: "GME", Score: 2},
	}

	items := Scoreboard(comments, stop, 12)
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Ticker != "GME" || items[0].UniqueAuthors != 2 {
		t.Errorf("Expected GME with 2 authors first, got %s with %d", items[0].Ticker, items[0].UniqueAuthors)
	}
	if items[1].Ticker != "AMC" || items[1].UniqueAuthors != 1 {
		t.Errorf("Expected AMC with 1 author second, got %s with %d", items[1].Ticker, items[1].UniqueAuthors)
	}
}

func TestScoreboard_AuthorCaseInsensitive(t *testing.T) {
	stop := extract.DefaultStopwords()
	comments := []model.Comment{
		{Author: "Trader", Body: "GME"},
		{Author: "TRADER", Body: "GME"},
		{Author: "trader", Body: "GME"},
	}

	items := Scoreboard(comments, stop, 12)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].UniqueAuthors != 1 {
		t.Errorf("Expected one distinct author, got %d", items[0].UniqueAuthors)
	}
}

func TestScoreboard_SkipsAnonymousAndEmpty(t *testing.T) {
	stop := extract.DefaultStopwords()
	// Deleted authors arrive as "" from the feed layer.
	comments := []model.Comment{
		{Author: "", Body: "GME"},
		{Author: "real", Body: ""},
		{Author: "real", Body: "AMC"},
	}

	items := Scoreboard(comments, stop, 12)
	if len(items) != 1 || items[0].Ticker != "AMC" {
		t.Fatalf("Expected only AMC to survive, got %+v", items)
	}
}

func TestScoreboard_TieBreakDescending(t *testing.T) {
	stop := extract.DefaultStopwords()
	comments := []model.Comment{
		{Author: "a", Body: "AMC GME NOK"},
	}

	items := Scoreboard(comments, stop, 12)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	// Equal author counts rank by ticker descending.
	want := []string{"NOK", "GME", "AMC"}
	for i, w := range want {
		if items[i].Ticker != w {
			t.Errorf("Position %d: expected %s, got %s", i, w, items[i].Ticker)
		}
	}
}

func TestScoreboard_MaxTickers(t *testing.T) {
	stop := extract.DefaultStopwords()
	comments := []model.Comment{
		{Author: "a", Body: "AMC GME NOK BB TSLA"},
	}

	items := Scoreboard(comments, stop, 2)
	if len(items) != 2 {
		t.Fatalf("Expected truncation to 2 items, got %d", len(items))
	}
}

func TestScoreboard_BestCommentEvidence(t *testing.T) {
	stop := extract.DefaultStopwords()
	comments := []model.Comment{
		{Author: "a", Body: "GME", Score: 5, Permalink: "/c/low"},
		{Author: "b", Body: "GME", Score: 9, Permalink: "/c/high"},
		{Author: "c", Body: "GME", Score: 9, Permalink: "/c/late"},
	}

	items := Scoreboard(comments, stop, 12)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].BestComment == nil {
		t.Fatal("Expected best-comment evidence")
	}
	// Strict greater-than: the first comment at the top score keeps the slot.
	if *items[0].BestComment != "/c/high" {
		t.Errorf("Expected /c/high, got %s", *items[0].BestComment)
	}
}

func TestScoreboard_NoEvidenceWithoutPermalink(t *testing.T) {
	stop := extract.DefaultStopwords()
	comments := []model.Comment{
		{Author: "a", Body: "GME", Score: 3},
	}

	items := Scoreboard(comments, stop, 12)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].BestComment != nil {
		t.Errorf("Expected nil best comment, got %s", *items[0].BestComment)
	}
}

func TestScoreboard_Empty(t *testing.T) {
	stop := extract.DefaultStopwords()

	if items := Scoreboard(nil, stop, 12); len(items) != 0 {
		t.Errorf("Expected empty scoreboard, got %+v", items)
	}
}
