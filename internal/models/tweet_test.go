// ABOUTME: Tests for Tweet helpers and stable ID derivation
// ABOUTME: Verifies date formatting and ID determinism
package models

import (
	"testing"
	"time"
)

func TestTweet_DateString(t *testing.T) {
	tweet := Tweet{Date: time.Date(2021, 1, 1, 15, 30, 0, 0, time.UTC)}
	if got := tweet.DateString(); got != "2021-01-01" {
		t.Errorf("DateString() = %q, want %q", got, "2021-01-01")
	}
}

func TestNewTweetID_Deterministic(t *testing.T) {
	date := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	a := NewTweetID(0, "A", date, "I love BTC")
	b := NewTweetID(0, "A", date, "I love BTC")
	if a != b {
		t.Errorf("NewTweetID() not deterministic: %q != %q", a, b)
	}
	if len(a) != 36 {
		t.Errorf("NewTweetID() = %q, want UUID string", a)
	}
}

func TestNewTweetID_Distinct(t *testing.T) {
	date := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	base := NewTweetID(0, "A", date, "hi")

	variants := map[string]string{
		"position":  NewTweetID(1, "A", date, "hi"),
		"celebrity": NewTweetID(0, "B", date, "hi"),
		"date":      NewTweetID(0, "A", date.AddDate(0, 0, 1), "hi"),
		"text":      NewTweetID(0, "A", date, "hello"),
	}
	for field, id := range variants {
		if id == base {
			t.Errorf("changing %s did not change the ID", field)
		}
	}
}

func TestSummarizeCelebrities(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC) }
	tweets := []Tweet{
		{Celebrity: "B", Date: day(5)},
		{Celebrity: "A", Date: day(3)},
		{Celebrity: "B", Date: day(1)},
		{Celebrity: "A", Date: day(4)},
		{Celebrity: "B", Date: day(9)},
	}

	got := SummarizeCelebrities(tweets)
	if len(got) != 2 {
		t.Fatalf("len(SummarizeCelebrities()) = %d, want 2", len(got))
	}

	want := []CelebritySummary{
		{Celebrity: "A", TweetCount: 2, FirstDate: day(3), LastDate: day(4)},
		{Celebrity: "B", TweetCount: 3, FirstDate: day(1), LastDate: day(9)},
	}
	for i := range want {
		if got[i].Celebrity != want[i].Celebrity || got[i].TweetCount != want[i].TweetCount {
			t.Errorf("summary[%d] = %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].FirstDate.Equal(want[i].FirstDate) || !got[i].LastDate.Equal(want[i].LastDate) {
			t.Errorf("summary[%d] dates = %v..%v, want %v..%v", i, got[i].FirstDate, got[i].LastDate, want[i].FirstDate, want[i].LastDate)
		}
	}
}

func TestSummarizeCelebrities_Empty(t *testing.T) {
	if got := SummarizeCelebrities(nil); len(got) != 0 {
		t.Errorf("SummarizeCelebrities(nil) = %v, want empty", got)
	}
}

func TestValidateIndex(t *testing.T) {
	good := func() (IndexMeta, []IndexedTweet) {
		meta := IndexMeta{EmbeddingModel: "m", Dimension: 2, Count: 2}
		tweets := []IndexedTweet{
			{Tweet: Tweet{ID: "a", Position: 0}, Vector: []float64{1, 0}},
			{Tweet: Tweet{ID: "b", Position: 1}, Vector: []float64{0, 1}},
		}
		return meta, tweets
	}

	meta, tweets := good()
	if err := ValidateIndex(meta, tweets); err != nil {
		t.Fatalf("ValidateIndex() on valid build = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*IndexMeta, []IndexedTweet) []IndexedTweet
	}{
		{"empty", func(m *IndexMeta, ts []IndexedTweet) []IndexedTweet { m.Count = 0; return nil }},
		{"count mismatch", func(m *IndexMeta, ts []IndexedTweet) []IndexedTweet { m.Count = 3; return ts }},
		{"zero dimension", func(m *IndexMeta, ts []IndexedTweet) []IndexedTweet { m.Dimension = 0; return ts }},
		{"missing id", func(m *IndexMeta, ts []IndexedTweet) []IndexedTweet { ts[1].ID = ""; return ts }},
		{"duplicate id", func(m *IndexMeta, ts []IndexedTweet) []IndexedTweet { ts[1].ID = "a"; return ts }},
		{"position gap", func(m *IndexMeta, ts []IndexedTweet) []IndexedTweet { ts[1].Position = 5; return ts }},
		{"wrong vector dimension", func(m *IndexMeta, ts []IndexedTweet) []IndexedTweet {
			ts[0].Vector = []float64{1, 0, 0}
			return ts
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, tweets := good()
			tweets = tt.mutate(&meta, tweets)
			if err := ValidateIndex(meta, tweets); err == nil {
				t.Error("ValidateIndex() should fail")
			}
		})
	}
}

func TestFilterByCelebrity(t *testing.T) {
	tweets := []IndexedTweet{
		{Tweet: Tweet{ID: "1", Position: 0, Celebrity: "A"}},
		{Tweet: Tweet{ID: "2", Position: 1, Celebrity: "B"}},
		{Tweet: Tweet{ID: "3", Position: 2, Celebrity: "A"}},
		{Tweet: Tweet{ID: "4", Position: 3, Celebrity: "A "}},
	}

	tests := []struct {
		celebrity string
		wantIDs   []string
	}{
		{"A", []string{"1", "3"}},
		{"A ", []string{"4"}},
		{"a", nil},
		{"Nobody", nil},
	}

	for _, tt := range tests {
		got := FilterByCelebrity(tweets, tt.celebrity)
		if len(got) != len(tt.wantIDs) {
			t.Errorf("FilterByCelebrity(%q) returned %d tweets, want %d", tt.celebrity, len(got), len(tt.wantIDs))
			continue
		}
		for i, id := range tt.wantIDs {
			if got[i].ID != id {
				t.Errorf("FilterByCelebrity(%q)[%d].ID = %s, want %s", tt.celebrity, i, got[i].ID, id)
			}
		}
	}
}
