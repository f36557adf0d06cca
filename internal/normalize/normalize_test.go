// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"reflect"
	"testing"

	"github.com/pdiddy/question-engine/pkg/types"
)

// --- Difficulty ---

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want types.Difficulty
	}{
		{"Easy", types.Easy},
		{"EASY", types.Easy},
		{"hard", types.Hard},
		{"Medium", types.Medium},
		{"mEdIuM", types.Medium},
		{"", types.Easy},
		{"Unknown", types.Easy},
		{"  hard  ", types.Hard},
	}
	for _, tt := range tests {
		if got := NormalizeDifficulty(tt.in); got != tt.want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// --- Percentages ---

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"34.5%", 34.5},
		{"34.5", 34.5},
		{"  72 %", 72},
		{"-1.5%", -1.5},
		{"", 0},
		{"n/a", 0},
		{"...", 0},
	}
	for _, tt := range tests {
		if got := ParsePercent(tt.in); got != tt.want {
			t.Errorf("ParsePercent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// --- Premium flag ---

func TestNormalizePremium(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Y", "Y"},
		{"y", "Y"},
		{"YES", "Y"},
		{"true", "Y"},
		{"N", "N"},
		{"no", "N"},
		{"", "N"},
		{"1", "N"},
	}
	for _, tt := range tests {
		if got := NormalizePremium(tt.in); got != tt.want {
			t.Errorf("NormalizePremium(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// --- Slug derivation ---

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		title    string
		source   string
		position int
		want     string
	}{
		{"from url", "https://leetcode.com/problems/two-sum/", "Two Sum", "acme", 1, "two-sum"},
		{"from relative url", "problems/merge-k-lists", "", "acme", 1, "merge-k-lists"},
		{"from title", "", "Two Sum", "acme", 1, "two-sum"},
		{"title with punctuation", "", "Best Time to Buy & Sell Stock II", "acme", 1, "best-time-to-buy-sell-stock-ii"},
		{"title collapses hyphens", "", "a -- b", "acme", 1, "a-b"},
		{"positional fallback", "", "", "acme", 3, "acme-3"},
		{"symbol-only title falls back", "", "???", "acme", 2, "acme-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveSlug(tt.url, tt.title, tt.source, tt.position); got != tt.want {
				t.Errorf("DeriveSlug() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveSlugDeterministic(t *testing.T) {
	a := DeriveSlug("", "Two Sum", "acme", 1)
	b := DeriveSlug("", "Two Sum", "acme", 1)
	if a != b {
		t.Errorf("slug derivation not deterministic: %q vs %q", a, b)
	}
}

// --- URL canonicalization ---

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		slug string
		want string
	}{
		{"absolute url keeps path", "https://leetcode.com/problems/two-sum/", "two-sum", "/problems/two-sum/"},
		{"relative gains slash", "problems/two-sum", "two-sum", "/problems/two-sum"},
		{"already rooted", "/problems/two-sum", "two-sum", "/problems/two-sum"},
		{"missing defaults to slug", "", "two-sum", "/problems/two-sum"},
		{"host-only absolute", "https://leetcode.com", "two-sum", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.url, tt.slug); got != tt.want {
				t.Errorf("NormalizeURL(%q, %q) = %q, want %q", tt.url, tt.slug, got, tt.want)
			}
		})
	}
}

// --- Topics ---

func TestSplitTopics(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Array, Hash Table", []string{"Array", "Hash Table"}},
		{" Array ,, Heap ", []string{"Array", "Heap"}},
		{"Array, Array", []string{"Array", "Array"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		if got := SplitTopics(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTopics(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// --- Normalize ---

func TestNormalizeFullRow(t *testing.T) {
	q := Normalize(Record{
		ID:         "42",
		Title:      "Two Sum",
		URL:        "https://leetcode.com/problems/two-sum/",
		Premium:    "N",
		Acceptance: "49.1%",
		Difficulty: "EASY",
		Frequency:  "93.2%",
		Topics:     "Array, Hash Table",
	}, "acme", 1)

	if q.ID != 42 {
		t.Errorf("ID = %d, want 42", q.ID)
	}
	if q.Slug != "two-sum" {
		t.Errorf("Slug = %q, want two-sum", q.Slug)
	}
	if q.Difficulty != types.Easy {
		t.Errorf("Difficulty = %q, want Easy", q.Difficulty)
	}
	if q.AcceptanceRate != 49.1 || q.Frequency != 93.2 {
		t.Errorf("percentages = %v/%v, want 49.1/93.2", q.AcceptanceRate, q.Frequency)
	}
	if q.AcceptanceRaw != "49.1%" || q.FrequencyRaw != "93.2%" {
		t.Errorf("raw percents = %q/%q, want source strings kept", q.AcceptanceRaw, q.FrequencyRaw)
	}
	if q.Source != "acme" {
		t.Errorf("Source = %q, want acme", q.Source)
	}
	if q.Timeframe != types.TimeframeAll {
		t.Errorf("Timeframe = %q, want all", q.Timeframe)
	}
	if !reflect.DeepEqual(q.Topics, []string{"Array", "Hash Table"}) {
		t.Errorf("Topics = %v", q.Topics)
	}
}

func TestNormalizeEmptyRowIsTotal(t *testing.T) {
	q := Normalize(Record{}, "acme", 7)

	if q.ID != 7 {
		t.Errorf("ID = %d, want positional 7", q.ID)
	}
	if q.Slug != "acme-7" {
		t.Errorf("Slug = %q, want acme-7", q.Slug)
	}
	if q.Title != "acme-7" {
		t.Errorf("Title = %q, want slug fallback", q.Title)
	}
	if q.Difficulty != types.Easy {
		t.Errorf("Difficulty = %q, want Easy", q.Difficulty)
	}
	if q.URL != "/problems/acme-7" {
		t.Errorf("URL = %q, want /problems/acme-7", q.URL)
	}
	if q.IsPremium != "N" {
		t.Errorf("IsPremium = %q, want N", q.IsPremium)
	}
	if len(q.Topics) != 0 {
		t.Errorf("Topics = %v, want empty", q.Topics)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := Record{Title: "Merge K Sorted Lists", Difficulty: "hard", Premium: "Y"}
	a := Normalize(raw, "globex", 4)
	b := Normalize(raw, "globex", 4)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Normalize not deterministic:\n%+v\n%+v", a, b)
	}
}
