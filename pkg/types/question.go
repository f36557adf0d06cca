// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the question-engine pipeline.
// See docs/ARCHITECTURE.md § Data Structures.
package types

import (
	"fmt"
	"strings"
)

// Difficulty is the closed set of question difficulty levels.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// ParseDifficulty matches s against the difficulty set, case-insensitively.
// The second return value reports whether s named a known difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EASY":
		return Easy, true
	case "MEDIUM":
		return Medium, true
	case "HARD":
		return Hard, true
	}
	return "", false
}

// Timeframe tags a question row with the recency window it was reported in.
// Flat CSV sources carry no window, so every row defaults to TimeframeAll.
type Timeframe string

const (
	Timeframe30Days  Timeframe = "30_days"
	Timeframe3Months Timeframe = "3_months"
	Timeframe6Months Timeframe = "6_months"
	TimeframeOlder   Timeframe = "more_than_6m"
	TimeframeAll     Timeframe = "all"
)

// Question is the canonical, immutable form of one source row.
// Every field is populated by the normalizer, via a documented default when
// the source value is missing or malformed.
type Question struct {
	// ID is the source row identifier when it parses as an integer,
	// otherwise the row's 1-based position within its source.
	ID int `json:"id" yaml:"id"`

	// Slug is a URL-safe stable identifier derived from the row's URL,
	// title, or position, in that order of preference.
	Slug string `json:"slug" yaml:"slug"`

	// Title is the display title; falls back to the slug when blank.
	Title string `json:"title" yaml:"title"`

	// Difficulty is one of Easy, Medium, Hard. Unrecognized input
	// normalizes to Easy.
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`

	// AcceptanceRate and Frequency are percentages in [0,100], 0 when the
	// source value does not parse.
	AcceptanceRate float64 `json:"acceptance_rate" yaml:"acceptance_rate"`
	Frequency      float64 `json:"frequency" yaml:"frequency"`

	// AcceptanceRaw and FrequencyRaw preserve the source percent strings
	// verbatim for display; empty when the source omitted the value.
	AcceptanceRaw string `json:"acceptance_raw,omitempty" yaml:"acceptance_raw,omitempty"`
	FrequencyRaw  string `json:"frequency_raw,omitempty" yaml:"frequency_raw,omitempty"`

	// URL is the canonical absolute path of the problem page.
	URL string `json:"url" yaml:"url"`

	// Source identifies the originating input file (the organization).
	Source string `json:"source" yaml:"source"`

	// IsPremium is "Y" or "N".
	IsPremium string `json:"is_premium" yaml:"is_premium"`

	// Timeframe is the recency window tag; TimeframeAll for flat sources.
	Timeframe Timeframe `json:"timeframe" yaml:"timeframe"`

	// Topics lists the row's topic tags in source order. Duplicates within
	// one row are kept as given.
	Topics []string `json:"topics" yaml:"topics"`
}

// DisplayQuestion is the presentation projection of a Question: the
// canonical fields plus display-oriented string forms. Serving layers
// produce it on demand with Display; it is never stored.
type DisplayQuestion struct {
	Question `yaml:",inline"`

	// AcceptanceDisplay and FrequencyDisplay render the percentages with a
	// trailing percent sign, e.g. "34.5%". The source string is kept
	// verbatim when one was given.
	AcceptanceDisplay string `json:"acceptance_display" yaml:"acceptance_display"`
	FrequencyDisplay  string `json:"frequency_display" yaml:"frequency_display"`

	// TopicsDisplay joins the topic list with ", ".
	TopicsDisplay string `json:"topics_display" yaml:"topics_display"`
}

// Display returns the presentation projection of q.
func (q Question) Display() DisplayQuestion {
	return DisplayQuestion{
		Question:          q,
		AcceptanceDisplay: percentDisplay(q.AcceptanceRaw, q.AcceptanceRate),
		FrequencyDisplay:  percentDisplay(q.FrequencyRaw, q.Frequency),
		TopicsDisplay:     strings.Join(q.Topics, ", "),
	}
}

// percentDisplay prefers the source percent string, appending "%" when it
// lacks one, and falls back to formatting the numeric value.
func percentDisplay(raw string, numeric float64) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Sprintf("%.1f%%", numeric)
	}
	if strings.HasSuffix(raw, "%") {
		return raw
	}
	return raw + "%"
}
