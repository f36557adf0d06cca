// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw tabular rows into canonical Questions.
// Normalization is total: every malformed or missing field degrades to a
// documented default instead of failing, so one bad row never poisons a
// corpus build.
// See docs/ARCHITECTURE.md § Normalization.
package normalize

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/question-engine/pkg/types"
)

// Record holds the raw string fields of one source row, already mapped by
// column name. Absent columns are empty strings.
type Record struct {
	ID         string
	Title      string
	URL        string
	Premium    string
	Acceptance string
	Difficulty string
	Frequency  string
	Topics     string
}

// Normalize converts one raw row into a canonical Question. source is the
// originating file's base name; position is the row's 1-based position
// within that file. Normalize never fails.
func Normalize(raw Record, source string, position int) types.Question {
	slug := DeriveSlug(raw.URL, raw.Title, source, position)

	id, err := strconv.Atoi(strings.TrimSpace(raw.ID))
	if err != nil {
		id = position
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = slug
	}

	return types.Question{
		ID:             id,
		Slug:           slug,
		Title:          title,
		Difficulty:     NormalizeDifficulty(raw.Difficulty),
		AcceptanceRate: ParsePercent(raw.Acceptance),
		Frequency:      ParsePercent(raw.Frequency),
		AcceptanceRaw:  strings.TrimSpace(raw.Acceptance),
		FrequencyRaw:   strings.TrimSpace(raw.Frequency),
		URL:            NormalizeURL(raw.URL, slug),
		Source:         source,
		IsPremium:      NormalizePremium(raw.Premium),
		Timeframe:      types.TimeframeAll,
		Topics:         SplitTopics(raw.Topics),
	}
}

// NormalizeDifficulty maps a source difficulty string onto the closed set,
// case-insensitively. Unrecognized or missing values default to Easy.
func NormalizeDifficulty(value string) types.Difficulty {
	if d, ok := types.ParseDifficulty(value); ok {
		return d
	}
	return types.Easy
}

// ParsePercent extracts a numeric percentage from a source string by
// stripping everything except digits, '.', '+', and '-'. Unparsable or
// missing values yield 0.
func ParsePercent(value string) float64 {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' || r == '.' || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// NormalizePremium maps a source premium flag onto "Y" or "N". Any of
// Y, YES, TRUE (case-insensitive) is premium; everything else is not.
func NormalizePremium(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "Y", "YES", "TRUE":
		return "Y"
	}
	return "N"
}

// DeriveSlug produces the stable URL-safe identifier for a row. It prefers
// the last path segment of rawURL, then a slugified title, then the
// positional fallback "{source}-{position}".
func DeriveSlug(rawURL, title, source string, position int) string {
	if segs := splitPath(rawURL); len(segs) > 0 {
		return segs[len(segs)-1]
	}

	if s := slugify(title); s != "" {
		return s
	}

	return source + "-" + strconv.Itoa(position)
}

// splitPath returns the non-empty segments of a URL or path string.
func splitPath(rawURL string) []string {
	var segs []string
	for _, s := range strings.Split(strings.TrimSpace(rawURL), "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// slugify lowercases title, drops characters outside [a-z0-9 space -],
// hyphenates whitespace runs, and collapses repeated hyphens.
func slugify(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
	}

	hyphenated := strings.Join(strings.Fields(b.String()), "-")

	for strings.Contains(hyphenated, "--") {
		hyphenated = strings.ReplaceAll(hyphenated, "--", "-")
	}
	return hyphenated
}

// NormalizeURL canonicalizes a source URL to an absolute path. Full URLs
// keep only their path component; relative values gain a leading slash;
// a missing value defaults to "/problems/{slug}".
func NormalizeURL(rawURL, slug string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "/problems/" + slug
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if u, err := url.Parse(trimmed); err == nil {
			if u.Path == "" {
				return "/"
			}
			return u.Path
		}
		// Unparsable absolute URL: fall through to path handling below.
	}

	if strings.HasPrefix(trimmed, "/") {
		return trimmed
	}
	return "/" + trimmed
}

// SplitTopics splits a comma-delimited topics field into trimmed, non-empty
// strings, preserving source order. Duplicates within one row are kept.
func SplitTopics(value string) []string {
	var topics []string
	for _, t := range strings.Split(value, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}
