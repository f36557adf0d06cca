// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query answers multi-facet filter and search queries over a built
// corpus. Every filter is a pure narrowing step: facets combine with AND,
// values within one facet with OR (except topics, which require every
// requested tag). Filtering never errors; a facet value outside its enum
// simply matches nothing.
// See docs/ARCHITECTURE.md § Query Engine.
package query

import (
	"strings"

	"github.com/pdiddy/question-engine/internal/corpus"
	"github.com/pdiddy/question-engine/pkg/types"
)

// Filters holds one query's facet constraints. Every field is optional;
// a zero field places no constraint on its facet.
type Filters struct {
	// Sources keeps questions whose source is in the set.
	Sources []string

	// Difficulties keeps questions whose difficulty is in the set,
	// matched case-insensitively. Unrecognized values match nothing.
	Difficulties []string

	// Topics keeps questions carrying every listed topic
	// (case-insensitive, AND semantics).
	Topics []string

	// Timeframes keeps questions matching any listed timeframe tag. The
	// facet is a no-op when the corpus is timeframe-homogeneous or the
	// request includes "all".
	Timeframes []string

	// Premium, when set, keeps only premium (true) or free (false) rows.
	Premium *bool

	// Search is a free-text query: whitespace-delimited tokens, each of
	// which must substring-match the title, the source, or a topic.
	Search string

	// Limit and Offset paginate the result. A nil Limit disables
	// pagination; Offset defaults to 0.
	Limit  *int
	Offset int
}

// IsEmpty reports whether the query places no constraint at all.
func (f Filters) IsEmpty() bool {
	return len(f.Sources) == 0 && len(f.Difficulties) == 0 && len(f.Topics) == 0 &&
		len(f.Timeframes) == 0 && f.Premium == nil && f.Search == "" && f.Limit == nil
}

// Response is the query result envelope: the page of questions, the
// distinct sources present in the full filtered result (before
// pagination, in order of first appearance), and the pre-pagination
// match count.
type Response struct {
	Questions  []types.Question `json:"questions"`
	Sources    []string         `json:"sources"`
	TotalCount int              `json:"totalCount"`
}

// Questions applies f to the corpus and returns the result envelope.
// Pure read: the corpus is shared and never mutated.
func Questions(c *corpus.Corpus, f Filters) Response {
	filtered := c.Questions

	filtered = filterSources(filtered, f.Sources)
	filtered = filterDifficulties(filtered, f.Difficulties)
	filtered = filterTimeframes(filtered, f.Timeframes, hasExplicitTimeframes(c.Questions))
	filtered = filterTopics(filtered, f.Topics)
	filtered = filterSearch(filtered, f.Search)
	filtered = filterPremium(filtered, f.Premium)

	// TotalCount and the source facet reflect the full filtered result,
	// not the page.
	resp := Response{
		Sources:    distinctSources(filtered),
		TotalCount: len(filtered),
	}
	resp.Questions = paginate(filtered, f.Limit, f.Offset)
	return resp
}

func filterSources(qs []types.Question, sources []string) []types.Question {
	if len(sources) == 0 {
		return qs
	}
	set := make(map[string]bool, len(sources))
	for _, s := range sources {
		set[s] = true
	}
	return keep(qs, func(q types.Question) bool { return set[q.Source] })
}

func filterDifficulties(qs []types.Question, difficulties []string) []types.Question {
	if len(difficulties) == 0 {
		return qs
	}
	set := make(map[types.Difficulty]bool, len(difficulties))
	for _, s := range difficulties {
		if d, ok := types.ParseDifficulty(s); ok {
			set[d] = true
		}
		// Unrecognized difficulty strings are dropped: they constrain the
		// facet but can never match a row.
	}
	return keep(qs, func(q types.Question) bool { return set[q.Difficulty] })
}

// hasExplicitTimeframes reports whether any corpus row carries a window
// other than "all". The facet is judged against the whole corpus, not the
// partially narrowed result, so earlier facets cannot turn it off.
func hasExplicitTimeframes(qs []types.Question) bool {
	for _, q := range qs {
		if q.Timeframe != types.TimeframeAll {
			return true
		}
	}
	return false
}

func filterTimeframes(qs []types.Question, timeframes []string, explicit bool) []types.Question {
	if len(timeframes) == 0 {
		return qs
	}

	set := make(map[types.Timeframe]bool, len(timeframes))
	for _, s := range timeframes {
		set[types.Timeframe(s)] = true
	}
	if set[types.TimeframeAll] {
		return qs
	}

	// A corpus built purely from flat sources makes this facet a no-op.
	if !explicit {
		return qs
	}

	return keep(qs, func(q types.Question) bool { return set[q.Timeframe] })
}

func filterTopics(qs []types.Question, topics []string) []types.Question {
	if len(topics) == 0 {
		return qs
	}
	wanted := make([]string, len(topics))
	for i, t := range topics {
		wanted[i] = strings.ToLower(t)
	}
	return keep(qs, func(q types.Question) bool {
		for _, w := range wanted {
			if !hasTopic(q, w) {
				return false
			}
		}
		return true
	})
}

func hasTopic(q types.Question, lowered string) bool {
	for _, t := range q.Topics {
		if strings.ToLower(t) == lowered {
			return true
		}
	}
	return false
}

func filterSearch(qs []types.Question, search string) []types.Question {
	tokens := strings.Fields(strings.ToLower(search))
	if len(tokens) == 0 {
		return qs
	}
	return keep(qs, func(q types.Question) bool {
		title := strings.ToLower(q.Title)
		source := strings.ToLower(q.Source)
		for _, tok := range tokens {
			if !matchesToken(q, title, source, tok) {
				return false
			}
		}
		return true
	})
}

// matchesToken reports whether tok substring-matches the title, the
// source, or any single topic. Topics are matched individually so a token
// cannot span two adjacent tags.
func matchesToken(q types.Question, title, source, tok string) bool {
	if strings.Contains(title, tok) || strings.Contains(source, tok) {
		return true
	}
	for _, t := range q.Topics {
		if strings.Contains(strings.ToLower(t), tok) {
			return true
		}
	}
	return false
}

func filterPremium(qs []types.Question, premium *bool) []types.Question {
	if premium == nil {
		return qs
	}
	return keep(qs, func(q types.Question) bool {
		return (q.IsPremium == "Y") == *premium
	})
}

func paginate(qs []types.Question, limit *int, offset int) []types.Question {
	if limit == nil {
		return qs
	}
	if offset < 0 {
		offset = 0
	}
	if *limit <= 0 || offset >= len(qs) {
		return nil
	}
	end := offset + *limit
	if end > len(qs) {
		end = len(qs)
	}
	return qs[offset:end]
}

// distinctSources returns the sources present in qs in order of first
// appearance. Always non-nil so the facet serializes as a JSON array.
func distinctSources(qs []types.Question) []string {
	seen := make(map[string]bool)
	sources := []string{}
	for _, q := range qs {
		if !seen[q.Source] {
			seen[q.Source] = true
			sources = append(sources, q.Source)
		}
	}
	return sources
}

func keep(qs []types.Question, pred func(types.Question) bool) []types.Question {
	var out []types.Question
	for _, q := range qs {
		if pred(q) {
			out = append(out, q)
		}
	}
	return out
}
