// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"sort"

	"github.com/pdiddy/question-engine/internal/corpus"
)

// Topics returns the distinct topic tags across the corpus, sorted
// lexicographically (case-sensitive). Recomputed on each call; cheap
// relative to a corpus build, so it carries no cache of its own.
// Always non-nil so an empty index serializes as a JSON array.
func Topics(c *corpus.Corpus) []string {
	seen := make(map[string]bool)
	topics := []string{}
	for _, q := range c.Questions {
		for _, t := range q.Topics {
			if !seen[t] {
				seen[t] = true
				topics = append(topics, t)
			}
		}
	}
	sort.Strings(topics)
	return topics
}

// Sources returns the corpus source identifiers in discovery order,
// non-nil even for an empty corpus.
func Sources(c *corpus.Corpus) []string {
	if c.Sources == nil {
		return []string{}
	}
	return c.Sources
}
