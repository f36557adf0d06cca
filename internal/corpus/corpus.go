// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus discovers per-source CSV inputs, normalizes their rows,
// and assembles the immutable in-memory corpus behind a build-once cache.
// See docs/ARCHITECTURE.md § Corpus.
package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/question-engine/internal/normalize"
	"github.com/pdiddy/question-engine/pkg/types"
)

// ErrCorpusUnavailable reports that the corpus could not be built because
// an input source was unreadable or unparsable. Builds are all-or-nothing:
// no partial corpus is ever returned. Callers may retry, since the likely
// cause is transient I/O.
var ErrCorpusUnavailable = errors.New("corpus unavailable")

// Corpus is the full normalized collection: all Questions in
// (source order, row order) plus the distinct source identifiers in
// discovery order. A built Corpus is never mutated; concurrent readers
// share it without locking.
type Corpus struct {
	Questions []types.Question
	Sources   []string
}

// Builder assembles a Corpus from a directory of CSV files, one logical
// source per file.
type Builder struct {
	cfg types.CorpusConfig
}

// NewBuilder returns a Builder reading from cfg.DataDir.
func NewBuilder(cfg types.CorpusConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build discovers every *.csv file under the data directory, loads each in
// directory order, and returns the assembled Corpus. Per-source progress
// lines go to w. Any unreadable or unparsable source fails the whole build
// with ErrCorpusUnavailable. Build checks ctx between sources so shutdown
// can retract in-flight I/O.
func (b *Builder) Build(ctx context.Context, w io.Writer) (*Corpus, error) {
	entries, err := os.ReadDir(b.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading data directory %s: %v", ErrCorpusUnavailable, b.cfg.DataDir, err)
	}

	c := &Corpus{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		source := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		path := filepath.Join(b.cfg.DataDir, entry.Name())

		questions, err := loadSource(path, source)
		if err != nil {
			return nil, fmt.Errorf("%w: source %s: %v", ErrCorpusUnavailable, source, err)
		}

		c.Sources = append(c.Sources, source)
		c.Questions = append(c.Questions, questions...)
		fmt.Fprintf(w, "loaded  %s (%d questions)\n", source, len(questions))
	}

	fmt.Fprintf(w, "\ncorpus: %d questions across %d sources\n", len(c.Questions), len(c.Sources))
	return c, nil
}

// columnFor maps known header names (case-insensitive) to Record fields.
// Columns outside this set are ignored.
func columnFor(header string) string {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "id":
		return "id"
	case "title":
		return "title"
	case "url", "link":
		return "url"
	case "is premium", "premium":
		return "premium"
	case "acceptance %", "acceptance":
		return "acceptance"
	case "difficulty":
		return "difficulty"
	case "frequency %", "frequency":
		return "frequency"
	case "topics":
		return "topics"
	}
	return ""
}

// loadSource reads one CSV file and normalizes every data row. Rows are
// never dropped: a row with no usable fields still yields a Question via
// the normalizer's positional defaults.
func loadSource(path, source string) ([]types.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int)
	for i, h := range header {
		if name := columnFor(h); name != "" {
			cols[name] = i
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var questions []types.Question
	position := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", position+1, err)
		}

		position++
		questions = append(questions, normalize.Normalize(normalize.Record{
			ID:         field(row, "id"),
			Title:      field(row, "title"),
			URL:        field(row, "url"),
			Premium:    field(row, "premium"),
			Acceptance: field(row, "acceptance"),
			Difficulty: field(row, "difficulty"),
			Frequency:  field(row, "frequency"),
			Topics:     field(row, "topics"),
		}, source, position))
	}

	return questions, nil
}
