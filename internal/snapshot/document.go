// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot produces the offline corpus artifacts: a serialized
// document (YAML or JSON) holding the full corpus and topic index, and a
// SQLite index with full-text search. Both are derived outputs built
// off the request path so latency-sensitive deployments can serve reads
// as static assets.
// See docs/ARCHITECTURE.md § Snapshot.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/question-engine/internal/corpus"
	"github.com/pdiddy/question-engine/internal/query"
	"github.com/pdiddy/question-engine/pkg/types"
)

// Document is the on-disk snapshot: the display projection of every
// question, the source list, the topic index, and summary statistics.
type Document struct {
	Questions []types.DisplayQuestion `json:"questions" yaml:"questions"`
	Sources   []string                `json:"sources" yaml:"sources"`
	Topics    []string                `json:"topics" yaml:"topics"`
	Summary   Summary                 `json:"summary" yaml:"summary"`
}

// Summary stores snapshot statistics and a generation timestamp.
type Summary struct {
	Questions   int       `json:"questions" yaml:"questions"`
	Sources     int       `json:"sources" yaml:"sources"`
	Topics      int       `json:"topics" yaml:"topics"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// BuildDocument assembles the snapshot document from a built corpus.
func BuildDocument(c *corpus.Corpus) Document {
	questions := make([]types.DisplayQuestion, len(c.Questions))
	for i, q := range c.Questions {
		questions[i] = q.Display()
	}
	topics := query.Topics(c)

	return Document{
		Questions: questions,
		Sources:   c.Sources,
		Topics:    topics,
		Summary: Summary{
			Questions:   len(questions),
			Sources:     len(c.Sources),
			Topics:      len(topics),
			GeneratedAt: time.Now().UTC(),
		},
	}
}

// WriteYAML writes the snapshot document to dir/snapshot.yaml.
func WriteYAML(dir string, c *corpus.Corpus) (string, error) {
	doc := BuildDocument(c)
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeArtifact(dir, "snapshot.yaml", data)
}

// WriteJSON writes the snapshot document to dir/snapshot.json.
func WriteJSON(dir string, c *corpus.Corpus) (string, error) {
	doc := BuildDocument(c)
	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeArtifact(dir, "snapshot.json", data)
}

func writeArtifact(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// ReadDocument loads a previously written snapshot, YAML or JSON by file
// extension.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var doc Document
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &doc, nil
}
