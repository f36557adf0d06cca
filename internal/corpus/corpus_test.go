// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/question-engine/pkg/types"
)

// --- test helpers ---

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const acmeCSV = `ID,Title,URL,Is Premium,Acceptance %,Difficulty,Frequency %,Topics
1,Two Sum,https://leetcode.com/problems/two-sum/,N,49.1%,EASY,93.2%,"Array, Hash Table"
2,Merge K Lists,,Y,36.4%,hard,61.0%,Heap
`

const globexCSV = `ID,Title,URL,Is Premium,Acceptance %,Difficulty,Frequency %,Topics
9,Word Ladder,https://leetcode.com/problems/word-ladder/,N,32.1%,Medium,48.7%,"BFS, Graph"
`

func testBuilder(t *testing.T) (*Builder, string) {
	t.Helper()
	dir := t.TempDir()
	writeCSV(t, dir, "acme.csv", acmeCSV)
	writeCSV(t, dir, "globex.csv", globexCSV)
	return NewBuilder(types.CorpusConfig{DataDir: dir}), dir
}

// --- Build ---

func TestBuildAssemblesSourcesInDiscoveryOrder(t *testing.T) {
	b, _ := testBuilder(t)

	c, err := b.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(c.Sources, []string{"acme", "globex"}) {
		t.Errorf("Sources = %v, want [acme globex]", c.Sources)
	}
	if len(c.Questions) != 3 {
		t.Fatalf("len(Questions) = %d, want 3", len(c.Questions))
	}
	if c.Questions[0].Slug != "two-sum" || c.Questions[2].Slug != "word-ladder" {
		t.Errorf("question order wrong: %q ... %q", c.Questions[0].Slug, c.Questions[2].Slug)
	}
	for i, q := range c.Questions[:2] {
		if q.Source != "acme" {
			t.Errorf("Questions[%d].Source = %q, want acme", i, q.Source)
		}
	}
}

func TestBuildNormalizesFields(t *testing.T) {
	b, _ := testBuilder(t)

	c, err := b.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}

	merge := c.Questions[1]
	if merge.ID != 2 {
		t.Errorf("ID = %d, want 2", merge.ID)
	}
	if merge.Difficulty != types.Hard {
		t.Errorf("Difficulty = %q, want Hard", merge.Difficulty)
	}
	if merge.IsPremium != "Y" {
		t.Errorf("IsPremium = %q, want Y", merge.IsPremium)
	}
	// No URL column value: slug comes from the title, URL from the slug.
	if merge.Slug != "merge-k-lists" {
		t.Errorf("Slug = %q, want merge-k-lists", merge.Slug)
	}
	if merge.URL != "/problems/merge-k-lists" {
		t.Errorf("URL = %q, want /problems/merge-k-lists", merge.URL)
	}
}

func TestBuildNeverDropsRows(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "acme.csv", "ID,Title,URL\n,,\n2,Two Sum,\n")
	b := NewBuilder(types.CorpusConfig{DataDir: dir})

	c, err := b.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	// A record of empty cells is still a record: it must survive with
	// positional defaults and keep the position counter honest.
	if len(c.Questions) != 2 {
		t.Fatalf("len(Questions) = %d, want 2", len(c.Questions))
	}

	blank := c.Questions[0]
	if blank.ID != 1 || blank.Slug != "acme-1" {
		t.Errorf("positional defaults: ID=%d Slug=%q, want 1/acme-1", blank.ID, blank.Slug)
	}
	if blank.Title != "acme-1" || blank.URL != "/problems/acme-1" {
		t.Errorf("fallback fields: Title=%q URL=%q", blank.Title, blank.URL)
	}

	second := c.Questions[1]
	if second.ID != 2 || second.Slug != "two-sum" {
		t.Errorf("second row: ID=%d Slug=%q, want 2/two-sum", second.ID, second.Slug)
	}
}

func TestBuildIdempotent(t *testing.T) {
	b, _ := testBuilder(t)

	first, err := b.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.Questions, second.Questions) {
		t.Error("consecutive builds differ in question sequence")
	}
	if !reflect.DeepEqual(first.Sources, second.Sources) {
		t.Error("consecutive builds differ in source order")
	}
}

func TestBuildMissingDirFailsWhole(t *testing.T) {
	b := NewBuilder(types.CorpusConfig{DataDir: filepath.Join(t.TempDir(), "nope")})

	_, err := b.Build(context.Background(), &bytes.Buffer{})
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Errorf("err = %v, want ErrCorpusUnavailable", err)
	}
}

func TestBuildIgnoresNonCSVFiles(t *testing.T) {
	b, dir := testBuilder(t)
	writeCSV(t, dir, "README.md", "not a source")

	c, err := b.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Sources) != 2 {
		t.Errorf("Sources = %v, want 2 entries", c.Sources)
	}
}

func TestBuildHonorsCancellation(t *testing.T) {
	b, _ := testBuilder(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
