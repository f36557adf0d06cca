// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/question-engine/internal/snapshot"
	"github.com/pdiddy/question-engine/pkg/types"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write offline corpus artifacts (YAML/JSON snapshot, SQLite index)",
	Long: `Snapshot builds the corpus and writes it as a static artifact:
a serialized document holding every question (with display projections),
the source list, and the topic index. With --index it also materializes a
SQLite database with full-text search over titles, topics, and sources.

Deployments can serve these artifacts directly so typical reads bypass
the corpus builder and query engine entirely.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().String("out-dir", "", "directory for snapshot artifacts (default snapshots)")
	snapshotCmd.Flags().String("format", "", "snapshot format: yaml or json (default yaml)")
	snapshotCmd.Flags().Bool("index", false, "also materialize the SQLite full-text index")
	snapshotCmd.Flags().Bool("check", false, "read the written snapshot back and verify its counts")

	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig().Snapshot
	if outDir, _ := cmd.Flags().GetString("out-dir"); outDir != "" {
		cfg.OutDir = outDir
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		cfg.Format = types.SnapshotFormat(format)
	}
	withIndex, _ := cmd.Flags().GetBool("index")
	check, _ := cmd.Flags().GetBool("check")

	c, err := buildCorpus(cmd)
	if err != nil {
		return err
	}

	var path string
	switch cfg.Format {
	case types.SnapshotYAML:
		path, err = snapshot.WriteYAML(cfg.OutDir, c)
	case types.SnapshotJSON:
		path, err = snapshot.WriteJSON(cfg.OutDir, c)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", cfg.Format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d questions from %d sources to %s\n", len(c.Questions), len(c.Sources), path)

	if check {
		doc, err := snapshot.ReadDocument(path)
		if err != nil {
			return err
		}
		if len(doc.Questions) != len(c.Questions) || doc.Summary.Questions != len(c.Questions) {
			return fmt.Errorf("snapshot check failed: %s holds %d questions, corpus has %d",
				path, len(doc.Questions), len(c.Questions))
		}
		fmt.Printf("Verified %s (%d questions, %d topics)\n", path, doc.Summary.Questions, doc.Summary.Topics)
	}

	if withIndex {
		dbPath := filepath.Join(cfg.OutDir, "index.db")
		store, err := snapshot.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Materialize(context.Background(), c); err != nil {
			return err
		}
		fmt.Printf("Materialized full-text index at %s\n", dbPath)
	}

	return nil
}
