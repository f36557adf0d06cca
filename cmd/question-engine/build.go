// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/question-engine/internal/corpus"
	"github.com/pdiddy/question-engine/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the question corpus from CSV sources",
	Long: `Build discovers every CSV file under the data directory (one file per
organization), normalizes each row into a canonical question, and reports
per-source counts. The build is all-or-nothing: one unreadable source
fails the whole run.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	builder := corpus.NewBuilder(types.CorpusConfig{DataDir: dataDir(cmd)})
	_, err := builder.Build(context.Background(), os.Stdout)
	return err
}
