// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/question-engine/internal/corpus"
	"github.com/pdiddy/question-engine/internal/query"
	"github.com/pdiddy/question-engine/pkg/types"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the distinct topic tags across the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildCorpus(cmd)
		if err != nil {
			return err
		}
		for _, t := range query.Topics(c) {
			fmt.Println(t)
		}
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the source organizations in discovery order",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildCorpus(cmd)
		if err != nil {
			return err
		}
		for _, s := range query.Sources(c) {
			fmt.Println(s)
		}
		return nil
	},
}

func buildCorpus(cmd *cobra.Command) (*corpus.Corpus, error) {
	builder := corpus.NewBuilder(types.CorpusConfig{DataDir: dataDir(cmd)})
	return builder.Build(context.Background(), io.Discard)
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(sourcesCmd)
}
