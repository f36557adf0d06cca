// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/question-engine/internal/corpus"
	"github.com/pdiddy/question-engine/internal/query"
	"github.com/pdiddy/question-engine/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [search terms...]",
	Short: "Filter and search the question corpus",
	Long: `Query builds the corpus and applies facet filters: source,
difficulty, topic (AND semantics across repeated --topic flags), premium
flag, free-text search, and pagination. Facets combine with AND; values
within one facet with OR.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringSlice("source", nil, "filter by source organization (repeatable)")
	queryCmd.Flags().StringSlice("difficulty", nil, "filter by difficulty: Easy, Medium, Hard (repeatable)")
	queryCmd.Flags().StringSlice("topic", nil, "require a topic tag (repeatable, AND semantics)")
	queryCmd.Flags().StringSlice("timeframe", nil, "filter by timeframe tag (repeatable)")
	queryCmd.Flags().String("search", "", "free-text search over title, source, and topics")
	queryCmd.Flags().Bool("premium", false, "keep only premium questions")
	queryCmd.Flags().Bool("free", false, "keep only free questions")
	queryCmd.Flags().Int("limit", 0, "page size (0 = no pagination)")
	queryCmd.Flags().Int("offset", 0, "page start within the filtered result")
	queryCmd.Flags().Bool("json", false, "output the result envelope as JSON")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	filters, err := filtersFromFlags(cmd, args)
	if err != nil {
		return err
	}

	// The configured result cap applies when no explicit --limit was given.
	if max := pipelineConfig().Query.MaxResults; filters.Limit == nil && max > 0 {
		filters.Limit = &max
	}

	builder := corpus.NewBuilder(types.CorpusConfig{DataDir: dataDir(cmd)})
	cache := corpus.NewCache(builder)

	c, err := cache.Get(context.Background(), io.Discard)
	if err != nil {
		return err
	}

	resp := query.Questions(c, filters)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(resp, jsonOutput)
}

func filtersFromFlags(cmd *cobra.Command, args []string) (query.Filters, error) {
	search, _ := cmd.Flags().GetString("search")
	if search == "" && len(args) > 0 {
		search = strings.Join(args, " ")
	}

	sources, _ := cmd.Flags().GetStringSlice("source")
	difficulties, _ := cmd.Flags().GetStringSlice("difficulty")
	topics, _ := cmd.Flags().GetStringSlice("topic")
	timeframes, _ := cmd.Flags().GetStringSlice("timeframe")

	f := query.Filters{
		Sources:      sources,
		Difficulties: difficulties,
		Topics:       topics,
		Timeframes:   timeframes,
		Search:       search,
	}

	premium, _ := cmd.Flags().GetBool("premium")
	free, _ := cmd.Flags().GetBool("free")
	if premium && free {
		return query.Filters{}, fmt.Errorf("--premium and --free are mutually exclusive")
	}
	if premium {
		f.Premium = &premium
	}
	if free {
		no := false
		f.Premium = &no
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		f.Limit = &limit
	}
	f.Offset, _ = cmd.Flags().GetInt("offset")

	return f, nil
}

func formatQueryOutput(resp query.Response, jsonOutput bool) error {
	if jsonOutput {
		display := make([]types.DisplayQuestion, len(resp.Questions))
		for i, q := range resp.Questions {
			display[i] = q.Display()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Questions  []types.DisplayQuestion `json:"questions"`
			Sources    []string                `json:"sources"`
			TotalCount int                     `json:"totalCount"`
		}{display, resp.Sources, resp.TotalCount})
	}

	if len(resp.Questions) == 0 {
		fmt.Println("No questions matched.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-40s  %-8s  %-10s  %-8s  %s\n",
		"ID", "Title", "Diff", "Source", "Premium", "Topics")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, q := range resp.Questions {
		d := q.Display()
		title := d.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		topics := d.TopicsDisplay
		if len(topics) > 30 {
			topics = topics[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-40s  %-8s  %-10s  %-8s  %s\n",
			d.ID, title, d.Difficulty, d.Source, d.IsPremium, topics)
	}

	fmt.Fprintf(os.Stdout, "\n%d of %d questions (sources: %s)\n",
		len(resp.Questions), resp.TotalCount, strings.Join(resp.Sources, ", "))
	return nil
}
