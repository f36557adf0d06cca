// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the question-engine CLI.
// See docs/ARCHITECTURE.md § CLI Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/question-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the question-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "question-engine",
	Short: "Normalize and query per-organization interview question corpora",
	Long: `question-engine ingests per-organization CSV files of interview
questions, normalizes them into a canonical in-memory corpus, and answers
multi-facet filter and search queries over it.

Each stage is a subcommand: build assembles the corpus, query filters it,
topics and sources list facet values, snapshot writes offline artifacts,
and serve exposes the engine over HTTP.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./question-engine.yaml or ~/.config/question-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory of per-organization CSV files (default: data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("question-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "question-engine"))
		}
	}

	viper.SetEnvPrefix("QUESTION_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig resolves the full stage configuration from viper (config
// file and environment), falling back to built-in defaults for anything
// left unset. Command flags override individual fields at the call sites.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Corpus: types.CorpusConfig{DataDir: viper.GetString("corpus.data_dir")},
		Query:  types.QueryConfig{MaxResults: viper.GetInt("query.max_results")},
		Snapshot: types.SnapshotConfig{
			OutDir: viper.GetString("snapshot.out_dir"),
			Format: types.SnapshotFormat(viper.GetString("snapshot.format")),
		},
		Server: types.ServerConfig{
			Addr:            viper.GetString("server.addr"),
			ReadTimeout:     viper.GetDuration("server.read_timeout"),
			WriteTimeout:    viper.GetDuration("server.write_timeout"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
	}

	if cfg.Corpus.DataDir == "" {
		cfg.Corpus.DataDir = "data"
	}
	if cfg.Snapshot.OutDir == "" {
		cfg.Snapshot.OutDir = "snapshots"
	}
	if cfg.Snapshot.Format == "" {
		cfg.Snapshot.Format = types.SnapshotYAML
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	return cfg
}

// dataDir resolves the CSV data directory: command flag, then config
// file or environment, then the "data" default.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		return dir
	}
	return pipelineConfig().Corpus.DataDir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
