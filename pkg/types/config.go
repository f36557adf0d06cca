// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CorpusConfig holds settings for the corpus build stage.
type CorpusConfig struct {
	// DataDir is the directory of per-organization CSV files, one file
	// per source (e.g. "data/acme.csv").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// QueryConfig holds settings for the query stage.
type QueryConfig struct {
	// MaxResults caps the number of questions returned when the caller
	// supplies no explicit limit. Zero means unlimited.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// SnapshotFormat selects the serialized snapshot encoding.
type SnapshotFormat string

const (
	SnapshotYAML SnapshotFormat = "yaml"
	SnapshotJSON SnapshotFormat = "json"
)

// SnapshotConfig holds settings for the snapshot stage.
type SnapshotConfig struct {
	// OutDir is the directory snapshot artifacts are written to
	// (snapshot.yaml, snapshot.json, index.db).
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Format selects the serialized snapshot encoding: yaml or json.
	Format SnapshotFormat `json:"format" yaml:"format"`
}

// ServerConfig holds settings for the HTTP read surface.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout and WriteTimeout bound request and response I/O.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Corpus   CorpusConfig   `json:"corpus" yaml:"corpus"`
	Query    QueryConfig    `json:"query" yaml:"query"`
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
