package etl

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/gridscope/ferceqr/pkg/constants"
	"github.com/gridscope/ferceqr/pkg/errors"
)

// ManifestFileName is the manifest written next to the output chunks.
const ManifestFileName = "manifest.yaml"

// ChunkInfo records one flushed chunk.
type ChunkInfo struct {
	Name string `yaml:"name"`
	Rows int    `yaml:"rows"`
}

// SkippedSeller records a seller archive the run could not process.
type SkippedSeller struct {
	Member string `yaml:"member"`
	Reason string `yaml:"reason"`
}

// Manifest summarizes one preprocessing run. It is written last, after all
// chunks have been flushed, so its presence marks a completed run.
type Manifest struct {
	Source     string            `yaml:"source"`
	RecordType string            `yaml:"record_type"`
	Filters    map[string]string `yaml:"filters,omitempty"`
	Strict     bool              `yaml:"strict"`
	Rows       int               `yaml:"rows"`
	Chunks     []ChunkInfo       `yaml:"chunks"`
	Skipped    []SkippedSeller   `yaml:"skipped_sellers,omitempty"`
	StartedAt  time.Time         `yaml:"started_at"`
	FinishedAt time.Time         `yaml:"finished_at"`
}

// Write marshals the manifest to path as YAML.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by a previous run.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &m, nil
}
