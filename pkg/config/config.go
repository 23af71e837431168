// Package config loads a tablekit run description from JSON, YAML or TOML.
//
// YAML and TOML documents are normalised to JSON before decoding, so every
// format accepts exactly the same field names and value shapes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/tablekit/pkg/series"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

type Input struct {
	Path       string `json:"path"`
	Type       string `json:"type"` // csv|jsonl|parquet, default from extension
	HasHeader  *bool  `json:"has_header"`
	Delimiter  string `json:"delimiter"`
	DateFormat string `json:"date_format"`
	SampleRows int    `json:"sample_rows"`
}

// Header reports whether the input's first record is a header (default true).
func (in Input) Header() bool { return in.HasHeader == nil || *in.HasHeader }

type Output struct {
	Path      string `json:"path"`
	Type      string `json:"type"` // csv|jsonl|parquet, default from extension
	Delimiter string `json:"delimiter"`
}

// Chart asks for series bindings to be detected on the pipeline output.
type Chart struct {
	Type   series.ChartType `json:"type"`
	Output string           `json:"output"` // bindings JSON path, "-" or empty for stdout
	Series []series.Config  `json:"series"`
}

type Config struct {
	Input  Input             `json:"input"`
	Output Output            `json:"output"`
	Steps  []json.RawMessage `json:"steps"`
	Chart  *Chart            `json:"chart,omitempty"`
}

// FormatOf picks the document format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return JSON
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(b, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(b []byte, format Format) (*Config, error) {
	var err error
	switch format {
	case YAML:
		b, err = reencode(b, yaml.Unmarshal)
	case TOML:
		b, err = reencode(b, toml.Unmarshal)
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func reencode(b []byte, unmarshal func([]byte, any) error) ([]byte, error) {
	var doc any
	if err := unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// TypeOf returns the explicit data format or the one implied by path.
func TypeOf(explicit, path string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	p := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch filepath.Ext(p) {
	case ".jsonl", ".ndjson":
		return "jsonl"
	case ".parquet":
		return "parquet"
	default:
		return "csv"
	}
}

// Delimiter returns the first rune of s, or 0 when s is empty.
func Delimiter(s string) rune {
	if s == "" {
		return 0
	}
	if s == `\t` {
		return '\t'
	}
	return []rune(s)[0]
}
