package app

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// JobFile is the single-file YAML description of an extraction job. Flags
// override whatever the file sets.
type JobFile struct {
	Tag     string       `yaml:"tag"`
	Inputs  []string     `yaml:"inputs"`
	Output  string       `yaml:"output"`
	Chunk   int          `yaml:"chunk"`
	DryRun  bool         `yaml:"dryRun"`
	Columns []ColumnSpec `yaml:"columns"`
}

// LoadJobFile reads and parses a YAML job description.
func LoadJobFile(path string) (*JobFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	var j JobFile
	if err := yaml.Unmarshal(b, &j); err != nil {
		return nil, fmt.Errorf("parse job file: %w", err)
	}
	return &j, nil
}

// Config materializes the job file as a Config for the flag layer to
// override.
func (j *JobFile) Config() Config {
	return Config{
		Inputs:    append([]string(nil), j.Inputs...),
		Output:    j.Output,
		Tag:       j.Tag,
		Columns:   append([]ColumnSpec(nil), j.Columns...),
		ChunkSize: j.Chunk,
		DryRun:    j.DryRun,
	}
}
