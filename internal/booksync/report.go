// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package booksync

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Report is the on-disk form of a run summary.
type Report struct {
	Summary Summary        `yaml:"summary"`
	Totals  map[Status]int `yaml:"totals"`
}

// WriteReport saves sum and its per-status totals to a YAML file.
func WriteReport(path string, sum Summary) error {
	r := Report{
		Summary: sum,
		Totals: map[Status]int{
			StatusUpdated:      sum.Count(StatusUpdated),
			StatusNoMatch:      sum.Count(StatusNoMatch),
			StatusLookupFailed: sum.Count(StatusLookupFailed),
			StatusUpdateFailed: sum.Count(StatusUpdateFailed),
			StatusSkipped:      sum.Count(StatusSkipped),
			StatusDryRun:       sum.Count(StatusDryRun),
		},
	}

	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
