// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/penny-vault/pvratios/data"
	"github.com/penny-vault/pvratios/statement"
)

type ErrorClass string

const (
	MissingSource  ErrorClass = "missing-source"
	SchemaMismatch ErrorClass = "schema-mismatch"
	InvalidInput   ErrorClass = "invalid-input"
	Canceled       ErrorClass = "canceled"
	Other          ErrorClass = "other"
)

// Failure records why a security produced no output
type Failure struct {
	Code  string     `json:"code"`
	Class ErrorClass `json:"class"`
	Error string     `json:"error"`
}

// RunSummary describes one batch run over a list of securities
type RunSummary struct {
	RunID     uuid.UUID `json:"run_id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	NumSecurities int `json:"num_securities"`
	NumSucceeded  int `json:"num_succeeded"`

	Outputs  []string  `json:"outputs"`
	Failures []Failure `json:"failures"`
}

// New returns a summary for a run starting now
func New(name string, numSecurities int) *RunSummary {
	return &RunSummary{
		RunID:         uuid.New(),
		Name:          name,
		StartTime:     time.Now(),
		NumSecurities: numSecurities,
		Outputs:       []string{},
		Failures:      []Failure{},
	}
}

// Classify maps an error returned while processing a security to its class
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, statement.ErrMissingSource):
		return MissingSource
	case errors.Is(err, statement.ErrSchemaMismatch),
		errors.Is(err, statement.ErrEmptyStatement),
		errors.Is(err, data.ErrColumnNotFound),
		errors.Is(err, data.ErrColumnCollision):
		return SchemaMismatch
	case errors.Is(err, statement.ErrInvalidDate),
		errors.Is(err, statement.ErrInvalidValue),
		errors.Is(err, data.ErrDuplicatePeriod):
		return InvalidInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Canceled
	default:
		return Other
	}
}

// Duration of the run; zero until the run is finished
func (summary *RunSummary) Duration() time.Duration {
	if summary.EndTime.IsZero() {
		return 0
	}
	return summary.EndTime.Sub(summary.StartTime)
}

// NumFailed returns the number of securities that produced no output
func (summary *RunSummary) NumFailed() int {
	return len(summary.Failures)
}

// FailuresByClass counts failures per error class
func (summary *RunSummary) FailuresByClass() map[ErrorClass]int {
	counts := make(map[ErrorClass]int)
	for _, failure := range summary.Failures {
		counts[failure.Class]++
	}
	return counts
}

// FileName returns the name the summary is saved under
func (summary *RunSummary) FileName() string {
	name := slug.Make(fmt.Sprintf("%s %s", summary.Name, summary.StartTime.UTC().Format("2006-01-02 150405")))
	return name + ".json"
}

// Save writes the summary as JSON into dir and returns the file name
func (summary *RunSummary) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	fn := filepath.Join(dir, summary.FileName())
	if err := os.WriteFile(fn, body, 0644); err != nil {
		return "", err
	}

	return fn, nil
}

// Load reads a summary previously written with Save
func Load(fn string) (*RunSummary, error) {
	body, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{}
	if err := json.Unmarshal(body, summary); err != nil {
		return nil, fmt.Errorf("parse run summary %s: %w", fn, err)
	}

	return summary, nil
}

// Latest returns the most recent summary saved in dir
func Latest(dir string) (*RunSummary, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no run summaries in %s", os.ErrNotExist, dir)
	}

	summaries := make([]*RunSummary, 0, len(matches))
	for _, fn := range matches {
		summary, err := Load(fn)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].StartTime.After(summaries[j].StartTime)
	})

	return summaries[0], nil
}
