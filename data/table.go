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
package data

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrLengthMismatch  = errors.New("series length does not match period index")
	ErrDuplicatePeriod = errors.New("duplicate period in index")
	ErrColumnCollision = errors.New("column names collide")
)

const dateKeyFormat = "20060102"

// Table is a per-security financial table keyed by period end date. Columns
// are kept in the order they were first assigned.
type Table struct {
	IndexLabel string

	periods []time.Time
	rows    map[string]int
	columns []string
	values  map[string]Series
}

// NewTable creates an empty table over the given period index
func NewTable(periods []time.Time) (*Table, error) {
	t := &Table{
		periods: make([]time.Time, len(periods)),
		rows:    make(map[string]int, len(periods)),
		values:  make(map[string]Series),
	}

	for idx, period := range periods {
		key := DateKey(period)
		if _, ok := t.rows[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePeriod, key)
		}
		t.rows[key] = idx
		t.periods[idx] = period
	}

	return t, nil
}

// DateKey returns the lookup key used for a period end date
func DateKey(date time.Time) string {
	return date.Format(dateKeyFormat)
}

// Len returns the number of periods in the table
func (t *Table) Len() int {
	return len(t.periods)
}

// Periods returns a copy of the period index
func (t *Table) Periods() []time.Time {
	out := make([]time.Time, len(t.periods))
	copy(out, t.periods)
	return out
}

// Columns returns a copy of the column names in order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the column exists
func (t *Table) Has(col string) bool {
	_, ok := t.values[col]
	return ok
}

// Row returns the row index of the period with the given date
func (t *Table) Row(date time.Time) (int, bool) {
	idx, ok := t.rows[DateKey(date)]
	return idx, ok
}

// Column returns a copy of the named column
func (t *Table) Column(col string) (Series, error) {
	values, ok := t.values[col]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	return values.Clone(), nil
}

// Value returns a single cell
func (t *Table) Value(col string, row int) (float64, error) {
	values, ok := t.values[col]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	return values[row], nil
}

// Set assigns a column. A new column is appended; an existing column is
// overwritten in place and keeps its position.
func (t *Table) Set(col string, values Series) error {
	if len(values) != len(t.periods) {
		return fmt.Errorf("%w: %s has %d values, index has %d", ErrLengthMismatch, col, len(values), len(t.periods))
	}

	if _, ok := t.values[col]; !ok {
		t.columns = append(t.columns, col)
	}
	t.values[col] = values.Clone()

	return nil
}

// Rename applies fn to every column name. Two columns mapping to the same
// name is an error and leaves the table untouched.
func (t *Table) Rename(fn func(string) string) error {
	renamed := make([]string, len(t.columns))
	seen := make(map[string]string, len(t.columns))
	for idx, col := range t.columns {
		name := fn(col)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q and %q both become %q", ErrColumnCollision, prev, col, name)
		}
		seen[name] = col
		renamed[idx] = name
	}

	values := make(map[string]Series, len(renamed))
	for idx, col := range t.columns {
		values[renamed[idx]] = t.values[col]
	}

	t.columns = renamed
	t.values = values

	return nil
}

// SortDescending reorders rows so the most recent period comes first
func (t *Table) SortDescending() {
	order := make([]int, len(t.periods))
	for idx := range order {
		order[idx] = idx
	}

	sort.SliceStable(order, func(i, j int) bool {
		return t.periods[order[i]].After(t.periods[order[j]])
	})

	periods := make([]time.Time, len(order))
	for newIdx, oldIdx := range order {
		periods[newIdx] = t.periods[oldIdx]
		t.rows[DateKey(periods[newIdx])] = newIdx
	}
	t.periods = periods

	for col, values := range t.values {
		sorted := make(Series, len(order))
		for newIdx, oldIdx := range order {
			sorted[newIdx] = values[oldIdx]
		}
		t.values[col] = sorted
	}
}

// MapValues replaces every cell with fn(cell)
func (t *Table) MapValues(fn func(float64) float64) {
	for _, values := range t.values {
		for idx, val := range values {
			values[idx] = fn(val)
		}
	}
}

func (t *Table) MarshalZerologObject(e *zerolog.Event) {
	e.Int("NumPeriods", len(t.periods))
	e.Int("NumColumns", len(t.columns))
	if len(t.periods) > 0 {
		e.Time("FirstPeriod", t.periods[0])
		e.Time("LastPeriod", t.periods[len(t.periods)-1])
	}
}
