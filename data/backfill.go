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
	"time"
)

const (
	PeriodStartSuffix  = "_期初"
	YearOverYearSuffix = "_同期"
)

// ReferenceFunc returns the date of the reference period for a period, or
// false if the period has no reference date.
type ReferenceFunc func(period time.Time) (time.Time, bool)

// PriorYearEnd is the period-start reference: December 31 of the prior year
func PriorYearEnd(period time.Time) (time.Time, bool) {
	return time.Date(period.Year()-1, time.December, 31, 0, 0, 0, 0, time.UTC), true
}

// PriorYearSameDay is the year-over-year reference: the same month and day
// one year earlier. February 29 has no counterpart in a non-leap year.
func PriorYearSameDay(period time.Time) (time.Time, bool) {
	ref := time.Date(period.Year()-1, period.Month(), period.Day(), 0, 0, 0, 0, time.UTC)
	if ref.Month() != period.Month() || ref.Day() != period.Day() {
		return time.Time{}, false
	}
	return ref, true
}

// PeriodStart adds col+PeriodStartSuffix holding the prior fiscal year-end
// value of col, falling back to the current value.
func PeriodStart(t *Table, col string) error {
	return Backfill(t, col, col+PeriodStartSuffix, PriorYearEnd)
}

// YearOverYear adds col+YearOverYearSuffix holding the value of col on the
// same day one year earlier, falling back to the current value.
func YearOverYear(t *Table, col string) error {
	return Backfill(t, col, col+YearOverYearSuffix, PriorYearSameDay)
}

// Backfill writes a reference column for col into dst. Each period starts
// with its own value; it is replaced by the value at the reference period
// only when that period is in the table and its raw value is > 0. Zero and
// negative reference values count as absent.
func Backfill(t *Table, col, dst string, ref ReferenceFunc) error {
	raw, err := t.Column(col)
	if err != nil {
		return err
	}

	out := raw.Clone()
	for idx, period := range t.periods {
		refDate, ok := ref(period)
		if !ok {
			continue
		}

		refRow, ok := t.Row(refDate)
		if !ok {
			continue
		}

		if raw[refRow] > 0 {
			out[idx] = raw[refRow]
		}
	}

	return t.Set(dst, out)
}
