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
	"math"
	"strings"
)

// RenameRule replaces every occurrence of Find in a column name with Replace
type RenameRule struct {
	Find    string `mapstructure:"find" toml:"find" validate:"required"`
	Replace string `mapstructure:"replace" toml:"replace"`
}

// DefaultRenameRules strips the statement total marker and swaps full-width
// parentheses for ASCII ones.
func DefaultRenameRules() []RenameRule {
	return []RenameRule{
		{Find: "*", Replace: ""},
		{Find: "（", Replace: "("},
		{Find: "）", Replace: ")"},
	}
}

// NormalizeName applies rules to name in order, each exactly once
func NormalizeName(name string, rules []RenameRule) string {
	for _, rule := range rules {
		if rule.Find == "" {
			continue
		}
		name = strings.ReplaceAll(name, rule.Find, rule.Replace)
	}
	return name
}

// Normalize prepares a computed table for output: column names are
// rewritten with rules, rows are ordered newest first and every non-finite
// value becomes 0.
func Normalize(t *Table, rules []RenameRule) error {
	if err := t.Rename(func(col string) string {
		return NormalizeName(col, rules)
	}); err != nil {
		return err
	}

	t.SortDescending()
	t.MapValues(func(val float64) float64 {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return val
	})

	return nil
}
