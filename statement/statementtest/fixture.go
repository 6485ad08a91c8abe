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

// Package statementtest writes statement files for tests
package statementtest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/penny-vault/pvratios/statement"
)

// CellFunc returns the text written for col in the row of period
type CellFunc func(col, period string) string

// Ones writes 1 into every cell
func Ones(col, period string) string {
	return "1"
}

// Values looks cells up in a map of column to period to text; cells not in
// the map are 1
func Values(values map[string]map[string]string) CellFunc {
	return func(col, period string) string {
		if byPeriod, ok := values[col]; ok {
			if val, ok := byPeriod[period]; ok {
				return val
			}
		}
		return "1"
	}
}

// Write creates the statement file of code described by schema. Every
// whitelisted column is written plus one column that is not whitelisted.
func Write(dir, code string, schema statement.Schema, periods []string, cell CellFunc) error {
	header := make([]string, 0, len(schema.Columns)+2)
	header = append(header, statement.DefaultIndexLabel)
	header = append(header, schema.Columns...)
	header = append(header, "备注")

	rows := [][]string{header}
	for _, period := range periods {
		row := make([]string, 0, len(header))
		row = append(row, period)
		for _, col := range schema.Columns {
			row = append(row, cell(col, period))
		}
		row = append(row, "n/a")
		rows = append(rows, row)
	}

	return writeRows(filepath.Join(dir, code+schema.Suffix+".csv"), rows)
}

// WriteAll writes the income, balance and cash flow statements of code with
// the same periods
func WriteAll(dir, code string, periods []string, cell CellFunc) error {
	for _, schema := range statement.DefaultWhitelist().Schemas() {
		if err := Write(dir, code, schema, periods, cell); err != nil {
			return err
		}
	}
	return nil
}

// WriteRaw writes rows to fn as CSV
func WriteRaw(fn string, rows [][]string) error {
	return writeRows(fn, rows)
}

// WriteCodeList writes one code per line
func WriteCodeList(fn string, codes ...string) error {
	return os.WriteFile(fn, []byte(strings.Join(codes, "\n")+"\n"), 0644)
}

func writeRows(fn string, rows [][]string) error {
	fh, err := os.Create(fn)
	if err != nil {
		return err
	}

	writer := gocsv.DefaultCSVWriter(fh)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			fh.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		fh.Close()
		return err
	}

	return fh.Close()
}
