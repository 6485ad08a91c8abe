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
package statement

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/penny-vault/pvratios/data"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingSource  = errors.New("statement file not found")
	ErrSchemaMismatch = errors.New("whitelisted column missing from statement")
	ErrInvalidDate    = errors.New("cannot parse period date")
	ErrInvalidValue   = errors.New("cannot parse statement value")
	ErrEmptyStatement = errors.New("statement has no header")
)

type JoinMode string

const (
	// InnerJoin keeps the periods reported in all three statements
	InnerJoin JoinMode = "inner"

	// OuterJoin keeps every period reported in any statement; cells of a
	// statement that does not report the period are 0
	OuterJoin JoinMode = "outer"
)

const (
	DefaultSentinel   = "--"
	DefaultIndexLabel = "报告期"
)

var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// Loader reads the income, balance and cash flow statements of a security
// and merges them into a single table.
type Loader struct {
	Dir       string
	Sentinel  string
	Join      JoinMode
	Whitelist Whitelist
}

// NewLoader returns a loader reading from dir with the default whitelist
func NewLoader(dir string) *Loader {
	return &Loader{
		Dir:       dir,
		Sentinel:  DefaultSentinel,
		Join:      InnerJoin,
		Whitelist: DefaultWhitelist(),
	}
}

// sheet is the whitelisted part of one statement file
type sheet struct {
	label   string
	periods []time.Time
	rows    map[string]int
	columns []string
	values  map[string]data.Series
}

// Path returns the file holding the statement described by schema
func (loader *Loader) Path(code string, schema Schema) string {
	return filepath.Join(loader.Dir, code+schema.Suffix+".csv")
}

// Load reads the three statements of code and joins them on period end date.
// Missing cells are 0. Any error aborts the security.
func (loader *Loader) Load(ctx context.Context, code string) (*data.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schemas := loader.Whitelist.Schemas()
	sheets := make([]*sheet, 0, len(schemas))
	for _, schema := range schemas {
		sh, err := loader.readSheet(loader.Path(code, schema), schema)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sh)
	}

	periods := joinPeriods(sheets, loader.Join)
	tbl, err := data.NewTable(periods)
	if err != nil {
		return nil, err
	}
	tbl.IndexLabel = sheets[0].label

	for _, sh := range sheets {
		for _, col := range sh.columns {
			if tbl.Has(col) {
				return nil, fmt.Errorf("%w: %s selected by more than one statement", ErrSchemaMismatch, col)
			}

			src := sh.values[col]
			values := make(data.Series, len(periods))
			for idx, period := range periods {
				if row, ok := sh.rows[data.DateKey(period)]; ok {
					values[idx] = src[row]
				}
			}

			if err := tbl.Set(col, values); err != nil {
				return nil, err
			}
		}
	}

	log.Debug().Str("Code", code).Object("Table", tbl).Msg("loaded statements")

	return tbl, nil
}

func (loader *Loader) readSheet(fn string, schema Schema) (*sheet, error) {
	fh, err := os.Open(fn)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, fn)
		}
		return nil, err
	}
	defer fh.Close()

	reader := gocsv.LazyCSVReader(fh)
	if csvReader, ok := reader.(*csv.Reader); ok {
		csvReader.FieldsPerRecord = -1
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}

	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyStatement, fn)
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	colIdx := make(map[string]int, len(header))
	for idx, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := colIdx[name]; !ok {
			colIdx[name] = idx
		}
	}

	sh := &sheet{
		label:   strings.TrimSpace(header[0]),
		rows:    make(map[string]int, len(records)-1),
		columns: make([]string, 0, len(schema.Columns)),
		values:  make(map[string]data.Series, len(schema.Columns)),
	}

	selected := make([]int, len(schema.Columns))
	for idx, col := range schema.Columns {
		pos, ok := colIdx[col]
		if !ok || pos == 0 {
			return nil, fmt.Errorf("%w: %s in %s", ErrSchemaMismatch, col, fn)
		}
		selected[idx] = pos

		name := schema.TableName(col)
		sh.columns = append(sh.columns, name)
		sh.values[name] = make(data.Series, 0, len(records)-1)
	}

	for lineNo, record := range records[1:] {
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}

		period, err := parseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q on line %d of %s", ErrInvalidDate, record[0], lineNo+2, fn)
		}

		key := data.DateKey(period)
		if _, ok := sh.rows[key]; ok {
			return nil, fmt.Errorf("%w: %s in %s", data.ErrDuplicatePeriod, key, fn)
		}
		sh.rows[key] = len(sh.periods)
		sh.periods = append(sh.periods, period)

		for idx, pos := range selected {
			cell := ""
			if pos < len(record) {
				cell = record[pos]
			}

			val, err := loader.parseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: %q in column %s on line %d of %s", ErrInvalidValue, cell, schema.Columns[idx], lineNo+2, fn)
			}

			name := sh.columns[idx]
			sh.values[name] = append(sh.values[name], val)
		}
	}

	return sh, nil
}

// parseValue converts a cell to a number; empty and sentinel cells are 0
func (loader *Loader) parseValue(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == loader.Sentinel {
		return 0, nil
	}
	return strconv.ParseFloat(cell, 64)
}

func parseDate(val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	for _, layout := range dateLayouts {
		if dt, err := time.Parse(layout, val); err == nil {
			return time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// joinPeriods merges the period indexes of sheets, newest first
func joinPeriods(sheets []*sheet, mode JoinMode) []time.Time {
	counts := make(map[string]int)
	dates := make(map[string]time.Time)
	for _, sh := range sheets {
		for _, period := range sh.periods {
			key := data.DateKey(period)
			counts[key]++
			dates[key] = period
		}
	}

	periods := make([]time.Time, 0, len(dates))
	for key, period := range dates {
		if mode == OuterJoin || counts[key] == len(sheets) {
			periods = append(periods, period)
		}
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].After(periods[j])
	})

	return periods
}
