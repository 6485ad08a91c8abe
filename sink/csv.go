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
package sink

import (
	"context"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/penny-vault/pvratios/data"
)

// CSV writes one UTF-8 CSV file per security: a header row followed by one
// row per period
type CSV struct {
	Dir        string
	IndexLabel string
}

func (sink *CSV) Write(ctx context.Context, code string, tbl *data.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return writeAtomic(sink.Dir, code+".csv", func(tmpName string) error {
		fh, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}

		if err := sink.encode(fh, tbl); err != nil {
			fh.Close()
			return err
		}

		return fh.Close()
	})
}

func (sink *CSV) encode(fh *os.File, tbl *data.Table) error {
	writer := gocsv.DefaultCSVWriter(fh)
	columns := tbl.Columns()

	header := make([]string, 0, len(columns)+1)
	header = append(header, indexLabel(tbl, sink.IndexLabel))
	header = append(header, columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	values := make([]data.Series, len(columns))
	for idx, col := range columns {
		series, err := tbl.Column(col)
		if err != nil {
			return err
		}
		values[idx] = series
	}

	row := make([]string, len(columns)+1)
	for rowIdx, period := range tbl.Periods() {
		row[0] = period.Format(dateFormat)
		for colIdx := range columns {
			row[colIdx+1] = formatFloat(values[colIdx][rowIdx])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
