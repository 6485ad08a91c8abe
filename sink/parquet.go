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
	"fmt"
	"strings"

	"github.com/penny-vault/pvratios/data"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// Parquet writes one snappy compressed parquet file per security. The period
// is stored as a UTF8 string column followed by one DOUBLE column per ratio.
type Parquet struct {
	Dir         string
	IndexLabel  string
	Parallelism int64
}

var parquetNameReplacer = strings.NewReplacer(",", "_", "=", "_")

func (sink *Parquet) Write(ctx context.Context, code string, tbl *data.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return writeAtomic(sink.Dir, code+".parquet", func(tmpName string) error {
		return sink.encode(tmpName, tbl)
	})
}

func (sink *Parquet) encode(fn string, tbl *data.Table) error {
	columns := tbl.Columns()

	md := make([]string, 0, len(columns)+1)
	md = append(md, fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8", parquetNameReplacer.Replace(indexLabel(tbl, sink.IndexLabel))))
	for _, col := range columns {
		md = append(md, fmt.Sprintf("name=%s, type=DOUBLE", parquetNameReplacer.Replace(col)))
	}

	fw, err := local.NewLocalFileWriter(fn)
	if err != nil {
		return err
	}

	np := sink.Parallelism
	if np <= 0 {
		np = 1
	}

	pw, err := writer.NewCSVWriter(md, fw, np)
	if err != nil {
		fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	values := make([]data.Series, len(columns))
	for idx, col := range columns {
		series, err := tbl.Column(col)
		if err != nil {
			fw.Close()
			return err
		}
		values[idx] = series
	}

	for rowIdx, period := range tbl.Periods() {
		rec := make([]interface{}, len(columns)+1)
		rec[0] = period.Format(dateFormat)
		for colIdx := range columns {
			rec[colIdx+1] = values[colIdx][rowIdx]
		}
		if err := pw.Write(rec); err != nil {
			fw.Close()
			return err
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return err
	}

	return fw.Close()
}
