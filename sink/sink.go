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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/penny-vault/pvratios/data"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")
)

const (
	CSVFormat     = "csv"
	ParquetFormat = "parquet"

	dateFormat = "2006-01-02"
)

// Sink receives the finished table of a security and returns the path of
// the file it was written to
type Sink interface {
	Write(ctx context.Context, code string, tbl *data.Table) (string, error)
}

// New returns the file sink for format writing into dir
func New(format, dir, indexLabel string) (Sink, error) {
	switch format {
	case CSVFormat, "":
		return &CSV{Dir: dir, IndexLabel: indexLabel}, nil
	case ParquetFormat:
		return &Parquet{Dir: dir, IndexLabel: indexLabel, Parallelism: 4}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// writeAtomic calls fn with a temporary file next to fn's final location and
// renames it into place only if fn succeeds
func writeAtomic(dir, name string, fn func(tmpName string) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := fn(tmpName); err != nil {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warn().Err(rmErr).Str("FileName", tmpName).Msg("could not remove temporary output")
		}
		return "", err
	}

	outName := filepath.Join(dir, name)
	if err := os.Rename(tmpName, outName); err != nil {
		return "", err
	}

	return outName, nil
}

func indexLabel(tbl *data.Table, fallback string) string {
	if tbl.IndexLabel != "" {
		return tbl.IndexLabel
	}
	return fallback
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
