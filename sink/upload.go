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
	"os"

	"github.com/penny-vault/pvratios/data"
	"github.com/rs/zerolog/log"
)

// Uploader copies a finished output file to remote storage
type Uploader interface {
	Upload(fn string) error
}

// Uploading wraps a sink and uploads every file it writes. An upload
// failure fails the security and removes its local file.
type Uploading struct {
	Next     Sink
	Uploader Uploader
}

func (sink *Uploading) Write(ctx context.Context, code string, tbl *data.Table) (string, error) {
	fn, err := sink.Next.Write(ctx, code, tbl)
	if err != nil {
		return "", err
	}

	if err := sink.Uploader.Upload(fn); err != nil {
		if rmErr := os.Remove(fn); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warn().Err(rmErr).Str("FileName", fn).Msg("could not remove output after failed upload")
		}
		return "", err
	}

	return fn, nil
}
