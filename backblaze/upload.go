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
package backblaze

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/kothar/go-backblaze"
	"github.com/rs/zerolog/log"
)

var (
	ErrBucketNotFound = errors.New("bucket not found")
)

// Uploader copies output files into a directory of a backblaze b2 bucket.
// The bucket is looked up once and shared by all workers.
type Uploader struct {
	ApplicationID  string
	ApplicationKey string
	BucketName     string
	Dir            string

	once   sync.Once
	bucket *backblaze.Bucket
	err    error
}

func (uploader *Uploader) connect() (*backblaze.Bucket, error) {
	uploader.once.Do(func() {
		b2, err := backblaze.NewB2(backblaze.Credentials{
			KeyID:          uploader.ApplicationID,
			ApplicationKey: uploader.ApplicationKey,
		})
		if err != nil {
			log.Error().Err(err).Str("BucketName", uploader.BucketName).Msg("authorize backblaze failed")
			uploader.err = err
			return
		}

		bucket, err := b2.Bucket(uploader.BucketName)
		if err != nil {
			log.Error().Err(err).Str("BucketName", uploader.BucketName).Msg("lookup bucket failed")
			uploader.err = err
			return
		}
		if bucket == nil {
			log.Error().Str("BucketName", uploader.BucketName).Msg("bucket does not exist")
			uploader.err = fmt.Errorf("%w: %s", ErrBucketNotFound, uploader.BucketName)
			return
		}

		uploader.bucket = bucket
	})

	return uploader.bucket, uploader.err
}

// Upload saves fn under Dir using its base name
func (uploader *Uploader) Upload(fn string) error {
	bucket, err := uploader.connect()
	if err != nil {
		return err
	}

	reader, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer reader.Close()

	outName := path.Join(uploader.Dir, filepath.Base(fn))
	metadata := make(map[string]string)

	file, err := bucket.UploadFile(outName, metadata, reader)
	if err != nil {
		log.Error().Err(err).Str("FileName", outName).Str("BucketName", uploader.BucketName).Msg("save file to backblaze failed")
		return err
	}

	log.Info().Str("FileName", file.Name).Int64("Size", file.ContentLength).Str("ID", file.ID).Msg("uploaded file to backblaze")
	return nil
}
