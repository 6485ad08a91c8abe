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
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

type securityCode struct {
	Code string `csv:"code"`
}

// ReadCodeLists reads flat files holding one security code per line and
// returns the codes of all files in order. Blank lines and repeated codes
// are dropped.
func ReadCodeLists(paths ...string) ([]string, error) {
	codes := make([]string, 0, 5000)
	seen := make(map[string]bool)

	for _, fn := range paths {
		fh, err := os.Open(fn)
		if err != nil {
			return nil, fmt.Errorf("open code list: %w", err)
		}

		records := []*securityCode{}
		err = gocsv.UnmarshalWithoutHeaders(fh, &records)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("parse code list %s: %w", fn, err)
		}

		numRead := 0
		for _, record := range records {
			code := strings.TrimSpace(record.Code)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
			numRead++
		}

		log.Debug().Str("FileName", fn).Int("NumCodes", numRead).Msg("read code list")
	}

	return codes, nil
}
