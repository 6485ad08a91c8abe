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
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Uploader", func() {
	It("reuses the connection error for every upload", func() {
		connectErr := errors.New("unauthorized")
		uploader := &Uploader{BucketName: "ratios"}
		uploader.once.Do(func() { uploader.err = connectErr })

		Expect(uploader.Upload("a.csv")).To(MatchError(connectErr))
		Expect(uploader.Upload("b.csv")).To(MatchError(connectErr))
	})

	It("fails for an output file that does not exist", func() {
		uploader := &Uploader{BucketName: "ratios"}
		uploader.once.Do(func() {})

		err := uploader.Upload(filepath.Join(GinkgoT().TempDir(), "missing.csv"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})
})
