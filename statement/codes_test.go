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
package statement_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvratios/statement"
	"github.com/penny-vault/pvratios/statement/statementtest"
)

var _ = Describe("Code lists", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("concatenates the lists in order without repeats", func() {
		sh := filepath.Join(dir, "SH.code")
		sz := filepath.Join(dir, "SZ.code")
		Expect(statementtest.WriteCodeList(sh, "600585.SH", "600519.SH")).To(Succeed())
		Expect(os.WriteFile(sz, []byte("000002.SZ\n\n  000001.SZ  \n600585.SH\n"), 0644)).To(Succeed())

		codes, err := statement.ReadCodeLists(sh, sz)
		Expect(err).NotTo(HaveOccurred())
		Expect(codes).To(Equal([]string{"600585.SH", "600519.SH", "000002.SZ", "000001.SZ"}))
	})

	It("fails for a list that does not exist", func() {
		_, err := statement.ReadCodeLists(filepath.Join(dir, "missing.code"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})
})
