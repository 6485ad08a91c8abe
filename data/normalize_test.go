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
package data_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvratios/data"
)

var _ = Describe("Normalize", func() {
	rules := data.DefaultRenameRules()

	It("strips the total marker and swaps full-width parentheses", func() {
		Expect(data.NormalizeName("营业总收入*", rules)).To(Equal("营业总收入"))
		Expect(data.NormalizeName("其他应收款（合计）", rules)).To(Equal("其他应收款(合计)"))
		Expect(data.NormalizeName("所有者权益合计*_期初", rules)).To(Equal("所有者权益合计_期初"))
		Expect(data.NormalizeName("存货周转率", rules)).To(Equal("存货周转率"))
	})

	It("applies each rule once and in order", func() {
		chained := []data.RenameRule{{Find: "a", Replace: "b"}, {Find: "b", Replace: "c"}, {Find: "", Replace: "x"}}
		Expect(data.NormalizeName("ab", chained)).To(Equal("cc"))
	})

	It("renames columns, orders rows newest first and zeroes non-finite values", func() {
		tbl := newTable("2020-12-31", "2022-12-31", "2021-12-31")
		Expect(tbl.Set(data.TotalRevenue, data.Series{1, math.Inf(1), 3})).To(Succeed())
		Expect(tbl.Set(data.GrossMargin, data.Series{math.NaN(), 0.5, math.Inf(-1)})).To(Succeed())

		Expect(data.Normalize(tbl, rules)).To(Succeed())

		Expect(tbl.Columns()).To(Equal([]string{"营业总收入", "毛利率"}))
		Expect(tbl.Periods()).To(Equal([]time.Time{day("2022-12-31"), day("2021-12-31"), day("2020-12-31")}))
		Expect(column(tbl, "营业总收入")).To(Equal(data.Series{0, 3, 1}))
		Expect(column(tbl, "毛利率")).To(Equal(data.Series{0.5, 0, 0}))
	})

	It("fails when two columns normalize to the same name", func() {
		tbl := newTable("2022-12-31")
		Expect(tbl.Set("净利润*", data.Series{1})).To(Succeed())
		Expect(tbl.Set("净利润", data.Series{2})).To(Succeed())

		Expect(data.Normalize(tbl, rules)).To(MatchError(data.ErrColumnCollision))
	})
})
