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
	"context"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvratios/data"
	"github.com/penny-vault/pvratios/statement"
	"github.com/penny-vault/pvratios/statement/statementtest"
)

const code = "600585.SH"

func day(val string) time.Time {
	dt, err := time.Parse("2006-01-02", val)
	Expect(err).NotTo(HaveOccurred())
	return dt
}

var _ = Describe("Loader", func() {
	var (
		dir       string
		loader    *statement.Loader
		whitelist statement.Whitelist
		ctx       context.Context
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		loader = statement.NewLoader(dir)
		whitelist = statement.DefaultWhitelist()
		ctx = context.Background()
	})

	Context("with statements reporting different periods", func() {
		BeforeEach(func() {
			Expect(statementtest.Write(dir, code, whitelist.Income,
				[]string{"2022-12-31", "2022-09-30", "2021-12-31"}, statementtest.Ones)).To(Succeed())
			Expect(statementtest.Write(dir, code, whitelist.Balance,
				[]string{"2022-12-31", "2021-12-31"}, statementtest.Ones)).To(Succeed())
			Expect(statementtest.Write(dir, code, whitelist.CashFlow,
				[]string{"2020-12-31", "2021-12-31", "2022-12-31"}, statementtest.Ones)).To(Succeed())
		})

		It("keeps the periods reported by every statement, newest first", func() {
			tbl, err := loader.Load(ctx, code)
			Expect(err).NotTo(HaveOccurred())
			Expect(tbl.Periods()).To(Equal([]time.Time{day("2022-12-31"), day("2021-12-31")}))
		})

		It("keeps every period with an outer join and fills gaps with 0", func() {
			loader.Join = statement.OuterJoin
			tbl, err := loader.Load(ctx, code)
			Expect(err).NotTo(HaveOccurred())
			Expect(tbl.Len()).To(Equal(4))

			row, ok := tbl.Row(day("2022-09-30"))
			Expect(ok).To(BeTrue())

			val, err := tbl.Value(data.TotalAssets, row)
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal(0.0))

			val, err = tbl.Value(data.TotalRevenue, row)
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal(1.0))
		})

		It("selects only whitelisted columns and applies aliases", func() {
			tbl, err := loader.Load(ctx, code)
			Expect(err).NotTo(HaveOccurred())

			numCols := len(whitelist.Income.Columns) + len(whitelist.Balance.Columns) + len(whitelist.CashFlow.Columns)
			Expect(tbl.Columns()).To(HaveLen(numCols))
			Expect(tbl.Has(data.FixedAssets)).To(BeTrue())
			Expect(tbl.Has("固定资产（合计）")).To(BeFalse())
			Expect(tbl.Has("备注")).To(BeFalse())
			Expect(tbl.Columns()[0]).To(Equal(data.TotalRevenue))
		})

		It("takes the index label from the income statement header", func() {
			tbl, err := loader.Load(ctx, code)
			Expect(err).NotTo(HaveOccurred())
			Expect(tbl.IndexLabel).To(Equal(statement.DefaultIndexLabel))
		})
	})

	It("reads sentinel and empty cells as 0", func() {
		cells := statementtest.Values(map[string]map[string]string{
			data.Inventory:    {"2022-12-31": "--"},
			data.Cash:         {"2022-12-31": ""},
			data.TotalRevenue: {"2022-12-31": "1234.5"},
		})
		Expect(statementtest.WriteAll(dir, code, []string{"2022-12-31"}, cells)).To(Succeed())

		tbl, err := loader.Load(ctx, code)
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.Value(data.Inventory, 0)).To(Equal(0.0))
		Expect(tbl.Value(data.Cash, 0)).To(Equal(0.0))
		Expect(tbl.Value(data.TotalRevenue, 0)).To(Equal(1234.5))
	})

	It("accepts compact period dates", func() {
		Expect(statementtest.WriteAll(dir, code, []string{"20221231", "20211231"}, statementtest.Ones)).To(Succeed())

		tbl, err := loader.Load(ctx, code)
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.Periods()).To(Equal([]time.Time{day("2022-12-31"), day("2021-12-31")}))
	})

	It("reports a missing statement file", func() {
		Expect(statementtest.Write(dir, code, whitelist.Income, []string{"2022-12-31"}, statementtest.Ones)).To(Succeed())
		Expect(statementtest.Write(dir, code, whitelist.Balance, []string{"2022-12-31"}, statementtest.Ones)).To(Succeed())

		_, err := loader.Load(ctx, code)
		Expect(err).To(MatchError(statement.ErrMissingSource))
	})

	It("reports a whitelisted column missing from a statement", func() {
		Expect(statementtest.WriteAll(dir, code, []string{"2022-12-31"}, statementtest.Ones)).To(Succeed())

		schema := whitelist.CashFlow
		schema.Columns = schema.Columns[1:]
		Expect(statementtest.Write(dir, code, schema, []string{"2022-12-31"}, statementtest.Ones)).To(Succeed())

		_, err := loader.Load(ctx, code)
		Expect(err).To(MatchError(statement.ErrSchemaMismatch))
	})

	It("reports a period that is not a date", func() {
		Expect(statementtest.WriteAll(dir, code, []string{"last year"}, statementtest.Ones)).To(Succeed())

		_, err := loader.Load(ctx, code)
		Expect(err).To(MatchError(statement.ErrInvalidDate))
	})

	It("reports a value that is not a number", func() {
		cells := statementtest.Values(map[string]map[string]string{
			data.NetProfit: {"2022-12-31": "n/a"},
		})
		Expect(statementtest.WriteAll(dir, code, []string{"2022-12-31"}, cells)).To(Succeed())

		_, err := loader.Load(ctx, code)
		Expect(err).To(MatchError(statement.ErrInvalidValue))
	})

	It("reports a period listed twice in a statement", func() {
		Expect(statementtest.WriteAll(dir, code, []string{"2022-12-31", "2022-12-31"}, statementtest.Ones)).To(Succeed())

		_, err := loader.Load(ctx, code)
		Expect(err).To(MatchError(data.ErrDuplicatePeriod))
	})

	It("reports an empty statement", func() {
		Expect(statementtest.WriteAll(dir, code, []string{"2022-12-31"}, statementtest.Ones)).To(Succeed())
		Expect(statementtest.WriteRaw(filepath.Join(dir, code+"_income.csv"), [][]string{})).To(Succeed())

		_, err := loader.Load(ctx, code)
		Expect(err).To(MatchError(statement.ErrEmptyStatement))
	})

	It("stops when the context is canceled", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := loader.Load(canceled, code)
		Expect(err).To(MatchError(context.Canceled))
	})
})
