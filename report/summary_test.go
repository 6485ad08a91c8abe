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
package report_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvratios/data"
	"github.com/penny-vault/pvratios/report"
	"github.com/penny-vault/pvratios/statement"
)

var _ = Describe("RunSummary", func() {
	var summary *report.RunSummary

	BeforeEach(func() {
		summary = report.New("pvratios compute", 3)
		summary.StartTime = time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
		summary.EndTime = summary.StartTime.Add(90 * time.Second)
		summary.NumSucceeded = 1
		summary.Outputs = []string{"ratios/600585.SH.csv"}
		summary.Failures = []report.Failure{
			{Code: "000001.SZ", Class: report.MissingSource, Error: "statement file not found"},
			{Code: "000002.SZ", Class: report.InvalidInput, Error: "cannot parse period date"},
		}
	})

	DescribeTable("classifies errors",
		func(err error, class report.ErrorClass) {
			Expect(report.Classify(err)).To(Equal(class))
		},
		Entry("missing statement", fmt.Errorf("load x: %w", statement.ErrMissingSource), report.MissingSource),
		Entry("missing column", fmt.Errorf("load x: %w", statement.ErrSchemaMismatch), report.SchemaMismatch),
		Entry("missing ratio input", fmt.Errorf("compute x: %w", data.ErrColumnNotFound), report.SchemaMismatch),
		Entry("bad date", statement.ErrInvalidDate, report.InvalidInput),
		Entry("bad value", statement.ErrInvalidValue, report.InvalidInput),
		Entry("duplicate period", data.ErrDuplicatePeriod, report.InvalidInput),
		Entry("canceled", fmt.Errorf("load x: %w", context.Canceled), report.Canceled),
		Entry("anything else", errors.New("disk full"), report.Other),
	)

	It("names the saved file after the run", func() {
		Expect(summary.FileName()).To(Equal("pvratios-compute-2024-05-01-083000.json"))
	})

	It("reads back what it saves", func() {
		dir := GinkgoT().TempDir()
		fn, err := summary.Save(dir)
		Expect(err).NotTo(HaveOccurred())

		loaded, err := report.Load(fn)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.RunID).To(Equal(summary.RunID))
		Expect(loaded.StartTime.Equal(summary.StartTime)).To(BeTrue())
		Expect(loaded.Failures).To(Equal(summary.Failures))
		Expect(loaded.Outputs).To(Equal(summary.Outputs))
	})

	It("finds the most recent summary in a directory", func() {
		dir := GinkgoT().TempDir()
		_, err := summary.Save(dir)
		Expect(err).NotTo(HaveOccurred())

		later := report.New("pvratios compute", 1)
		later.StartTime = summary.StartTime.Add(24 * time.Hour)
		_, err = later.Save(dir)
		Expect(err).NotTo(HaveOccurred())

		latest, err := report.Latest(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(latest.RunID).To(Equal(later.RunID))
	})

	It("reports an empty report directory", func() {
		_, err := report.Latest(GinkgoT().TempDir())
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("counts failures by class", func() {
		Expect(summary.NumFailed()).To(Equal(2))
		Expect(summary.FailuresByClass()).To(Equal(map[report.ErrorClass]int{
			report.MissingSource: 1,
			report.InvalidInput:  1,
		}))
	})

	It("renders a markdown summary", func() {
		doc := summary.Markdown()
		Expect(doc).To(HavePrefix("# pvratios compute\n"))
		Expect(doc).To(ContainSubstring("Securities: 3"))
		Expect(doc).To(ContainSubstring("Failed: 2"))
		Expect(doc).To(ContainSubstring("| missing-source | 1 |"))
		Expect(doc).To(ContainSubstring("**000002.SZ** [invalid-input]"))
	})
})
