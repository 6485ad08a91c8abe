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
package config_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/penny-vault/pvratios/config"
	"github.com/penny-vault/pvratios/data"
	"github.com/penny-vault/pvratios/statement"
)

var _ = Describe("Config", func() {
	var v *viper.Viper

	BeforeEach(func() {
		v = viper.New()
		config.SetDefaults(v)
	})

	It("loads the defaults", func() {
		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Workers).To(Equal(10))
		Expect(cfg.Format).To(Equal("csv"))
		Expect(cfg.Join).To(Equal("inner"))
		Expect(cfg.Sentinel).To(Equal(statement.DefaultSentinel))
		Expect(cfg.Rename).To(Equal(data.DefaultRenameRules()))
		Expect(cfg.Whitelist).To(BeNil())
	})

	It("reads a TOML file", func() {
		fn := filepath.Join(GinkgoT().TempDir(), "pvratios.toml")
		Expect(os.WriteFile(fn, []byte(strings.Join([]string{
			`data_dir = "/srv/statements"`,
			`workers = 4`,
			`format = "parquet"`,
			`join = "outer"`,
			`code_lists = ["SH.code", "SZ.code"]`,
			`[[rename]]`,
			`find = "*"`,
			`replace = ""`,
			`[backblaze]`,
			`bucket = "ratios"`,
			`application_id = "id"`,
			`application_key = "key"`,
		}, "\n")), 0644)).To(Succeed())

		v.SetConfigFile(fn)
		Expect(v.ReadInConfig()).To(Succeed())

		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DataDir).To(Equal("/srv/statements"))
		Expect(cfg.Workers).To(Equal(4))
		Expect(cfg.Format).To(Equal("parquet"))
		Expect(cfg.CodeLists).To(Equal([]string{"SH.code", "SZ.code"}))
		Expect(cfg.Rename).To(Equal([]data.RenameRule{{Find: "*", Replace: ""}}))
		Expect(cfg.Backblaze.Bucket).To(Equal("ratios"))

		loader := cfg.NewLoader()
		Expect(loader.Dir).To(Equal("/srv/statements"))
		Expect(loader.Join).To(Equal(statement.OuterJoin))
	})

	It("lets the environment override settings", func() {
		Expect(os.Setenv("PVRATIOS_WORKERS", "3")).To(Succeed())
		DeferCleanup(os.Unsetenv, "PVRATIOS_WORKERS")
		Expect(os.Setenv("PVRATIOS_LOG_LEVEL", "debug")).To(Succeed())
		DeferCleanup(os.Unsetenv, "PVRATIOS_LOG_LEVEL")

		config.BindEnv(v)
		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Workers).To(Equal(3))
		Expect(cfg.Log.Level).To(Equal("debug"))
	})

	It("rejects an unknown output format", func() {
		v.Set("format", "xlsx")
		_, err := config.Load(v)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Format"))
	})

	It("requires credentials when uploads are enabled", func() {
		v.Set("backblaze.bucket", "ratios")
		_, err := config.Load(v)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("ApplicationID"))
	})

	It("replaces the whitelist when one is configured", func() {
		whitelist := statement.DefaultWhitelist()
		whitelist.CashFlow.Columns = whitelist.CashFlow.Columns[:1]

		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		cfg.Whitelist = &whitelist

		Expect(cfg.NewLoader().Whitelist.CashFlow.Columns).To(Equal([]string{data.OperatingCashFlow}))
	})
})
