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
package cmd

import (
	"github.com/penny-vault/pvratios/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [summary.json]",
	Short: "Display the summary of the most recent run",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			summary *report.RunSummary
			err     error
		)

		if len(args) == 1 {
			summary, err = report.Load(args[0])
		} else {
			cfg := loadConfig()
			if cfg.ReportDir == "" {
				log.Fatal().Msg("report_dir is not configured; pass a summary file instead")
			}
			summary, err = report.Latest(cfg.ReportDir)
		}

		if err != nil {
			log.Fatal().Err(err).Msg("could not load run summary")
		}

		render(summary.Markdown())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
