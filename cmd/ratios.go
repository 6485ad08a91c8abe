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
	"fmt"
	"strings"

	"github.com/penny-vault/pvratios/data"
	"github.com/spf13/cobra"
)

var showReferences bool

// ratiosCmd represents the ratios command
var ratiosCmd = &cobra.Command{
	Use:   "ratios",
	Short: "List the computed ratios and their formulas",
	Long: `The ratios sub-command prints the columns added to every security in the
order they are computed. Output column names have the total marker "*" removed
and full-width parentheses replaced.`,
	Run: func(cmd *cobra.Command, args []string) {
		render(ratioCatalog(data.Steps, showReferences))
	},
}

func ratioCatalog(steps []data.Step, references bool) string {
	builder := strings.Builder{}
	builder.WriteString("# Ratios\n\n")
	builder.WriteString("| # | Column | Group | Formula |\n|--:|--------|-------|---------|\n")

	rules := data.DefaultRenameRules()
	num := 0
	for _, step := range steps {
		if step.Kind != data.RatioStep && !references {
			continue
		}
		num++
		builder.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", num, data.NormalizeName(step.Name, rules),
			step.Group, strings.ReplaceAll(data.NormalizeName(step.Formula, rules), "|", "\\|")))
	}

	return builder.String()
}

func init() {
	rootCmd.AddCommand(ratiosCmd)
	ratiosCmd.Flags().BoolVarP(&showReferences, "references", "r", false, "include period-start and year-over-year reference columns")
}
