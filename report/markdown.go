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
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxListedFailures limits the failure list in the markdown summary
const maxListedFailures = 25

// Markdown returns a description of the run in markdown
func (summary *RunSummary) Markdown() string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString(fmt.Sprintf("# %s\n\n", summary.Name))
	builder.WriteString("## Details\n\n")
	builder.WriteString(fmt.Sprintf("  * Run ID: %s\n", summary.RunID))

	if summary.StartTime.IsZero() {
		builder.WriteString("  * Started: Never\n")
	} else {
		builder.WriteString(fmt.Sprintf("  * Started: %s (%s)\n", timeago.English.Format(summary.StartTime),
			summary.StartTime.Local().Format("01/02/2006 15:04:05")))
	}

	if !summary.EndTime.IsZero() {
		builder.WriteString(fmt.Sprintf("  * Run Time: %s\n", durafmt.Parse(summary.Duration().Round(time.Second)).String()))
	}

	builder.WriteString(p.Sprintf("  * Securities: %d\n", summary.NumSecurities))
	builder.WriteString(p.Sprintf("  * Succeeded: %d\n", summary.NumSucceeded))
	builder.WriteString(p.Sprintf("  * Failed: %d\n\n", summary.NumFailed()))

	if len(summary.Failures) == 0 {
		return builder.String()
	}

	builder.WriteString("## Failures\n\n")

	counts := summary.FailuresByClass()
	classes := make([]string, 0, len(counts))
	for class := range counts {
		classes = append(classes, string(class))
	}
	sort.Strings(classes)

	builder.WriteString("| Class | Count |\n|-------|------:|\n")
	for _, class := range classes {
		builder.WriteString(p.Sprintf("| %s | %d |\n", class, counts[ErrorClass(class)]))
	}
	builder.WriteString("\n")

	for idx, failure := range summary.Failures {
		if idx == maxListedFailures {
			builder.WriteString(p.Sprintf("  * ... and %d more\n", len(summary.Failures)-maxListedFailures))
			break
		}
		builder.WriteString(fmt.Sprintf("  * **%s** [%s] %s\n", failure.Code, failure.Class, failure.Error))
	}

	return builder.String()
}
