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
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/google/uuid"
	"github.com/penny-vault/pvratios/data"
	"github.com/penny-vault/pvratios/report"
	"github.com/penny-vault/pvratios/sink"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultWorkers          = 10
	DefaultProgressInterval = 5 * time.Second
)

// Loader returns the merged statement table of a security
type Loader interface {
	Load(ctx context.Context, code string) (*data.Table, error)
}

// Runner computes the ratio panel of many securities concurrently. Each
// security is processed on its own; a failure is recorded and never stops
// the other securities.
type Runner struct {
	RunID            uuid.UUID
	Name             string
	Loader           Loader
	Sink             sink.Sink
	Workers          int
	Rules            []data.RenameRule
	ProgressInterval time.Duration
}

// Process runs load, compute, normalize and write for a single security and
// returns the path of the written output
func (runner *Runner) Process(ctx context.Context, code string) (string, error) {
	tbl, err := runner.Loader.Load(ctx, code)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", code, err)
	}

	if err := data.ComputeRatios(tbl); err != nil {
		return "", err
	}

	rules := runner.Rules
	if rules == nil {
		rules = data.DefaultRenameRules()
	}

	if err := data.Normalize(tbl, rules); err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	fn, err := runner.Sink.Write(ctx, code, tbl)
	if err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	return fn, nil
}

// Run processes codes with at most Workers securities in flight. The returned
// error is non-nil only when ctx is canceled before all codes are processed.
func (runner *Runner) Run(ctx context.Context, codes []string) (*report.RunSummary, error) {
	workers := runner.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	interval := runner.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	summary := report.New(runner.Name, len(codes))
	if runner.RunID != uuid.Nil {
		summary.RunID = runner.RunID
	}
	failures := haxmap.New[string, report.Failure]()
	outputs := haxmap.New[string, string]()

	var completed atomic.Int64
	sometimes := rate.Sometimes{Interval: interval}
	started := time.Now()

	log.Info().Str("RunID", summary.RunID.String()).Int("NumSecurities", len(codes)).Int("Workers", workers).Msg("starting ratio computation")

	group := &errgroup.Group{}
	group.SetLimit(workers)

	for _, code := range codes {
		if ctx.Err() != nil {
			break
		}

		code := code
		group.Go(func() error {
			logger := log.With().Str("Code", code).Logger()
			unitCtx := logger.WithContext(ctx)

			fn, err := runner.Process(unitCtx, code)
			if err != nil {
				class := report.Classify(err)
				logger.Error().Err(err).Str("Class", string(class)).Msg("security failed")
				failures.Set(code, report.Failure{Code: code, Class: class, Error: err.Error()})
			} else {
				logger.Debug().Str("FileName", fn).Msg("wrote ratios")
				outputs.Set(code, fn)
			}

			numDone := completed.Add(1)
			sometimes.Do(func() {
				progress(zerolog.Ctx(unitCtx), started, int(numDone), len(codes))
			})

			return nil
		})
	}

	// errors are recorded per security and never returned by the workers
	_ = group.Wait()

	for _, code := range codes {
		if fn, ok := outputs.Get(code); ok {
			summary.Outputs = append(summary.Outputs, fn)
			summary.NumSucceeded++
			continue
		}

		failure, ok := failures.Get(code)
		if !ok {
			failure = report.Failure{Code: code, Class: report.Canceled, Error: context.Canceled.Error()}
			if err := ctx.Err(); err != nil {
				failure.Error = err.Error()
			}
		}
		summary.Failures = append(summary.Failures, failure)
	}

	sort.SliceStable(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].Code < summary.Failures[j].Code
	})

	summary.EndTime = time.Now()

	log.Info().Str("RunID", summary.RunID.String()).Int("NumSucceeded", summary.NumSucceeded).
		Int("NumFailed", summary.NumFailed()).Str("RunTime", summary.Duration().Round(time.Millisecond).String()).
		Msg("ratio computation finished")

	return summary, ctx.Err()
}

func progress(logger *zerolog.Logger, started time.Time, numDone, total int) {
	perItem := time.Since(started) / time.Duration(numDone)
	timeLeft := perItem * time.Duration(total-numDone)
	logger.Info().Int("Completed", numDone).Int("NumSecuritiesLeft", total-numDone).
		Str("SinceStarted", time.Since(started).Round(time.Second).String()).
		Str("ETA", timeLeft.Round(time.Second).String()).Msg("ratio computation progress")
}
