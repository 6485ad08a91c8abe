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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/penny-vault/pvratios/backblaze"
	"github.com/penny-vault/pvratios/config"
	"github.com/penny-vault/pvratios/healthcheck"
	"github.com/penny-vault/pvratios/pipeline"
	"github.com/penny-vault/pvratios/sink"
	"github.com/penny-vault/pvratios/statement"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute [code...]",
	Short: "Compute the ratio panel of securities",
	Long: `The compute sub-command reads the income, balance and cash flow statements of
each security from the data directory, computes its ratio panel and writes it to
the output directory. If no codes are provided then the securities listed in the
configured code lists are processed.

Statement files are named <code>_income.csv, <code>_asset.csv and <code>_cash.csv.
A security that fails is reported in the run summary and does not stop the others.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		codes := args
		if len(codes) == 0 {
			var err error
			codes, err = statement.ReadCodeLists(cfg.CodeLists...)
			if err != nil {
				log.Fatal().Err(err).Strs("CodeLists", cfg.CodeLists).Msg("could not read code lists")
			}
		}

		if len(codes) == 0 {
			log.Fatal().Msg("no securities to process; pass codes as arguments or configure code_lists")
		}

		out, err := newSink(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create output sink")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := &pipeline.Runner{
			RunID:   uuid.New(),
			Name:    "pvratios compute",
			Loader:  cfg.NewLoader(),
			Sink:    out,
			Workers: cfg.Workers,
			Rules:   cfg.Rename,
		}

		pinger := healthcheck.New(cfg.Healthchecks.CheckID)
		// ping failures are logged by the pinger
		_ = pinger.Start(runner.RunID.String())

		summary, runErr := runner.Run(ctx, codes)
		doc := summary.Markdown()

		if cfg.ReportDir != "" {
			fn, err := summary.Save(cfg.ReportDir)
			if err != nil {
				log.Error().Err(err).Str("ReportDir", cfg.ReportDir).Msg("could not save run summary")
			} else {
				log.Info().Str("FileName", fn).Msg("saved run summary")
			}
		}

		failed := runErr != nil || summary.NumSucceeded == 0
		if failed {
			_ = pinger.Fail(runner.RunID.String(), doc)
		} else {
			_ = pinger.Success(runner.RunID.String(), doc)
		}

		render(doc)

		if runErr != nil {
			log.Fatal().Err(runErr).Msg("run was interrupted")
		}
		if summary.NumSucceeded == 0 {
			log.Fatal().Int("NumFailed", summary.NumFailed()).Msg("no security could be processed")
		}
	},
}

func newSink(cfg *config.Config) (sink.Sink, error) {
	out, err := sink.New(cfg.Format, cfg.OutputDir, cfg.IndexLabel)
	if err != nil {
		return nil, err
	}

	if cfg.Backblaze.Bucket == "" {
		return out, nil
	}

	return &sink.Uploading{
		Next: out,
		Uploader: &backblaze.Uploader{
			ApplicationID:  cfg.Backblaze.ApplicationID,
			ApplicationKey: cfg.Backblaze.ApplicationKey,
			BucketName:     cfg.Backblaze.Bucket,
			Dir:            cfg.Backblaze.Dir,
		},
	}, nil
}

func render(doc string) {
	r, _ := glamour.NewTermRenderer(
		// detect background color and pick either the default dark or light theme
		glamour.WithAutoStyle(),
		// wrap output at specific width (default is 80)
		glamour.WithWordWrap(100),
	)

	out, err := r.Render(doc)
	if err != nil {
		log.Error().Err(err).Msg("could not render markdown document")
		fmt.Print(doc)
		return
	}

	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(computeCmd)

	flags := []struct {
		name  string
		key   string
		usage string
	}{
		{"data-dir", "data_dir", "directory holding the statement files"},
		{"output-dir", "output_dir", "directory the ratio files are written to"},
		{"report-dir", "report_dir", "directory run summaries are saved to"},
		{"format", "format", "output format (csv or parquet)"},
		{"join", "join", "period join of the three statements (inner or outer)"},
	}

	for _, flag := range flags {
		computeCmd.Flags().String(flag.name, "", flag.usage)
		if err := viper.BindPFlag(flag.key, computeCmd.Flags().Lookup(flag.name)); err != nil {
			log.Panic().Err(err).Str("Flag", flag.name).Msg("BindPFlag failed")
		}
	}

	computeCmd.Flags().IntP("workers", "w", 10, "number of securities processed concurrently")
	if err := viper.BindPFlag("workers", computeCmd.Flags().Lookup("workers")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for workers failed")
	}

	computeCmd.Flags().StringSlice("code-list", nil, "file listing one security code per line (repeatable)")
	if err := viper.BindPFlag("code_lists", computeCmd.Flags().Lookup("code-list")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for code-list failed")
	}
}
