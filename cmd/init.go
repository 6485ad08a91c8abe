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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"github.com/penny-vault/pvratios/config"
	"github.com/penny-vault/pvratios/data"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 2)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather settings and write the configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			log.Fatal().Err(err).Msg("could not load default configuration")
		}

		workers := strconv.Itoa(cfg.Workers)
		codeLists := strings.Join(cfg.CodeLists, ",")

		form := huh.NewForm(
			// Where statements are read from and ratios written to
			huh.NewGroup(
				huh.NewInput().
					Title("Directory holding the statement files:").
					Value(&cfg.DataDir).
					Validate(requireDir),

				huh.NewInput().
					Title("Directory the ratio files are written to:").
					Value(&cfg.OutputDir),

				huh.NewInput().
					Title("Code list files (comma separated):").
					Value(&codeLists),
			),

			// How securities are processed
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Output format").
					Options(huh.NewOption("CSV", "csv"), huh.NewOption("Parquet", "parquet")).
					Value(&cfg.Format),

				huh.NewSelect[string]().
					Title("Periods to keep when joining the statements").
					Options(huh.NewOption("Reported in all statements", "inner"), huh.NewOption("Reported in any statement", "outer")).
					Value(&cfg.Join),

				huh.NewInput().
					Title("Number of workers:").
					Value(&workers).
					Validate(func(val string) error {
						num, err := strconv.Atoi(val)
						if err != nil || num < 1 {
							return errors.New("must be a positive number")
						}
						return nil
					}),
			),

			// Optional integrations
			huh.NewGroup(integrationFields(cfg)...),
		)

		err = form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering settings")
		}

		cfg.Workers, _ = strconv.Atoi(workers)
		cfg.CodeLists = splitList(codeLists)
		if len(cfg.Rename) == 0 {
			cfg.Rename = data.DefaultRenameRules()
		}

		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("configuration is not valid")
		}

		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".pvratios.toml")
		log.Info().Str("ConfigFile", configFN).Msg("Saving settings to config file")
		configData, err := toml.Marshal(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0600)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		fmt.Println(bannerStyle.Render("pvratios is configured, run \"pvratios compute\" to begin"))
	},
}

// integrationFields asks for the healthchecks.io and Backblaze settings. The
// Backblaze credentials are required once a bucket is entered.
func integrationFields(cfg *config.Config) []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Key("healthchecks.check_id").
			Title("healthchecks.io check id (optional):").
			Value(&cfg.Healthchecks.CheckID),

		huh.NewInput().
			Key("backblaze.bucket").
			Title("Backblaze bucket for uploads (optional):").
			Value(&cfg.Backblaze.Bucket),

		huh.NewInput().
			Key("backblaze.application_id").
			Title("Backblaze application id:").
			Value(&cfg.Backblaze.ApplicationID).
			Validate(requiredWith(&cfg.Backblaze.Bucket)),

		huh.NewInput().
			Key("backblaze.application_key").
			Title("Backblaze application key:").
			EchoMode(huh.EchoModePassword).
			Value(&cfg.Backblaze.ApplicationKey).
			Validate(requiredWith(&cfg.Backblaze.Bucket)),
	}
}

// requiredWith rejects an empty value while other is set
func requiredWith(other *string) func(string) error {
	return func(val string) error {
		if strings.TrimSpace(*other) != "" && strings.TrimSpace(val) == "" {
			return errors.New("required when a bucket is set")
		}
		return nil
	}
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("not a directory")
	}
	return nil
}

func splitList(val string) []string {
	items := []string{}
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func init() {
	rootCmd.AddCommand(initCmd)
}
