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
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/penny-vault/pvratios/data"
	"github.com/penny-vault/pvratios/statement"
	"github.com/spf13/viper"
)

const EnvPrefix = "PVRATIOS"

type Config struct {
	DataDir    string   `mapstructure:"data_dir" toml:"data_dir" validate:"required"`
	OutputDir  string   `mapstructure:"output_dir" toml:"output_dir" validate:"required"`
	ReportDir  string   `mapstructure:"report_dir" toml:"report_dir"`
	CodeLists  []string `mapstructure:"code_lists" toml:"code_lists"`
	Workers    int      `mapstructure:"workers" toml:"workers" validate:"gte=1,lte=256"`
	Format     string   `mapstructure:"format" toml:"format" validate:"oneof=csv parquet"`
	Join       string   `mapstructure:"join" toml:"join" validate:"oneof=inner outer"`
	Sentinel   string   `mapstructure:"sentinel" toml:"sentinel"`
	IndexLabel string   `mapstructure:"index_label" toml:"index_label" validate:"required"`

	Rename    []data.RenameRule    `mapstructure:"rename" toml:"rename" validate:"dive"`
	Whitelist *statement.Whitelist `mapstructure:"whitelist" toml:"whitelist,omitempty"`

	Log          Log          `mapstructure:"log" toml:"log"`
	Healthchecks Healthchecks `mapstructure:"healthchecks" toml:"healthchecks"`
	Backblaze    Backblaze    `mapstructure:"backblaze" toml:"backblaze"`
}

type Log struct {
	Level  string `mapstructure:"level" toml:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `mapstructure:"format" toml:"format" validate:"oneof=console json"`
}

type Healthchecks struct {
	CheckID string `mapstructure:"check_id" toml:"check_id"`
}

type Backblaze struct {
	ApplicationID  string `mapstructure:"application_id" toml:"application_id" validate:"required_with=Bucket"`
	ApplicationKey string `mapstructure:"application_key" toml:"application_key" validate:"required_with=Bucket"`
	Bucket         string `mapstructure:"bucket" toml:"bucket"`
	Dir            string `mapstructure:"dir" toml:"dir"`
}

// SetDefaults registers the default value of every setting with v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("output_dir", "ratios")
	v.SetDefault("report_dir", "")
	v.SetDefault("code_lists", []string{})
	v.SetDefault("workers", 10)
	v.SetDefault("format", "csv")
	v.SetDefault("join", string(statement.InnerJoin))
	v.SetDefault("sentinel", statement.DefaultSentinel)
	v.SetDefault("index_label", statement.DefaultIndexLabel)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("healthchecks.check_id", "")

	v.SetDefault("backblaze.application_id", "")
	v.SetDefault("backblaze.application_key", "")
	v.SetDefault("backblaze.bucket", "")
	v.SetDefault("backblaze.dir", "ratios")
}

// BindEnv lets PVRATIOS_<KEY> environment variables override file settings
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals the settings held by v and validates them
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Rename) == 0 {
		cfg.Rename = data.DefaultRenameRules()
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration with the struct's validate tags
func (cfg *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NewLoader returns a statement loader configured from cfg
func (cfg *Config) NewLoader() *statement.Loader {
	loader := statement.NewLoader(cfg.DataDir)
	loader.Sentinel = cfg.Sentinel
	loader.Join = statement.JoinMode(cfg.Join)
	if cfg.Whitelist != nil {
		loader.Whitelist = *cfg.Whitelist
	}
	return loader
}
