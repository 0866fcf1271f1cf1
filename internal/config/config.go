// Copyright 2026 The Assisted Test Infra Authors
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

// Package config holds the event scraper settings, loadable from a YAML file
// with command line flags taking precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes YAML duration strings such as "5m" or "90s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Elasticsearch struct {
	Server   string `yaml:"server"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Index    string `yaml:"index"`
}

type Config struct {
	InventoryURL      string        `yaml:"inventory_url"`
	Elasticsearch     Elasticsearch `yaml:"elasticsearch"`
	BackupDestination string        `yaml:"backup_destination"`
	RetryInterval     Duration      `yaml:"retry_interval"`
	MaxEvents         int           `yaml:"max_events"`
	LogLevel          string        `yaml:"log_level"`
}

// Default returns the settings matching the service's historical behavior:
// five minute retry interval, at most 1000 events per cluster per cycle.
func Default() Config {
	return Config{
		Elasticsearch: Elasticsearch{Index: "assisted-service-events"},
		RetryInterval: Duration(5 * time.Minute),
		MaxEvents:     1000,
		LogLevel:      "info",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields every run needs.
func (c *Config) Validate() error {
	if c.InventoryURL == "" {
		return fmt.Errorf("inventory url is required")
	}
	if c.RetryInterval <= 0 {
		return fmt.Errorf("retry interval must be positive")
	}
	if c.MaxEvents <= 0 {
		return fmt.Errorf("max events must be positive")
	}
	return nil
}
