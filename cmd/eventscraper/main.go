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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ukalifon/assisted-test-infra/internal/config"
	"github.com/ukalifon/assisted-test-infra/internal/inventory"
	"github.com/ukalifon/assisted-test-infra/internal/log"
	"github.com/ukalifon/assisted-test-infra/internal/scraper"
	"github.com/ukalifon/assisted-test-infra/internal/storage"
	"github.com/ukalifon/assisted-test-infra/internal/storage/backup"
)

// parseCmdConfig loads configuration from the optional config file, then lets
// command line arguments override it.
func parseCmdConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()

	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if ctx.Args().Len() > 0 {
		cfg.InventoryURL = ctx.Args().First()
	}
	if v := ctx.String("es_server"); v != "" {
		cfg.Elasticsearch.Server = v
	}
	if v := ctx.String("es_user"); v != "" {
		cfg.Elasticsearch.User = v
	}
	if v := ctx.String("es_pass"); v != "" {
		cfg.Elasticsearch.Password = v
	}
	if v := ctx.String("es_index"); v != "" {
		cfg.Elasticsearch.Index = v
	}
	if v := ctx.String("backup-destination"); v != "" {
		cfg.BackupDestination = v
	}
	if v := ctx.Duration("retry-interval"); v != 0 {
		cfg.RetryInterval = config.Duration(v)
	}
	if v := ctx.String("log-level"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, cfg.Validate()
}

// newScrapeEvents builds a scrape service with fresh clients. Called once per
// run so a restart after a failure starts from clean connections.
func newScrapeEvents(cfg config.Config) (*scraper.ScrapeEvents, error) {
	client, err := inventory.NewClient(cfg.InventoryURL)
	if err != nil {
		return nil, fmt.Errorf("inventory client: %w", err)
	}

	store, err := storage.NewWriter(&storage.InitContext{
		EsAddresses: cfg.Elasticsearch.Server,
		EsUsername:  cfg.Elasticsearch.User,
		EsPassword:  cfg.Elasticsearch.Password,
		EsIndex:     cfg.Elasticsearch.Index,
	})
	if err != nil {
		return nil, fmt.Errorf("storage writer: %w", err)
	}

	var backupWriter *backup.Writer
	if cfg.BackupDestination != "" {
		backupWriter, err = backup.NewWriter(cfg.BackupDestination)
		if err != nil {
			return nil, fmt.Errorf("backup writer: %w", err)
		}
	}

	return scraper.New(client, store, backupWriter, cfg.MaxEvents, cfg.RetryInterval.Std()), nil
}

func mainAction(cliCtx *cli.Context) error {
	cfg, err := parseCmdConfig(cliCtx)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(cliCtx.Context,
		syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// run-level restart loop: any failure tears the whole run down and a
	// fresh one starts after the retry interval
	for ctx.Err() == nil {
		service, err := newScrapeEvents(cfg)
		if err == nil {
			err = service.Run(ctx)
		}
		if err == nil {
			return nil
		}

		log.Warnf("scraping events failed with error %v, sleeping for %v and retrying",
			err, cfg.RetryInterval.Std())
		wait(ctx, cfg.RetryInterval.Std())
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "eventscraper"
	app.Usage = "Poll cluster install events from the inventory service and index them into Elasticsearch"
	app.ArgsUsage = "inventory_url"
	app.Action = mainAction
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "es_server",
			Aliases: []string{"es"},
			Usage:   "Elasticsearch server",
		},
		&cli.StringFlag{
			Name:    "es_user",
			Aliases: []string{"eu"},
			Usage:   "Elasticsearch user",
		},
		&cli.StringFlag{
			Name:    "es_pass",
			Aliases: []string{"ep"},
			Usage:   "Elasticsearch password",
		},
		&cli.StringFlag{
			Name:  "es_index",
			Usage: "Elasticsearch index for event documents",
		},
		&cli.StringFlag{
			Name:  "backup-destination",
			Usage: "Path to save backup, if empty no backup is saved",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML config file",
		},
		&cli.DurationFlag{
			Name:  "retry-interval",
			Usage: "Delay before restarting after a failed run",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (trace, debug, info, warn, error)",
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("eventscraper error %v\n", err)
		os.Exit(1)
	}
}
