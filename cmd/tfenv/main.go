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
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ukalifon/assisted-test-infra/internal/log"
	"github.com/ukalifon/assisted-test-infra/internal/terraform"
)

func newTerraformClient(ctx *cli.Context) (*terraform.Client, error) {
	client, err := terraform.NewClient(ctx.String("working-dir"), ctx.String("plugin-dir"))
	if err != nil {
		return nil, err
	}

	if err := client.Init(ctx.Context); err != nil {
		return nil, fmt.Errorf("terraform init: %w", err)
	}
	return client, nil
}

func applyAction(ctx *cli.Context) error {
	client, err := newTerraformClient(ctx)
	if err != nil {
		return err
	}
	return client.Apply(ctx.Context, ctx.Bool("refresh"))
}

func destroyAction(ctx *cli.Context) error {
	client, err := newTerraformClient(ctx)
	if err != nil {
		return err
	}
	return client.Destroy(ctx.Context)
}

func stateAction(ctx *cli.Context) error {
	client, err := terraform.NewClient(ctx.String("working-dir"), ctx.String("plugin-dir"))
	if err != nil {
		return err
	}

	state, err := client.State()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "    ")
	return encoder.Encode(state)
}

func setVIPAction(ctx *cli.Context) error {
	apiVIP := ctx.Args().First()
	if apiVIP == "" {
		return fmt.Errorf("api vip address is required")
	}

	client, err := newTerraformClient(ctx)
	if err != nil {
		return err
	}
	return client.SetAPIVIP(ctx.Context, apiVIP)
}

func main() {
	app := cli.NewApp()
	app.Name = "tfenv"
	app.Usage = "Manage terraform-provisioned virtual-machine test environments"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "working-dir",
			Usage:    "Terraform working directory of the environment",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "plugin-dir",
			Usage: "Directory with pre-installed terraform providers",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "Log level (trace, debug, info, warn, error)",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		log.SetLevel(ctx.String("log-level"))
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:   "apply",
			Usage:  "Apply the environment's var file",
			Action: applyAction,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "refresh",
					Value: true,
					Usage: "Refresh resource state before applying",
				},
			},
		},
		{
			Name:   "destroy",
			Usage:  "Tear the environment down",
			Action: destroyAction,
		},
		{
			Name:   "state",
			Usage:  "Print the environment's state file",
			Action: stateAction,
		},
		{
			Name:      "set-vip",
			Usage:     "Move the cluster API virtual IP and apply",
			ArgsUsage: "address",
			Action:    setVIPAction,
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Printf("tfenv error %v\n", err)
		os.Exit(1)
	}
}
