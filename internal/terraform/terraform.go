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

// Package terraform is a thin pass-through over the terraform binary for
// managing virtual-machine test environments. All state semantics belong to
// terraform itself; this wrapper only builds argument lists and merges
// variable files.
package terraform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ukalifon/assisted-test-infra/internal/log"
)

const (
	varFile   = "terraform.tfvars.json"
	stateFile = "terraform.tfstate"

	defaultPluginDir = "/root/.terraform.d/plugins/"
)

type Client struct {
	workingDir string
	pluginDir  string

	// overridable for tests
	execPath string
}

func NewClient(workingDir, pluginDir string) (*Client, error) {
	info, err := os.Stat(workingDir)
	if err != nil {
		return nil, fmt.Errorf("working dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("working dir %s is not a directory", workingDir)
	}

	if pluginDir == "" {
		pluginDir = defaultPluginDir
	}

	log.Infof("terraform working dir %s", workingDir)
	return &Client{
		workingDir: workingDir,
		pluginDir:  pluginDir,
		execPath:   "terraform",
	}, nil
}

func (c *Client) Init(ctx context.Context) error {
	_, err := c.run(ctx, "init", "-plugin-dir="+c.pluginDir)
	return err
}

// Apply applies the pinned var file against the pinned state file without
// prompting. refresh=false skips re-reading remote resource state first.
func (c *Client) Apply(ctx context.Context, refresh bool) error {
	_, err := c.run(ctx,
		"apply",
		"-no-color",
		"-input=false",
		"-auto-approve",
		fmt.Sprintf("-refresh=%t", refresh),
		"-state="+stateFile,
		"-var-file="+varFile,
	)
	return err
}

func (c *Client) Destroy(ctx context.Context) error {
	_, err := c.run(ctx,
		"destroy",
		"-no-color",
		"-input=false",
		"-auto-approve",
		"-state="+stateFile,
		"-var-file="+varFile,
	)
	return err
}

// State decodes the state file in the working directory.
func (c *Client) State() (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(c.workingDir, stateFile))
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return state, nil
}

// ChangeVariables merges vars into the var file, rewrites it and applies.
func (c *Client) ChangeVariables(ctx context.Context, vars map[string]any, refresh bool) error {
	path := filepath.Join(c.workingDir, varFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read vars: %w", err)
	}

	var tfvars map[string]any
	if err := json.Unmarshal(data, &tfvars); err != nil {
		return fmt.Errorf("parse vars: %w", err)
	}

	for k, v := range vars {
		tfvars[k] = v
	}

	merged, err := json.Marshal(tfvars)
	if err != nil {
		return fmt.Errorf("marshal vars: %w", err)
	}
	if err := os.WriteFile(path, merged, 0o644); err != nil {
		return fmt.Errorf("write vars: %w", err)
	}

	return c.Apply(ctx, refresh)
}

// SetAPIVIP moves the cluster API virtual IP and applies the change.
func (c *Client) SetAPIVIP(ctx context.Context, apiVIP string) error {
	return c.ChangeVariables(ctx, map[string]any{"api_vip": apiVIP}, true)
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.execPath, args...)
	cmd.Dir = c.workingDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("running terraform %v", args)
	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("terraform %s: %w: %s",
			args[0], err, stderr.String())
	}
	return stdout.String(), nil
}
