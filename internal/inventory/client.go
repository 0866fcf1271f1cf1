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

// Package inventory is a client for the assisted-service REST API, the remote
// inventory of clusters under installation.
package inventory

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ukalifon/assisted-test-infra/internal/log"
	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

const apiPrefix = "/api/assisted-install/v1"

// Test environments serve the inventory API with self-signed certificates,
// so certificate verification stays off.
var defaultTransport http.RoundTripper = &http.Transport{
	MaxIdleConnsPerHost:   10,
	ResponseHeaderTimeout: 30 * time.Second,
	DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
	TLSClientConfig:       &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(inventoryURL string) (*Client, error) {
	if inventoryURL == "" {
		return nil, fmt.Errorf("inventory url is empty")
	}

	return &Client{
		baseURL: strings.TrimRight(inventoryURL, "/") + apiPrefix,
		http:    &http.Client{Transport: defaultTransport},
	}, nil
}

// Clusters returns all cluster descriptors known to the inventory.
func (c *Client) Clusters(ctx context.Context) ([]types.Document, error) {
	var clusters []types.Document
	if err := c.get(ctx, "/clusters", &clusters); err != nil {
		return nil, fmt.Errorf("get clusters: %w", err)
	}
	return clusters, nil
}

// ClusterEvents returns the install events of a cluster, oldest first, as
// served. A cluster whose events are gone (404) yields an empty list: missing
// event data is an empty result set, not an error.
func (c *Client) ClusterEvents(ctx context.Context, clusterID string) ([]types.Document, error) {
	var events []types.Document
	err := c.get(ctx, "/clusters/"+clusterID+"/events", &events)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			log.Debugf("no events found for cluster %s", clusterID)
			return nil, nil
		}
		return nil, fmt.Errorf("get events of cluster %s: %w", clusterID, err)
	}
	return events, nil
}

// Versions returns the service component version fields.
func (c *Client) Versions(ctx context.Context) (types.Document, error) {
	var versions types.Document
	if err := c.get(ctx, "/component_versions", &versions); err != nil {
		return nil, fmt.Errorf("get versions: %w", err)
	}
	return versions, nil
}

// StatusError is a non-2xx inventory response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inventory returned status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &StatusError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response body: %w", err)
	}
	return nil
}
