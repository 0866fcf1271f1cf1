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

package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"

	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

const defaultIndex = "assisted-service-events"

var defaultTransport http.RoundTripper = &http.Transport{
	MaxIdleConnsPerHost:   10,
	ResponseHeaderTimeout: 10 * time.Second,
	DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
}

type StorageClient struct {
	client *elasticsearch.Client
	index  string
}

func NewStorageClient(addr, username, password, index string) (*StorageClient, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{addr},
		Username:  username,
		Password:  password,
		Transport: defaultTransport,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}

	// ping/check es server ...
	res, err := client.Info()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch return statuscode: %d", res.StatusCode)
	}

	if index == "" {
		index = defaultIndex
	}
	return &StorageClient{client: client, index: index}, nil
}

// Create inserts the document at id, create-only. A document already present
// at id yields types.ErrConflict; the index is left untouched.
func (e *StorageClient) Create(ctx context.Context, id string, doc types.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("json Marshal: %w", err)
	}

	req := esapi.CreateRequest{
		Index:      e.index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("error getting response: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusConflict {
		return types.ErrConflict
	}

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("create document %s failed with status: %d, response: %s",
			id, res.StatusCode, string(body))
	}

	var r map[string]any
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return fmt.Errorf("parse response body: %w", err)
	}

	return nil
}
