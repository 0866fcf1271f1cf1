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

package storage

import (
	"context"

	"github.com/ukalifon/assisted-test-infra/internal/log"
	"github.com/ukalifon/assisted-test-infra/internal/storage/elasticsearch"
	"github.com/ukalifon/assisted-test-infra/internal/storage/null"
	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

// Writer is the document store used for idempotent event indexing. Create
// returns types.ErrConflict when a document already exists at id.
type Writer interface {
	Create(ctx context.Context, id string, doc types.Document) error
}

type InitContext struct {
	EsAddresses string // Elasticsearch nodes to use.
	EsUsername  string // Username for HTTP Basic Authentication.
	EsPassword  string // Password for HTTP Basic Authentication.
	EsIndex     string
}

// NewWriter builds the store client for a scrape run. Without an
// Elasticsearch address the null device is used, which indexes nothing.
func NewWriter(initCtx *InitContext) (Writer, error) {
	if initCtx.EsAddresses == "" {
		log.Warn("elasticsearch storage not configured, use null device")
		return &null.StorageClient{}, nil
	}

	return elasticsearch.NewStorageClient(
		initCtx.EsAddresses, initCtx.EsUsername, initCtx.EsPassword, initCtx.EsIndex)
}
