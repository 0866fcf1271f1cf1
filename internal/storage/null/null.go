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

// Package null provides a no-op storage device used when no Elasticsearch
// target is configured.
package null

import (
	"context"

	"github.com/ukalifon/assisted-test-infra/internal/log"
	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

type StorageClient struct{}

// Create discards the document. It never reports a conflict, so callers in
// dry-run mode walk every event on every cycle.
func (*StorageClient) Create(_ context.Context, id string, _ types.Document) error {
	log.Debugf("null storage: discarding document %s", id)
	return nil
}
