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

package scraper

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

type mockInventory struct {
	mock.Mock
}

func (m *mockInventory) Clusters(ctx context.Context) ([]types.Document, error) {
	args := m.Called(ctx)
	clusters, _ := args.Get(0).([]types.Document)
	return clusters, args.Error(1)
}

func (m *mockInventory) ClusterEvents(ctx context.Context, clusterID string) ([]types.Document, error) {
	args := m.Called(ctx, clusterID)
	events, _ := args.Get(0).([]types.Document)
	return events, args.Error(1)
}

func (m *mockInventory) Versions(ctx context.Context) (types.Document, error) {
	args := m.Called(ctx)
	versions, _ := args.Get(0).(types.Document)
	return versions, args.Error(1)
}

// recordingStore remembers every created document in call order and can
// pretend some ids already exist.
type recordingStore struct {
	created  []string
	docs     map[string]types.Document
	existing map[string]bool
	failWith error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		docs:     map[string]types.Document{},
		existing: map[string]bool{},
	}
}

func (r *recordingStore) Create(_ context.Context, id string, doc types.Document) error {
	if r.failWith != nil {
		return r.failWith
	}
	if r.existing[id] || r.docs[id] != nil {
		return types.ErrConflict
	}
	r.created = append(r.created, id)
	r.docs[id] = doc
	return nil
}
