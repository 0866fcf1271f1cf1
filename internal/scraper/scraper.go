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

// Package scraper polls cluster install events from the inventory service,
// scrubs identifying names out of them and indexes them idempotently into
// the document store.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ukalifon/assisted-test-infra/internal/log"
	"github.com/ukalifon/assisted-test-infra/internal/scrub"
	"github.com/ukalifon/assisted-test-infra/internal/storage"
	"github.com/ukalifon/assisted-test-infra/internal/storage/backup"
	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

// Inventory is the remote cluster inventory the scraper polls.
type Inventory interface {
	Clusters(ctx context.Context) ([]types.Document, error)
	ClusterEvents(ctx context.Context, clusterID string) ([]types.Document, error)
	Versions(ctx context.Context) (types.Document, error)
}

// BackupWriter persists the raw event list and metadata before scrubbing.
type BackupWriter interface {
	Save(clusterID string, events []types.Document, metadata types.Document) error
}

type ScrapeEvents struct {
	inventory     Inventory
	store         storage.Writer
	backup        BackupWriter // nil disables backups
	maxEvents     int
	retryInterval time.Duration
}

func New(inventory Inventory, store storage.Writer, backupWriter *backup.Writer,
	maxEvents int, retryInterval time.Duration,
) *ScrapeEvents {
	s := &ScrapeEvents{
		inventory:     inventory,
		store:         store,
		maxEvents:     maxEvents,
		retryInterval: retryInterval,
	}
	// keep the interface nil when no backup destination is configured
	if backupWriter != nil {
		s.backup = backupWriter
	}
	return s
}

// Run polls the inventory until ctx is canceled or an operation fails. Any
// error aborts the whole run; the caller rebuilds the service with fresh
// clients and calls Run again after the retry interval.
func (s *ScrapeEvents) Run(ctx context.Context) error {
	for {
		clusters, err := s.inventory.Clusters(ctx)
		if err != nil {
			return fmt.Errorf("get clusters: %w", err)
		}

		rand.Shuffle(len(clusters), func(i, j int) {
			clusters[i], clusters[j] = clusters[j], clusters[i]
		})

		if len(clusters) == 0 {
			log.Warnf("no clusters were found, waiting %v", s.retryInterval)
			if err := sleep(ctx, s.retryInterval); err != nil {
				return nil
			}
			continue
		}

		for i, cluster := range clusters {
			if ctx.Err() != nil {
				return nil
			}

			clusterID := stringField(cluster, "id")
			log.Infof("%d/%d: starting process of cluster %s", i, len(clusters), clusterID)

			if err := s.processCluster(ctx, cluster); err != nil {
				return fmt.Errorf("process cluster %s: %w", clusterID, err)
			}
		}
	}
}

func (s *ScrapeEvents) processCluster(ctx context.Context, cluster types.Document) error {
	clusterID := stringField(cluster, "id")

	events, err := s.inventory.ClusterEvents(ctx, clusterID)
	if err != nil {
		return err
	}

	return s.indexEvents(ctx, cluster, events)
}

// indexEvents runs one cluster's events through backup, scrubbing and
// indexing. Events are walked newest-first; the first duplicate means
// everything older is already indexed, so the walk stops there.
func (s *ScrapeEvents) indexEvents(ctx context.Context, cluster types.Document, events []types.Document) error {
	clusterID := stringField(cluster, "id")

	versions, err := s.inventory.Versions(ctx)
	if err != nil {
		return err
	}
	metadata := clusterMetadata(cluster, versions)

	// the backup keeps the full list as fetched, before truncation
	if s.backup != nil {
		if err := s.backup.Save(clusterID, events, metadata); err != nil {
			return fmt.Errorf("save backup: %w", err)
		}
	}

	if len(events) > s.maxEvents {
		log.Warnf("cluster %s has %d event records, logging only %d", clusterID, len(events), s.maxEvents)
		events = events[:s.maxEvents]
	}

	base := baseDocument(metadata)
	names := scrub.ClusterNames(base)

	for i := len(events) - 1; i >= 0; i-- {
		event := events[i]

		scrubbed := scrub.Message(stringField(event, "message"), names)
		doc := compositeDocument(base, event, scrubbed)

		err := s.store.Create(ctx, EventDocumentID(event), doc)
		if errors.Is(err, types.ErrConflict) {
			log.Debug("hit logged event")
			break
		}
		if err != nil {
			return fmt.Errorf("index event document: %w", err)
		}
	}

	return nil
}

// sleep waits for the given duration or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
