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

// Package backup persists the raw, unscrubbed event list and cluster metadata
// to local disk for audit and replay.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

const (
	eventsFile   = "events.json"
	metadataFile = "metadata.json"
)

type Writer struct {
	root string
}

func NewWriter(root string) (*Writer, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create backup root: %w", err)
	}
	return &Writer{root: root}, nil
}

// Save writes events.json and metadata.json under <root>/cluster_<id>/,
// overwriting any prior backup for that cluster. The event list must be the
// full list as fetched, before truncation.
func (w *Writer) Save(clusterID string, events []types.Document, metadata types.Document) error {
	dir := filepath.Join(w.root, "cluster_"+clusterID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, eventsFile), events); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, metadataFile), metadata)
}

func writeJSON(path string, v any) error {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)

	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("json Marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
