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

package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

func TestNewWriter_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "backups")

	_, err := NewWriter(root)
	require.NoError(t, err)
	require.DirExists(t, root)
}

// TestSave_RoundTrip verifies that reading back events.json and metadata.json
// reproduces the structures passed in.
func TestSave_RoundTrip(t *testing.T) {
	writer, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	events := []types.Document{
		{"event_time": "2021-07-11T13:04:59.103Z", "cluster_id": "c1", "message": "m1"},
		{"event_time": "2021-07-11T13:05:00.000Z", "cluster_id": "c1", "message": "m2", "severity": "info"},
	}
	metadata := types.Document{
		"cluster":     map[string]any{"id": "c1", "name": "mycluster"},
		"release_tag": "v1.0.0",
	}

	require.NoError(t, writer.Save("c1", events, metadata))

	dir := filepath.Join(writer.root, "cluster_c1")

	var gotEvents []types.Document
	readJSON(t, filepath.Join(dir, "events.json"), &gotEvents)
	require.Equal(t, events, gotEvents)

	var gotMetadata types.Document
	readJSON(t, filepath.Join(dir, "metadata.json"), &gotMetadata)
	require.Equal(t, metadata, gotMetadata)
}

// TestSave_Overwrite verifies that a second backup replaces the first.
func TestSave_Overwrite(t *testing.T) {
	writer, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	first := []types.Document{{"message": "old"}}
	second := []types.Document{{"message": "new"}, {"message": "newer"}}

	require.NoError(t, writer.Save("c1", first, types.Document{"v": "1"}))
	require.NoError(t, writer.Save("c1", second, types.Document{"v": "2"}))

	var gotEvents []types.Document
	readJSON(t, filepath.Join(writer.root, "cluster_c1", "events.json"), &gotEvents)
	require.Equal(t, second, gotEvents)
}

// Backups are for human audit, keep them indented.
func TestSave_Indented(t *testing.T) {
	writer, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, writer.Save("c1",
		[]types.Document{{"message": "m"}}, types.Document{"cluster": map[string]any{}}))

	data, err := os.ReadFile(filepath.Join(writer.root, "cluster_c1", "events.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), "\n    ")
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}
