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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClone_Nil(t *testing.T) {
	require.Nil(t, Clone(nil))
}

// TestClone_DeepCopy verifies that mutating the clone does not leak into the
// original, including nested maps and slices.
func TestClone_DeepCopy(t *testing.T) {
	original := Document{
		"id": "abc",
		"cluster": map[string]any{
			"name": "mycluster",
			"hosts": []any{
				map[string]any{"requested_hostname": "h1"},
			},
		},
	}

	copied := Clone(original)
	require.Equal(t, original, copied)

	copied["id"] = "changed"
	copied["cluster"].(map[string]any)["name"] = "changed"
	copied["cluster"].(map[string]any)["hosts"].([]any)[0].(map[string]any)["requested_hostname"] = "changed"

	require.Equal(t, "abc", original["id"])
	require.Equal(t, "mycluster", original["cluster"].(map[string]any)["name"])
	require.Equal(t, "h1",
		original["cluster"].(map[string]any)["hosts"].([]any)[0].(map[string]any)["requested_hostname"])
}
