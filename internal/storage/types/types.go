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
	"errors"
)

// Document is a JSON-shaped record as fetched from the inventory service or
// assembled for indexing. Events carry arbitrary fields that must merge into
// the composite document, so documents stay maps rather than structs.
type Document = map[string]any

// ErrConflict reports that a document already exists at the given id.
var ErrConflict = errors.New("document already exists")

// Clone returns a deep copy of doc. Nested maps and slices are copied so that
// per-event merges never mutate the shared metadata base.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	return cloneMap(doc)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
