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
	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

// clusterMetadata assembles the per-cluster metadata: the cluster descriptor
// under "cluster" plus the service version fields merged at the top level.
func clusterMetadata(cluster types.Document, versions types.Document) types.Document {
	metadata := types.Document{"cluster": cluster}
	for k, v := range versions {
		metadata[k] = v
	}
	return metadata
}

// baseDocument normalizes the metadata into the base of each composite event
// document. The base keeps cluster.hosts[].requested_hostname and
// cluster.name reachable for name extraction, and is deep-copied so per-event
// merges never write back into the shared metadata.
func baseDocument(metadata types.Document) types.Document {
	return types.Clone(metadata)
}

// compositeDocument builds the indexable record for one event: the metadata
// base, the scrubbed message, then the event's own fields, event fields
// winning on key collision.
func compositeDocument(base types.Document, event types.Document, scrubbedMessage string) types.Document {
	doc := types.Clone(base)
	doc["no_name_message"] = scrubbedMessage
	for k, v := range event {
		doc[k] = v
	}
	return doc
}
