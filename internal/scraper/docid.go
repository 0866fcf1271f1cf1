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
	"crypto/md5" //nolint:gosec // content addressing, not authentication
	"math/big"

	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

// DocumentID derives the storage key of an event: the MD5 digest of
// event_time + cluster_id + message, read as a 128-bit unsigned integer and
// rendered in decimal. The same triple always yields the same id, which is
// what makes indexing idempotent.
func DocumentID(eventTime, clusterID, message string) string {
	sum := md5.Sum([]byte(eventTime + clusterID + message)) //nolint:gosec
	return new(big.Int).SetBytes(sum[:]).String()
}

// EventDocumentID derives the storage key from an event document's fields.
func EventDocumentID(event types.Document) string {
	return DocumentID(stringField(event, "event_time"),
		stringField(event, "cluster_id"),
		stringField(event, "message"))
}

func stringField(doc types.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}
