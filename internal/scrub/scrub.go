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

// Package scrub removes identifying substrings from install event messages so
// the indexed copy carries no host or cluster names.
package scrub

import (
	"regexp"
	"strings"

	"github.com/ukalifon/assisted-test-infra/internal/storage/types"
)

var (
	// Version-4 UUIDs, hyphens optional: version nibble fixed to 4, variant
	// nibble in [89ab].
	uuidPattern = regexp.MustCompile(`[a-f0-9]{8}-?[a-f0-9]{4}-?4[a-f0-9]{3}-?[89ab][a-f0-9]{3}-?[a-f0-9]{12}`)

	hostPrefixPattern = regexp.MustCompile(`^Host \S+: *`)
)

// Message returns message with every occurrence of each name replaced by
// "Name", UUID-shaped substrings replaced by "UUID", and a leading
// "Host <token>:" prefix stripped.
//
// Names are replaced in the given order as plain substrings, each pass
// operating on the already-partially-scrubbed string. Short or generic host
// names can therefore over-match; that imprecision is accepted.
func Message(message string, names []string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		message = strings.ReplaceAll(message, name, "Name")
	}
	message = uuidPattern.ReplaceAllString(message, "UUID")
	return hostPrefixPattern.ReplaceAllString(message, "")
}

// ClusterNames collects the strings to scrub from a processed metadata
// document: each host's requested_hostname when present, in listed order,
// then the cluster name last.
func ClusterNames(doc types.Document) []string {
	var names []string

	cluster, _ := doc["cluster"].(map[string]any)
	if cluster == nil {
		return names
	}

	if hosts, ok := cluster["hosts"].([]any); ok {
		for _, h := range hosts {
			host, ok := h.(map[string]any)
			if !ok {
				continue
			}
			if name, ok := host["requested_hostname"].(string); ok && name != "" {
				names = append(names, name)
			}
		}
	}

	if name, ok := cluster["name"].(string); ok && name != "" {
		names = append(names, name)
	}

	return names
}
