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

package elasticsearch

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/stretchr/testify/mock"
)

var origTransport http.RoundTripper // used to save old value

type mockRoundTripper struct {
	mock.Mock
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	args := m.Called(req)

	resp := args.Get(0)
	if resp == nil {
		return nil, args.Error(1)
	}

	switch v := resp.(type) {
	case *http.Response:
		return v, args.Error(1)

	case func(*http.Request) *http.Response:
		return v(req), args.Error(1)

	default:
		panic(fmt.Sprintf("unexpected RoundTrip return type: %T", v))
	}
}

func newMockHTTPResponse(status int, body string, headers map[string]string) *http.Response {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}

	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// newMockClient replaces defaultTransport with a mockRoundTripper and returns it.
func newMockClient() *mockRoundTripper {
	origTransport = defaultTransport
	rt := &mockRoundTripper{}
	defaultTransport = rt
	return rt
}

// closeMockClient restores defaultTransport.
func closeMockClient() {
	defaultTransport = origTransport
}

// newMockClientForCreate creates a mocked StorageClient for testing Create.
func newMockClientForCreate(t *testing.T, statusCode int, responseBody string) *StorageClient {
	t.Helper()

	rt := new(mockRoundTripper)

	rt.On("RoundTrip", mock.Anything).
		Return(func(req *http.Request) *http.Response {
			return newMockHTTPResponse(
				statusCode,
				responseBody,
				map[string]string{
					"X-Elastic-Product": "Elasticsearch",
					"Content-Type":      "application/json",
				},
			)
		}, nil)

	cfg := elasticsearch.Config{
		Addresses: []string{"http://mock"},
		Transport: rt,
		// Validate the product header on the mocked response itself instead of
		// issuing a separate Info request the mock is not wired to answer.
		UseResponseCheckOnly: true,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		t.Fatalf("failed to create es client: %v", err)
	}

	t.Cleanup(func() {
		rt.AssertExpectations(t)
	})

	return &StorageClient{
		client: client,
		index:  defaultIndex,
	}
}
