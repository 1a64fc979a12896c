// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package opensearch_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/circa/internal/catalog/search/dsl"
	"github.com/taibuivan/circa/internal/platform/opensearch"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

/*
TestClient_Search verifies the request wire format and response decoding.
*/
func TestClient_Search(t *testing.T) {
	var capturedPath string
	var capturedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		capturedPath = request.URL.Path
		capturedBody, _ = io.ReadAll(request.Body)

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"took": 3,
			"timed_out": false,
			"hits": {
				"total": {"value": 2, "relation": "eq"},
				"hits": [
					{"_id": "work-1", "_score": 12.5, "_source": {"title": "First"}, "sort": ["a", "b", 1]},
					{"_id": "work-2", "_score": 3.25, "_source": {"title": "Second"}}
				]
			}
		}`))
	}))
	defer server.Close()

	client := opensearch.NewClient(server.URL, "circulation-works-v5", testLogger())

	request := &dsl.SearchRequest{Query: dsl.Term{Field: "fiction", Value: "fiction"}}
	response, err := client.Search(context.Background(), request)
	require.NoError(t, err)

	// 1. The request went to the index's _search endpoint
	assert.Equal(t, "/circulation-works-v5/_search", capturedPath)
	assert.Contains(t, string(capturedBody), `"term"`)

	// 2. The envelope decodes with totals, scores and sort cursors
	assert.Equal(t, 2, response.Hits.Total.Value)
	require.Len(t, response.Hits.Hits, 2)
	assert.Equal(t, "work-1", response.Hits.Hits[0].ID)
	require.NotNil(t, response.Hits.Hits[0].Score)
	assert.InDelta(t, 12.5, *response.Hits.Hits[0].Score, 0.0001)
	assert.Equal(t, []any{"a", "b", float64(1)}, response.Hits.Hits[0].Sort)
	assert.Nil(t, response.Hits.Hits[1].Sort)
}

/*
TestClient_Search_ClusterError verifies non-200 responses surface as errors.
*/
func TestClient_Search_ClusterError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"error": {"type": "parsing_exception"}}`))
	}))
	defer server.Close()

	client := opensearch.NewClient(server.URL, "circulation-works-v5", testLogger())

	_, err := client.Search(context.Background(), &dsl.SearchRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

/*
TestClient_Ping covers both reachable and unreachable clusters.
*/
func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	client := opensearch.NewClient(server.URL, "circulation-works-v5", testLogger())
	assert.NoError(t, client.Ping(context.Background()))

	server.Close()
	assert.Error(t, client.Ping(context.Background()))
}
