// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package opensearch provides a thin HTTP client for the search cluster.

It speaks the OpenSearch/Elasticsearch _search wire protocol: request bodies
are compiled query documents, responses are hit envelopes with scores and
sort keys.

Core Responsibilities:

  - Transport: POSTs compiled search documents to the cluster.
  - Decoding: Unmarshals the hit envelope without interpreting documents.
  - Health: Exposes a ping for readiness checks.

Query construction lives in the catalog search packages; this client never
inspects or rewrites the documents it sends.
*/
package opensearch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/taibuivan/circa/internal/catalog/search/dsl"
)

// Opinionated defaults for cluster round-trips.
const (
	requestTimeout = 15 * time.Second
	pingTimeout    = 2 * time.Second

	// maxErrorBodyBytes caps how much of an error response is read for logging.
	maxErrorBodyBytes = 4 << 10
)

// Client executes compiled search requests against one index.
type Client struct {
	baseURL string
	index   string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient returns a client bound to a cluster URL and index name.
func NewClient(baseURL, index string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		index:   index,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// SearchResponse is the decoded hit envelope returned by the cluster.
type SearchResponse struct {
	Took     int  `json:"took"`
	TimedOut bool `json:"timed_out"`
	Hits     Hits `json:"hits"`
}

// Hits holds the total match count and the page of hits.
type Hits struct {
	Total HitsTotal `json:"total"`
	Hits  []Hit     `json:"hits"`
}

// HitsTotal is the (possibly lower-bounded) total number of matches.
type HitsTotal struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// Hit is a single matching work document.
type Hit struct {
	ID     string          `json:"_id"`
	Score  *float64        `json:"_score"`
	Source json.RawMessage `json:"_source"`

	// Sort carries the hit's sort values, used as the search_after
	// cursor for the next page.
	Sort []any `json:"sort,omitempty"`
}

// Search executes a compiled search request and decodes the hit envelope.
func (client *Client) Search(ctx context.Context, request *dsl.SearchRequest) (*SearchResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("opensearch: failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search", client.baseURL, client.index)

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("opensearch: failed to build request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := client.http.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("opensearch: request failed: %w", err)
	}
	defer func() { _ = httpResponse.Body.Close() }()

	if httpResponse.StatusCode != http.StatusOK {
		// Surface a bounded slice of the cluster's error body in the logs.
		raw, _ := io.ReadAll(io.LimitReader(httpResponse.Body, maxErrorBodyBytes))
		client.logger.ErrorContext(ctx, "search_cluster_error",
			slog.Int("status", httpResponse.StatusCode),
			slog.String("body", string(raw)),
		)
		return nil, fmt.Errorf("opensearch: cluster returned status %d", httpResponse.StatusCode)
	}

	response := &SearchResponse{}
	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return nil, fmt.Errorf("opensearch: failed to decode response: %w", err)
	}

	return response, nil
}

// Ping verifies that the search cluster is reachable.
func (client *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	httpRequest, err := http.NewRequestWithContext(pingCtx, http.MethodGet, client.baseURL, nil)
	if err != nil {
		return fmt.Errorf("opensearch: failed to build ping: %w", err)
	}

	httpResponse, err := client.http.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("opensearch: ping failed: %w", err)
	}
	defer func() { _ = httpResponse.Body.Close() }()

	if httpResponse.StatusCode != http.StatusOK {
		return fmt.Errorf("opensearch: ping returned status %d", httpResponse.StatusCode)
	}

	return nil
}
