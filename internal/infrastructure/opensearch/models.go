// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"encoding/json"

	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/httpclient"
)

// maxResultWindow is OpenSearch's default index.max_result_window; from+size
// beyond it is rejected by the cluster.
const maxResultWindow = 10000

// Config represents OpenSearch configuration
type Config struct {
	URL   string `json:"url"`
	Index string `json:"index"`
	// HTTP controls timeouts and retries of the transport
	HTTP httpclient.Config `json:"-"`
}

// SearchResponse represents the OpenSearch search response
type SearchResponse struct {
	Hits `json:"hits"`
}

// Hits represents the hits in the search response
type Hits struct {
	Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Total represents the total number of hits
type Total struct {
	Value int `json:"value"`
}

// Hit represents a single search result hit
type Hit struct {
	ID     string          `json:"_id"`
	Score  float64         `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

// memberIndexMapping stores every string attribute as a keyword so term and
// wildcard queries see the value unanalysed.
const memberIndexMapping = `{
  "mappings": {
    "properties": {
      "id": {"type": "long"},
      "first_name": {"type": "keyword"},
      "middle_name": {"type": "keyword"},
      "last_name": {"type": "keyword"},
      "business_unit": {"type": "keyword"},
      "country": {"type": "keyword"},
      "source_member_id": {"type": "keyword"},
      "entitled": {"type": "boolean"}
    }
  }
}`
