// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"text/template"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/filter"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/httpclient"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/paging"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

var queryMemberTemplate = template.Must(
	template.New("queryMember").
		Funcs(template.FuncMap{
			"quote": strconv.Quote,
			"json": func(v any) (string, error) {
				b, err := json.Marshal(v)
				return string(b), err
			},
		}).
		Parse(queryMemberSource))

// queryData feeds queryMemberTemplate
type queryData struct {
	From      int
	Size      int
	Filter    []clause
	SortOrder string
}

// OpenSearchMemberStore implements the MemberStore interface for OpenSearch
type OpenSearchMemberStore struct {
	client OpenSearchClientRetriever
	index  string
}

// OpenSearchClientRetriever defines the interface for OpenSearch operations
// This allows for easy mocking and testing
type OpenSearchClientRetriever interface {
	Search(ctx context.Context, index string, query []byte) (*SearchResponse, error)
	Index(ctx context.Context, index, id string, body []byte) error
	EnsureIndex(ctx context.Context, index string) error
	IsReady(ctx context.Context) error
}

// SearchMembers implements the MemberSearcher interface
func (os *OpenSearchMemberStore) SearchMembers(ctx context.Context, predicate filter.Predicate, page paging.Request) (*model.MemberPage, error) {
	clauses, err := filterClauses(predicate)
	if err != nil {
		return nil, errors.NewUnexpected("failed to render member filter", err)
	}

	from, size := resultWindow(page)
	query, err := os.Render(ctx, queryData{
		From:      from,
		Size:      size,
		Filter:    clauses,
		SortOrder: "asc",
	})
	if err != nil {
		return nil, errors.NewUnexpected("failed to render query", err)
	}

	response, err := os.client.Search(ctx, os.index, query)
	if err != nil {
		return nil, errors.NewServiceUnavailable("opensearch search failed", err)
	}

	members, err := os.convertResponse(ctx, response)
	if err != nil {
		return nil, errors.NewUnexpected("failed to convert search response", err)
	}

	total := int64(response.Hits.Total.Value)
	slog.DebugContext(ctx, "opensearch search completed",
		"results_count", len(members),
		"total", total,
	)

	return &model.MemberPage{
		Members:       members,
		TotalElements: total,
		TotalPages:    paging.TotalPages(total, page.Size),
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

// resultWindow keeps from+size inside the index's max_result_window. Pages
// past the window are requested with size 0, so only the total comes back.
func resultWindow(page paging.Request) (from, size int) {
	from, size = page.Offset(), page.Size
	if from >= maxResultWindow {
		return 0, 0
	}
	if from+size > maxResultWindow {
		size = maxResultWindow - from
	}
	return from, size
}

// FindMemberByID looks the member up by id regardless of entitlement
func (os *OpenSearchMemberStore) FindMemberByID(ctx context.Context, id int64) (*model.Member, error) {
	query, err := os.Render(ctx, queryData{
		From:      0,
		Size:      1,
		Filter:    []clause{{"term": map[string]any{"id": id}}},
		SortOrder: "asc",
	})
	if err != nil {
		return nil, errors.NewUnexpected("failed to render query", err)
	}

	response, err := os.client.Search(ctx, os.index, query)
	if err != nil {
		return nil, errors.NewServiceUnavailable("opensearch search failed", err)
	}

	members, err := os.convertResponse(ctx, response)
	if err != nil {
		return nil, errors.NewUnexpected("failed to convert search response", err)
	}
	if len(members) == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf("member not found with id: %d", id))
	}
	return &members[0], nil
}

// SaveMember indexes the member under its id; a member without one gets the
// next id after the current highest
func (os *OpenSearchMemberStore) SaveMember(ctx context.Context, member model.Member) (*model.Member, error) {
	if member.ID == 0 {
		next, err := os.nextID(ctx)
		if err != nil {
			return nil, err
		}
		member.ID = next
	}

	body, err := json.Marshal(member)
	if err != nil {
		return nil, errors.NewUnexpected("failed to marshal member", err)
	}

	if err := os.client.Index(ctx, os.index, strconv.FormatInt(member.ID, 10), body); err != nil {
		return nil, errors.NewServiceUnavailable("opensearch index failed", err)
	}
	return &member, nil
}

func (os *OpenSearchMemberStore) nextID(ctx context.Context) (int64, error) {
	query, err := os.Render(ctx, queryData{
		From:      0,
		Size:      1,
		Filter:    []clause{},
		SortOrder: "desc",
	})
	if err != nil {
		return 0, errors.NewUnexpected("failed to render query", err)
	}

	response, err := os.client.Search(ctx, os.index, query)
	if err != nil {
		return 0, errors.NewServiceUnavailable("opensearch search failed", err)
	}
	members, err := os.convertResponse(ctx, response)
	if err != nil {
		return 0, errors.NewUnexpected("failed to convert search response", err)
	}
	if len(members) == 0 {
		return 1, nil
	}
	return members[0].ID + 1, nil
}

// EnsureIndex creates the member index when missing
func (os *OpenSearchMemberStore) EnsureIndex(ctx context.Context) error {
	return os.client.EnsureIndex(ctx, os.index)
}

// IsReady implements the MemberSearcher interface
func (os *OpenSearchMemberStore) IsReady(ctx context.Context) error {
	if err := os.client.IsReady(ctx); err != nil {
		return errors.NewServiceUnavailable("opensearch is not ready", err)
	}
	return nil
}

// Render generates the OpenSearch query document
func (os *OpenSearchMemberStore) Render(ctx context.Context, data queryData) ([]byte, error) {
	var buf bytes.Buffer
	if err := queryMemberTemplate.Execute(&buf, data); err != nil {
		slog.ErrorContext(ctx, "failed to render query template", "error", err)
		return nil, err
	}
	if !json.Valid(buf.Bytes()) {
		return nil, fmt.Errorf("rendered query is not valid json")
	}
	return buf.Bytes(), nil
}

// convertResponse converts OpenSearch hits to members
func (os *OpenSearchMemberStore) convertResponse(ctx context.Context, response *SearchResponse) ([]model.Member, error) {
	members := make([]model.Member, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		var member model.Member
		if err := json.Unmarshal(hit.Source, &member); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hit %s: %w", hit.ID, err)
		}
		members = append(members, member)
	}
	return members, nil
}

// NewMemberStore returns a new OpenSearch member store
func NewMemberStore(ctx context.Context, config Config) (*OpenSearchMemberStore, error) {

	if config.URL == "" {
		slog.ErrorContext(ctx, "opensearch URL is required")
		return nil, fmt.Errorf("opensearch URL is required")
	}
	if config.Index == "" {
		slog.ErrorContext(ctx, "opensearch index is required")
		return nil, fmt.Errorf("opensearch index is required")
	}

	base := &http.Transport{
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: 5 * time.Second,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
	}

	opensearchClient, errOpensearchClient := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses:    []string{config.URL},
			Transport:    httpclient.NewTransport(config.HTTP, base),
			DisableRetry: true,
		},
	})
	if errOpensearchClient != nil {
		slog.ErrorContext(ctx, "failed to create OpenSearch client", "error", errOpensearchClient)
		return nil, fmt.Errorf("failed to create OpenSearch client: %w", errOpensearchClient)
	}

	return NewMemberStoreWithClient(&httpClient{client: opensearchClient}, config.Index), nil
}

// NewMemberStoreWithClient builds a store over an existing client
func NewMemberStoreWithClient(client OpenSearchClientRetriever, index string) *OpenSearchMemberStore {
	return &OpenSearchMemberStore{
		client: client,
		index:  index,
	}
}

var _ port.MemberStore = (*OpenSearchMemberStore)(nil)
