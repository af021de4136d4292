// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/filter"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	pkgerrors "github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockOpenSearchClient is a mock implementation of OpenSearchClientRetriever
type MockOpenSearchClient struct {
	searchResponse *SearchResponse
	searchError    error
	indexError     error
	readyError     error

	queries [][]byte
	indexed map[string][]byte
}

func NewMockOpenSearchClient() *MockOpenSearchClient {
	return &MockOpenSearchClient{indexed: map[string][]byte{}}
}

func (m *MockOpenSearchClient) Search(ctx context.Context, index string, query []byte) (*SearchResponse, error) {
	m.queries = append(m.queries, query)
	if m.searchError != nil {
		return nil, m.searchError
	}
	if m.searchResponse == nil {
		return &SearchResponse{}, nil
	}
	return m.searchResponse, nil
}

func (m *MockOpenSearchClient) Index(ctx context.Context, index, id string, body []byte) error {
	if m.indexError != nil {
		return m.indexError
	}
	m.indexed[id] = body
	return nil
}

func (m *MockOpenSearchClient) EnsureIndex(ctx context.Context, index string) error {
	return nil
}

func (m *MockOpenSearchClient) IsReady(ctx context.Context) error {
	return m.readyError
}

func (m *MockOpenSearchClient) SetMembers(t *testing.T, total int, members ...model.Member) {
	t.Helper()
	hits := make([]Hit, 0, len(members))
	for _, member := range members {
		source, err := json.Marshal(member)
		require.NoError(t, err)
		hits = append(hits, Hit{ID: strconv.FormatInt(member.ID, 10), Score: 0, Source: source})
	}
	m.searchResponse = &SearchResponse{Hits: Hits{Total: Total{Value: total}, Hits: hits}}
}

// decodedQuery is the subset of the rendered query the tests inspect
type decodedQuery struct {
	From  int  `json:"from"`
	Size  int  `json:"size"`
	Total bool `json:"track_total_hits"`
	Query struct {
		Bool struct {
			Filter []map[string]map[string]any `json:"filter"`
		} `json:"bool"`
	} `json:"query"`
	Sort []map[string]map[string]string `json:"sort"`
}

func decode(t *testing.T, raw []byte) decodedQuery {
	t.Helper()
	var q decodedQuery
	require.NoError(t, json.Unmarshal(raw, &q))
	return q
}

func TestOpenSearchMemberStoreSearchMembers(t *testing.T) {
	assertion := assert.New(t)

	client := NewMockOpenSearchClient()
	client.SetMembers(t, 12,
		model.Member{ID: 11, FirstName: "John", LastName: "Doe", BusinessUnit: "IT", Country: "USA", Entitled: true},
		model.Member{ID: 12, FirstName: "Johnny", LastName: "Bravo", BusinessUnit: "HR", Country: "USA", Entitled: true},
	)
	store := NewMemberStoreWithClient(client, "members")

	predicate := filter.NewBuilder().Build(model.MemberSearchCriteria{
		FirstName:     stringPtr("J*o"),
		BusinessUnits: []string{"IT", "HR"},
		Country:       stringPtr("USA"),
	})

	page, err := store.SearchMembers(context.Background(), predicate, paging.Request{Page: 1, Size: 10})
	require.NoError(t, err)

	assertion.Len(page.Members, 2)
	assertion.Equal(int64(12), page.TotalElements)
	assertion.Equal(2, page.TotalPages)
	assertion.Equal(1, page.Page)
	assertion.Equal("Johnny", page.Members[1].FirstName)

	require.Len(t, client.queries, 1)
	q := decode(t, client.queries[0])
	assertion.Equal(10, q.From)
	assertion.Equal(10, q.Size)
	assertion.True(q.Total)
	assertion.Equal("asc", q.Sort[0]["id"]["order"])

	require.Len(t, q.Query.Bool.Filter, 4)
	assertion.Equal(map[string]any{
		"first_name": map[string]any{"value": `*J\*o*`, "case_insensitive": true},
	}, q.Query.Bool.Filter[0]["wildcard"])
	assertion.Equal(map[string]any{"business_unit": []any{"IT", "HR"}}, q.Query.Bool.Filter[1]["terms"])
	assertion.Equal(map[string]any{"country": "USA"}, q.Query.Bool.Filter[2]["term"])
	assertion.Equal(map[string]any{"entitled": true}, q.Query.Bool.Filter[3]["term"])
}

func TestOpenSearchMemberStoreResultWindow(t *testing.T) {
	tests := []struct {
		name         string
		page         paging.Request
		expectedFrom int
		expectedSize int
	}{
		{name: "inside the window", page: paging.Request{Page: 99, Size: 100}, expectedFrom: 9900, expectedSize: 100},
		{name: "straddling the window", page: paging.Request{Page: 133, Size: 75}, expectedFrom: 9975, expectedSize: 25},
		{name: "past the window", page: paging.Request{Page: 101, Size: 100}, expectedFrom: 0, expectedSize: 0},
		{name: "largest page number", page: paging.Request{Page: math.MaxInt, Size: 2}, expectedFrom: 0, expectedSize: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion := assert.New(t)

			client := NewMockOpenSearchClient()
			client.SetMembers(t, 20000)
			store := NewMemberStoreWithClient(client, "members")

			page, err := store.SearchMembers(context.Background(), filter.Predicate{}, tc.page)
			require.NoError(t, err)

			assertion.Equal(int64(20000), page.TotalElements)
			assertion.Equal(tc.page.Page, page.Page)
			require.Len(t, client.queries, 1)
			q := decode(t, client.queries[0])
			assertion.Equal(tc.expectedFrom, q.From)
			assertion.Equal(tc.expectedSize, q.Size)
			if tc.expectedSize == 0 {
				assertion.Empty(page.Members)
			}
		})
	}
}

func TestOpenSearchMemberStoreEmptyCriteriaStillFiltersEntitlement(t *testing.T) {
	client := NewMockOpenSearchClient()
	store := NewMemberStoreWithClient(client, "members")

	page, err := store.SearchMembers(context.Background(), filter.Predicate{}, paging.Request{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Members)
	assert.Zero(t, page.TotalPages)

	q := decode(t, client.queries[0])
	require.Len(t, q.Query.Bool.Filter, 1)
	assert.Equal(t, map[string]any{"entitled": true}, q.Query.Bool.Filter[0]["term"])
}

func TestOpenSearchMemberStoreErrors(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*MockOpenSearchClient)
		expectedErr any
	}{
		{
			name: "search failure is unavailable",
			setupMock: func(m *MockOpenSearchClient) {
				m.searchError = errors.New("connection refused")
			},
			expectedErr: &pkgerrors.ServiceUnavailable{},
		},
		{
			name: "bad source is unexpected",
			setupMock: func(m *MockOpenSearchClient) {
				m.searchResponse = &SearchResponse{Hits: Hits{Hits: []Hit{{ID: "1", Source: []byte(`"nope"`)}}}}
			},
			expectedErr: &pkgerrors.Unexpected{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := NewMockOpenSearchClient()
			tc.setupMock(client)
			store := NewMemberStoreWithClient(client, "members")

			_, err := store.SearchMembers(context.Background(), filter.Predicate{}, paging.Request{Page: 0, Size: 10})
			assert.ErrorAs(t, err, tc.expectedErr)
		})
	}
}

func TestOpenSearchMemberStoreFindAndSave(t *testing.T) {
	assertion := assert.New(t)
	ctx := context.Background()

	client := NewMockOpenSearchClient()
	store := NewMemberStoreWithClient(client, "members")

	// lookup by id does not require entitlement
	client.SetMembers(t, 1, model.Member{ID: 7, FirstName: "Alice", LastName: "Johnson", Entitled: false})
	member, err := store.FindMemberByID(ctx, 7)
	require.NoError(t, err)
	assertion.Equal("Alice", member.FirstName)
	q := decode(t, client.queries[0])
	require.Len(t, q.Query.Bool.Filter, 1)
	assertion.Equal(map[string]any{"id": float64(7)}, q.Query.Bool.Filter[0]["term"])

	member.Country = "UK"
	saved, err := store.SaveMember(ctx, *member)
	require.NoError(t, err)
	assertion.Equal(int64(7), saved.ID)
	var stored model.Member
	require.NoError(t, json.Unmarshal(client.indexed["7"], &stored))
	assertion.Equal("UK", stored.Country)
	assertion.False(stored.Entitled)

	// a new member gets the id after the highest one
	created, err := store.SaveMember(ctx, model.Member{FirstName: "New", LastName: "Member"})
	require.NoError(t, err)
	assertion.Equal(int64(8), created.ID)
	assertion.Contains(client.indexed, "8")

	client.SetMembers(t, 0)
	var notFound pkgerrors.NotFound
	_, err = store.FindMemberByID(ctx, 99)
	assertion.ErrorAs(err, &notFound)

	created, err = store.SaveMember(ctx, model.Member{FirstName: "First", LastName: "Member"})
	require.NoError(t, err)
	assertion.Equal(int64(1), created.ID)
}

func TestOpenSearchMemberStoreIsReady(t *testing.T) {
	client := NewMockOpenSearchClient()
	store := NewMemberStoreWithClient(client, "members")
	assert.NoError(t, store.IsReady(context.Background()))

	client.readyError = errors.New("down")
	var unavailable pkgerrors.ServiceUnavailable
	assert.ErrorAs(t, store.IsReady(context.Background()), &unavailable)
}

func stringPtr(s string) *string {
	return &s
}
