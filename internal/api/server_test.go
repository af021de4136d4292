// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/security"
)

type fakeService struct {
	searchPayload *SearchMembersPayload
	textPayload   *SearchMembersTextPayload
	updatePayload *UpdateMemberPayload
	page          *MemberPage
	member        *Member
	err           error
	readyErr      error
}

func (f *fakeService) JWTAuth(ctx context.Context, token string, schema *security.JWTScheme) (context.Context, error) {
	if token != "valid" {
		return ctx, &UnauthorizedError{Message: "invalid token"}
	}
	return ctx, nil
}

func (f *fakeService) SearchMembers(ctx context.Context, p *SearchMembersPayload) (*MemberPage, error) {
	f.searchPayload = p
	return f.page, f.err
}

func (f *fakeService) SearchMembersText(ctx context.Context, p *SearchMembersTextPayload) (*MemberPage, error) {
	f.textPayload = p
	return f.page, f.err
}

func (f *fakeService) UpdateMember(ctx context.Context, p *UpdateMemberPayload) (*Member, error) {
	f.updatePayload = p
	return f.member, f.err
}

func (f *fakeService) Readyz(ctx context.Context) ([]byte, error) {
	if f.readyErr != nil {
		return nil, f.readyErr
	}
	return []byte("OK\n"), nil
}

func (f *fakeService) Livez(ctx context.Context) ([]byte, error) {
	return []byte("OK\n"), nil
}

func newTestHandler(svc *fakeService) http.Handler {
	mux := goahttp.NewMuxer()
	server := New(NewEndpoints(svc), mux, goahttp.RequestDecoder, goahttp.ResponseEncoder,
		func(context.Context, http.ResponseWriter, error) {})
	Mount(mux, server)
	return mux
}

func doRequest(handler http.Handler, method, target, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authorized {
		req.Header.Set("Authorization", "Bearer valid")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSearchMembersHandler(t *testing.T) {
	svc := &fakeService{page: &MemberPage{
		Content:       []*Member{{ID: 1, FirstName: "John", LastName: "Doe", Entitled: true}},
		TotalElements: 1,
		TotalPages:    1,
		Number:        0,
		Size:          10,
	}}
	handler := newTestHandler(svc)

	t.Run("defaults paging and returns camel case page", func(t *testing.T) {
		assertion := assert.New(t)

		rec := doRequest(handler, http.MethodPost, "/api/members/search",
			`{"firstName":"John","businessUnits":["IT"]}`, true)

		assertion.Equal(http.StatusOK, rec.Code)
		require.NotNil(t, svc.searchPayload)
		assertion.Equal("John", *svc.searchPayload.FirstName)
		assertion.Equal([]string{"IT"}, svc.searchPayload.BusinessUnits)
		assertion.Equal(0, *svc.searchPayload.Page)
		assertion.Equal(10, *svc.searchPayload.Size)
		assertion.Equal("valid", *svc.searchPayload.BearerToken)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assertion.Contains(body, "content")
		assertion.Equal(float64(1), body["totalElements"])
		assertion.Equal(float64(1), body["totalPages"])
	})

	t.Run("empty body means no criteria", func(t *testing.T) {
		assertion := assert.New(t)

		rec := doRequest(handler, http.MethodPost, "/api/members/search", "", true)

		assertion.Equal(http.StatusOK, rec.Code)
		assertion.Nil(svc.searchPayload.FirstName)
	})

	t.Run("malformed body", func(t *testing.T) {
		assertion := assert.New(t)

		rec := doRequest(handler, http.MethodPost, "/api/members/search", `{"firstName":`, true)

		assertion.Equal(http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assertion.Equal("Bad Request", body["error"])
		assertion.Equal("/api/members/search", body["path"])
	})

	t.Run("missing token", func(t *testing.T) {
		assertion := assert.New(t)

		rec := doRequest(handler, http.MethodPost, "/api/members/search", `{}`, false)

		assertion.Equal(http.StatusUnauthorized, rec.Code)
		assertion.Equal("Bearer", rec.Header().Get("WWW-Authenticate"))
		body := decodeError(t, rec)
		assertion.Equal(float64(http.StatusUnauthorized), body["status"])
		assertion.Equal("invalid token", body["message"])
		assertion.Contains(body, "timestamp")
	})
}

func TestSearchMembersTextHandler(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		body           string
		expectedStatus int
		expectedQuery  string
		expectedPage   int
		expectedSize   int
	}{
		{
			name:           "defaults",
			target:         "/api/members/search/text",
			body:           "Show John Doe in IT",
			expectedStatus: http.StatusOK,
			expectedQuery:  "Show John Doe in IT",
			expectedPage:   0,
			expectedSize:   10,
		},
		{
			name:           "explicit paging",
			target:         "/api/members/search/text?page=2&size=25",
			body:           "engineers in USA",
			expectedStatus: http.StatusOK,
			expectedQuery:  "engineers in USA",
			expectedPage:   2,
			expectedSize:   25,
		},
		{
			name:           "invalid page parameter",
			target:         "/api/members/search/text?page=abc",
			body:           "engineers",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "oversized body",
			target:         "/api/members/search/text",
			body:           strings.Repeat("a", 4097),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion := assert.New(t)
			svc := &fakeService{page: &MemberPage{Content: []*Member{}}}
			handler := newTestHandler(svc)

			rec := doRequest(handler, http.MethodPost, tc.target, tc.body, true)

			assertion.Equal(tc.expectedStatus, rec.Code)
			if tc.expectedStatus != http.StatusOK {
				assertion.Nil(svc.textPayload)
				return
			}
			require.NotNil(t, svc.textPayload)
			assertion.Equal(tc.expectedQuery, svc.textPayload.Query)
			assertion.Equal(tc.expectedPage, svc.textPayload.Page)
			assertion.Equal(tc.expectedSize, svc.textPayload.Size)
		})
	}
}

func TestUpdateMemberHandler(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		body           string
		serviceErr     error
		expectedStatus int
		expectedID     int64
	}{
		{
			name:           "updates member",
			target:         "/api/members/7",
			body:           `{"firstName":"Jane","lastName":"Roe","country":"UK"}`,
			expectedStatus: http.StatusOK,
			expectedID:     7,
		},
		{
			name:           "non numeric id",
			target:         "/api/members/abc",
			body:           `{"firstName":"Jane"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing body",
			target:         "/api/members/7",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "member not found",
			target:         "/api/members/99",
			body:           `{"firstName":"Jane","lastName":"Roe"}`,
			serviceErr:     &NotFoundError{Message: "member not found with id: 99"},
			expectedStatus: http.StatusNotFound,
			expectedID:     99,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion := assert.New(t)
			svc := &fakeService{member: &Member{ID: tc.expectedID, FirstName: "Jane"}, err: tc.serviceErr}
			handler := newTestHandler(svc)

			rec := doRequest(handler, http.MethodPut, tc.target, tc.body, true)

			assertion.Equal(tc.expectedStatus, rec.Code)
			if tc.expectedID != 0 {
				require.NotNil(t, svc.updatePayload)
				assertion.Equal(tc.expectedID, svc.updatePayload.ID)
			}
		})
	}
}

func TestHealthHandlers(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		assertion := assert.New(t)
		rec := doRequest(newTestHandler(&fakeService{}), http.MethodGet, "/readyz", "", false)

		assertion.Equal(http.StatusOK, rec.Code)
		assertion.Equal("OK\n", rec.Body.String())
		assertion.Equal("text/plain", rec.Header().Get("Content-Type"))
	})

	t.Run("not ready", func(t *testing.T) {
		assertion := assert.New(t)
		svc := &fakeService{readyErr: &ServiceUnavailableError{Message: "store unavailable"}}
		rec := doRequest(newTestHandler(svc), http.MethodGet, "/readyz", "", false)

		assertion.Equal(http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("live", func(t *testing.T) {
		assertion := assert.New(t)
		rec := doRequest(newTestHandler(&fakeService{}), http.MethodGet, "/livez", "", false)

		assertion.Equal(http.StatusOK, rec.Code)
	})
}

func TestEncodeErrorHidesInternalMessages(t *testing.T) {
	assertion := assert.New(t)
	svc := &fakeService{err: errors.New("pq: connection refused")}
	rec := doRequest(newTestHandler(svc), http.MethodPost, "/api/members/search", `{}`, true)

	assertion.Equal(http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assertion.Equal("Internal Server Error", body["error"])
	assertion.Equal(internalErrorMessage, body["message"])
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{&BadRequestError{}, http.StatusBadRequest},
		{&UnauthorizedError{}, http.StatusUnauthorized},
		{&NotFoundError{}, http.StatusNotFound},
		{&ServiceUnavailableError{}, http.StatusServiceUnavailable},
		{&InternalServerError{}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, StatusCode(tc.err))
	}
}
