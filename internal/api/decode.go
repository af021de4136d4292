// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"

	goahttp "goa.design/goa/v3/http"
)

// DecodeSearchMembersRequest returns a decoder for requests sent to the
// member-svc search-members endpoint. An empty body means no criteria.
func DecodeSearchMembersRequest(mux goahttp.Muxer, decoder func(*http.Request) goahttp.Decoder) func(*http.Request) (any, error) {
	return func(r *http.Request) (any, error) {
		var payload SearchMembersPayload
		if err := decoder(r).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return nil, &BadRequestError{Message: fmt.Sprintf("malformed request body: %s", err)}
		}
		if payload.Page == nil {
			page := constants.DefaultPage
			payload.Page = &page
		}
		if payload.Size == nil {
			size := constants.DefaultPageSize
			payload.Size = &size
		}
		payload.BearerToken = bearerToken(r)
		return &payload, nil
	}
}

// DecodeSearchMembersTextRequest returns a decoder for requests sent to the
// member-svc search-members-text endpoint. The body is read as raw text.
func DecodeSearchMembersTextRequest(mux goahttp.Muxer, decoder func(*http.Request) goahttp.Decoder) func(*http.Request) (any, error) {
	return func(r *http.Request) (any, error) {
		body, err := io.ReadAll(io.LimitReader(r.Body, constants.MaxTextQueryBytes+1))
		if err != nil {
			return nil, &BadRequestError{Message: fmt.Sprintf("failed to read request body: %s", err)}
		}
		if len(body) > constants.MaxTextQueryBytes {
			return nil, &BadRequestError{Message: fmt.Sprintf("search text exceeds %d bytes", constants.MaxTextQueryBytes)}
		}

		page, err := queryInt(r, "page", constants.DefaultPage)
		if err != nil {
			return nil, err
		}
		size, err := queryInt(r, "size", constants.DefaultPageSize)
		if err != nil {
			return nil, err
		}

		return &SearchMembersTextPayload{
			BearerToken: bearerToken(r),
			Query:       string(body),
			Page:        page,
			Size:        size,
		}, nil
	}
}

// DecodeUpdateMemberRequest returns a decoder for requests sent to the
// member-svc update-member endpoint.
func DecodeUpdateMemberRequest(mux goahttp.Muxer, decoder func(*http.Request) goahttp.Decoder) func(*http.Request) (any, error) {
	return func(r *http.Request) (any, error) {
		rawID := mux.Vars(r)["id"]
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, &BadRequestError{Message: fmt.Sprintf("invalid member id: %q", rawID)}
		}

		var member Member
		if err := decoder(r).Decode(&member); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &BadRequestError{Message: "member details are required"}
			}
			return nil, &BadRequestError{Message: fmt.Sprintf("malformed request body: %s", err)}
		}

		return &UpdateMemberPayload{
			BearerToken: bearerToken(r),
			ID:          id,
			Member:      &member,
		}, nil
	}
}

func decodeEmptyRequest(*http.Request) (any, error) {
	return nil, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &BadRequestError{Message: fmt.Sprintf("invalid %s parameter: %q", name, raw)}
	}
	return v, nil
}

// bearerToken returns the token of the Authorization header, nil when absent.
func bearerToken(r *http.Request) *string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	token := header
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "bearer") {
		token = strings.TrimSpace(rest)
	}
	return &token
}
