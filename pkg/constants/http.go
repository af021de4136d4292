// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

type requestIDHeaderType string

// RequestIDHeader is the header name for the request ID
const RequestIDHeader requestIDHeaderType = "X-REQUEST-ID"

type contextID int

// PrincipalContextID is the context key under which the authenticated
// principal is stored by the JWT security handler.
const PrincipalContextID contextID = iota

type contextKey string

// PrincipalAttribute is the log attribute name for the principal.
const PrincipalAttribute contextKey = "principal"

const (
	// ServiceName identifies this service to NATS and in JWT audiences.
	ServiceName = "lfx-v2-member-search-service"
	// MaxTextQueryBytes bounds the body of a free-text search request.
	MaxTextQueryBytes = 4096
)
