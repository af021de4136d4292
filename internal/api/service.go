// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package api holds the transport contract of the member search service:
// the service interface, its payload and result types, goa endpoints and
// the HTTP server that decodes requests into payloads.
package api

import (
	"context"
	"time"

	"goa.design/goa/v3/security"
)

// Service searches and updates members.
type Service interface {
	// Search members using structured criteria with pagination.
	SearchMembers(context.Context, *SearchMembersPayload) (res *MemberPage, err error)
	// Search members using a natural language query.
	SearchMembersText(context.Context, *SearchMembersTextPayload) (res *MemberPage, err error)
	// Update an existing member by ID.
	UpdateMember(context.Context, *UpdateMemberPayload) (res *Member, err error)
	// Check if the service is able to take inbound requests.
	Readyz(context.Context) (res []byte, err error)
	// Check if the service is alive.
	Livez(context.Context) (res []byte, err error)
}

// Auther defines the authorization functions to be implemented by the service.
type Auther interface {
	// JWTAuth implements the authorization logic for the JWT security scheme.
	JWTAuth(ctx context.Context, token string, schema *security.JWTScheme) (context.Context, error)
}

// ServiceName is the name of the service.
const ServiceName = "member-svc"

// MethodNames lists the service method names.
var MethodNames = [5]string{"search-members", "search-members-text", "update-member", "readyz", "livez"}

// SearchMembersPayload is the payload type of the search-members method.
type SearchMembersPayload struct {
	// JWT token
	BearerToken    *string  `json:"-"`
	FirstName      *string  `json:"firstName,omitempty"`
	MiddleName     *string  `json:"middleName,omitempty"`
	LastName       *string  `json:"lastName,omitempty"`
	BusinessUnits  []string `json:"businessUnits,omitempty"`
	Country        *string  `json:"country,omitempty"`
	SourceMemberID *string  `json:"sourceMemberId,omitempty"`
	// Zero-based page number, defaults to 0
	Page *int `json:"page,omitempty"`
	// Page size, defaults to 10
	Size *int `json:"size,omitempty"`
}

// SearchMembersTextPayload is the payload type of the search-members-text method.
type SearchMembersTextPayload struct {
	// JWT token
	BearerToken *string
	// Free text query, sent as the raw request body
	Query string
	Page  int
	Size  int
}

// UpdateMemberPayload is the payload type of the update-member method.
type UpdateMemberPayload struct {
	// JWT token
	BearerToken *string
	// Member ID from the path
	ID int64
	// New member details
	Member *Member
}

// Member is the JSON representation of a member.
type Member struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName"`
	BusinessUnit   string `json:"businessUnit"`
	Country        string `json:"country"`
	SourceMemberID string `json:"sourceMemberId"`
	Entitled       bool   `json:"entitled"`
}

// MemberPage is one page of search results.
type MemberPage struct {
	Content       []*Member `json:"content"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// BadRequestError is returned for invalid input.
type BadRequestError struct {
	Message string
}

// UnauthorizedError is returned when the bearer token is missing or invalid.
type UnauthorizedError struct {
	Message string
}

// NotFoundError is returned when the member does not exist.
type NotFoundError struct {
	Message string
}

// ServiceUnavailableError is returned when a backend is not ready.
type ServiceUnavailableError struct {
	Message string
}

// InternalServerError is returned for unexpected failures.
type InternalServerError struct {
	Message string
}

// Error returns an error description.
func (e *BadRequestError) Error() string { return e.Message }

// ErrorName returns the error name.
func (e *BadRequestError) ErrorName() string { return "BadRequest" }

// Error returns an error description.
func (e *UnauthorizedError) Error() string { return e.Message }

// ErrorName returns the error name.
func (e *UnauthorizedError) ErrorName() string { return "Unauthorized" }

// Error returns an error description.
func (e *NotFoundError) Error() string { return e.Message }

// ErrorName returns the error name.
func (e *NotFoundError) ErrorName() string { return "NotFound" }

// Error returns an error description.
func (e *ServiceUnavailableError) Error() string { return e.Message }

// ErrorName returns the error name.
func (e *ServiceUnavailableError) ErrorName() string { return "ServiceUnavailable" }

// Error returns an error description.
func (e *InternalServerError) Error() string { return e.Message }

// ErrorName returns the error name.
func (e *InternalServerError) ErrorName() string { return "InternalServerError" }
