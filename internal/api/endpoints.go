// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"

	goa "goa.design/goa/v3/pkg"
	"goa.design/goa/v3/security"
)

// Endpoints wraps the service methods.
type Endpoints struct {
	SearchMembers     goa.Endpoint
	SearchMembersText goa.Endpoint
	UpdateMember      goa.Endpoint
	Readyz            goa.Endpoint
	Livez             goa.Endpoint
}

// NewEndpoints wraps the methods of the service. s must also implement Auther.
func NewEndpoints(s Service) *Endpoints {
	a := s.(Auther)
	return &Endpoints{
		SearchMembers:     NewSearchMembersEndpoint(s, a.JWTAuth),
		SearchMembersText: NewSearchMembersTextEndpoint(s, a.JWTAuth),
		UpdateMember:      NewUpdateMemberEndpoint(s, a.JWTAuth),
		Readyz:            NewReadyzEndpoint(s),
		Livez:             NewLivezEndpoint(s),
	}
}

// Use applies the given middleware to all the endpoints.
func (e *Endpoints) Use(m func(goa.Endpoint) goa.Endpoint) {
	e.SearchMembers = m(e.SearchMembers)
	e.SearchMembersText = m(e.SearchMembersText)
	e.UpdateMember = m(e.UpdateMember)
	e.Readyz = m(e.Readyz)
	e.Livez = m(e.Livez)
}

func jwtScheme() *security.JWTScheme {
	return &security.JWTScheme{
		Name:           "jwt",
		Scopes:         []string{},
		RequiredScopes: []string{},
	}
}

func authorize(ctx context.Context, authJWTFn security.AuthJWTFunc, bearer *string) (context.Context, error) {
	var token string
	if bearer != nil {
		token = *bearer
	}
	return authJWTFn(ctx, token, jwtScheme())
}

// NewSearchMembersEndpoint returns an endpoint function that calls the method
// "search-members" of the service.
func NewSearchMembersEndpoint(s Service, authJWTFn security.AuthJWTFunc) goa.Endpoint {
	return func(ctx context.Context, req any) (any, error) {
		p := req.(*SearchMembersPayload)
		ctx, err := authorize(ctx, authJWTFn, p.BearerToken)
		if err != nil {
			return nil, err
		}
		return s.SearchMembers(ctx, p)
	}
}

// NewSearchMembersTextEndpoint returns an endpoint function that calls the
// method "search-members-text" of the service.
func NewSearchMembersTextEndpoint(s Service, authJWTFn security.AuthJWTFunc) goa.Endpoint {
	return func(ctx context.Context, req any) (any, error) {
		p := req.(*SearchMembersTextPayload)
		ctx, err := authorize(ctx, authJWTFn, p.BearerToken)
		if err != nil {
			return nil, err
		}
		return s.SearchMembersText(ctx, p)
	}
}

// NewUpdateMemberEndpoint returns an endpoint function that calls the method
// "update-member" of the service.
func NewUpdateMemberEndpoint(s Service, authJWTFn security.AuthJWTFunc) goa.Endpoint {
	return func(ctx context.Context, req any) (any, error) {
		p := req.(*UpdateMemberPayload)
		ctx, err := authorize(ctx, authJWTFn, p.BearerToken)
		if err != nil {
			return nil, err
		}
		return s.UpdateMember(ctx, p)
	}
}

// NewReadyzEndpoint returns an endpoint function that calls the method
// "readyz" of the service.
func NewReadyzEndpoint(s Service) goa.Endpoint {
	return func(ctx context.Context, req any) (any, error) {
		return s.Readyz(ctx)
	}
}

// NewLivezEndpoint returns an endpoint function that calls the method "livez"
// of the service.
func NewLivezEndpoint(s Service) goa.Endpoint {
	return func(ctx context.Context, req any) (any, error) {
		return s.Livez(ctx)
	}
}
