// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/api"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/port"
	usecase "github.com/linuxfoundation/lfx-v2-member-search-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/log"

	"goa.design/goa/v3/security"
)

// member-svc service implementation using clean architecture.
type memberSvcsrvc struct {
	searchService usecase.MemberSearcher
	updateService usecase.MemberUpdater
	auth          port.Authenticator
}

// JWTAuth implements the authorization logic for service "member-svc" for the
// "jwt" security scheme.
func (s *memberSvcsrvc) JWTAuth(ctx context.Context, token string, scheme *security.JWTScheme) (context.Context, error) {

	principal, err := s.auth.ParsePrincipal(ctx, token, slog.Default())
	if err != nil {
		return ctx, wrapError(ctx, err)
	}

	// Log the principal in all logs for this request.
	ctx = log.AppendCtx(ctx, slog.String(string(constants.PrincipalAttribute), principal))

	return context.WithValue(ctx, constants.PrincipalContextID, principal), nil
}

// Search members using structured criteria with pagination.
func (s *memberSvcsrvc) SearchMembers(ctx context.Context, p *api.SearchMembersPayload) (res *api.MemberPage, err error) {

	slog.DebugContext(ctx, "memberSvc.search-members",
		"first_name", p.FirstName,
		"last_name", p.LastName,
	)

	page, errSearch := s.searchService.SearchMembers(ctx, payloadToCriteria(p))
	if errSearch != nil {
		return nil, wrapError(ctx, errSearch)
	}

	return domainPageToResponse(page), nil
}

// Search members using a natural language query.
func (s *memberSvcsrvc) SearchMembersText(ctx context.Context, p *api.SearchMembersTextPayload) (res *api.MemberPage, err error) {

	slog.DebugContext(ctx, "memberSvc.search-members-text",
		"query", p.Query,
	)

	page, errSearch := s.searchService.SearchMembersByText(ctx, p.Query, p.Page, p.Size)
	if errSearch != nil {
		return nil, wrapError(ctx, errSearch)
	}

	return domainPageToResponse(page), nil
}

// Update an existing member by ID.
func (s *memberSvcsrvc) UpdateMember(ctx context.Context, p *api.UpdateMemberPayload) (res *api.Member, err error) {

	slog.DebugContext(ctx, "memberSvc.update-member",
		"member_id", p.ID,
	)

	var details model.Member
	if p.Member != nil {
		details = payloadToMember(p.Member)
	}

	updated, errUpdate := s.updateService.UpdateMember(ctx, p.ID, details)
	if errUpdate != nil {
		return nil, wrapError(ctx, errUpdate)
	}

	return domainMemberToResponse(*updated), nil
}

// Check if the service is able to take inbound requests.
func (s *memberSvcsrvc) Readyz(ctx context.Context) (res []byte, err error) {
	errIsReady := s.searchService.IsReady(ctx)
	if errIsReady != nil {
		slog.ErrorContext(ctx, "memberSvc.readyz failed", "error", errIsReady)
		return nil, wrapError(ctx, errIsReady)
	}
	return []byte("OK\n"), nil
}

// Check if the service is alive.
func (s *memberSvcsrvc) Livez(ctx context.Context) (res []byte, err error) {
	// Always succeeds while the process runs; a liveness probe restarts the
	// pod only when the process is wedged.
	return []byte("OK\n"), nil
}

// NewMemberSvc returns the member-svc service implementation.
func NewMemberSvc(store port.MemberStore,
	publisher port.MemberEventPublisher,
	authService port.Authenticator,
	vocabulary model.Vocabulary,
) api.Service {
	return &memberSvcsrvc{
		searchService: usecase.NewMemberSearch(store, vocabulary),
		updateService: usecase.NewMemberUpdate(store, publisher),
		auth:          authService,
	}
}
