// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/api"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
)

// payloadToCriteria converts the search payload to domain search criteria
func payloadToCriteria(p *api.SearchMembersPayload) model.MemberSearchCriteria {
	criteria := model.MemberSearchCriteria{
		FirstName:      p.FirstName,
		MiddleName:     p.MiddleName,
		LastName:       p.LastName,
		BusinessUnits:  p.BusinessUnits,
		Country:        p.Country,
		SourceMemberID: p.SourceMemberID,
		Page:           constants.DefaultPage,
		Size:           constants.DefaultPageSize,
	}
	if p.Page != nil {
		criteria.Page = *p.Page
	}
	if p.Size != nil {
		criteria.Size = *p.Size
	}
	return criteria
}

// payloadToMember converts the update body to a domain member; the id and
// entitlement are not taken from the body.
func payloadToMember(m *api.Member) model.Member {
	return model.Member{
		FirstName:      m.FirstName,
		MiddleName:     m.MiddleName,
		LastName:       m.LastName,
		BusinessUnit:   m.BusinessUnit,
		Country:        m.Country,
		SourceMemberID: m.SourceMemberID,
	}
}

func domainMemberToResponse(m model.Member) *api.Member {
	return &api.Member{
		ID:             m.ID,
		FirstName:      m.FirstName,
		MiddleName:     m.MiddleName,
		LastName:       m.LastName,
		BusinessUnit:   m.BusinessUnit,
		Country:        m.Country,
		SourceMemberID: m.SourceMemberID,
		Entitled:       m.Entitled,
	}
}

// domainPageToResponse converts a domain page to the response page
func domainPageToResponse(page *model.MemberPage) *api.MemberPage {
	response := &api.MemberPage{
		Content:       make([]*api.Member, len(page.Members)),
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Number:        page.Page,
		Size:          page.Size,
	}
	for i, member := range page.Members {
		response.Content[i] = domainMemberToResponse(member)
	}
	return response
}
