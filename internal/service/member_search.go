// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/extractor"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/filter"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/paging"
)

// MemberSearcher defines the interface for member search operations
type MemberSearcher interface {
	// SearchMembers searches members using structured criteria
	SearchMembers(ctx context.Context, criteria model.MemberSearchCriteria) (*model.MemberPage, error)

	// SearchMembersByText derives criteria from a free-text query and searches with them
	SearchMembersByText(ctx context.Context, text string, page, size int) (*model.MemberPage, error)

	// IsReady checks if the member store is ready
	IsReady(ctx context.Context) error
}

// MemberSearch handles member search business operations
// It depends on abstractions (interfaces) rather than concrete implementations
type MemberSearch struct {
	memberSearcher port.MemberSearcher
	extractor      *extractor.Extractor
	builder        *filter.Builder
}

// SearchMembers validates pagination, builds the predicate and runs it against the store
func (s *MemberSearch) SearchMembers(ctx context.Context, criteria model.MemberSearchCriteria) (*model.MemberPage, error) {

	slog.DebugContext(ctx, "starting member search",
		"first_name", criteria.FirstName,
		"middle_name", criteria.MiddleName,
		"last_name", criteria.LastName,
		"business_units", criteria.BusinessUnits,
		"country", criteria.Country,
		"source_member_id", criteria.SourceMemberID,
		"page", criteria.Page,
		"size", criteria.Size,
	)

	page, err := paging.NewRequest(criteria.Page, criteria.Size)
	if err != nil {
		slog.WarnContext(ctx, "member search rejected", "error", err)
		return nil, err
	}

	predicate := s.builder.Build(criteria)

	result, err := s.memberSearcher.SearchMembers(ctx, predicate, page)
	if err != nil {
		slog.ErrorContext(ctx, "member search operation failed",
			"error", err,
		)
		return nil, fmt.Errorf("search operation failed: %w", err)
	}

	slog.InfoContext(ctx, "member search completed",
		"total_elements", result.TotalElements,
		"page", result.Page,
		"total_pages", result.TotalPages,
	)

	return result, nil
}

// SearchMembersByText extracts criteria from text, then applies the caller's
// pagination over the extracted defaults
func (s *MemberSearch) SearchMembersByText(ctx context.Context, text string, page, size int) (*model.MemberPage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidation("search text is required")
	}

	slog.InfoContext(ctx, "text search query received", "query", text)

	criteria := s.extractor.Extract(text)
	criteria.Page = page
	criteria.Size = size

	return s.SearchMembers(ctx, criteria)
}

func (s *MemberSearch) IsReady(ctx context.Context) error {
	return s.memberSearcher.IsReady(ctx)
}

// NewMemberSearch creates a new MemberSearch instance
func NewMemberSearch(memberSearcher port.MemberSearcher, vocabulary model.Vocabulary) MemberSearcher {
	return &MemberSearch{
		memberSearcher: memberSearcher,
		extractor:      extractor.New(vocabulary),
		builder:        filter.NewBuilder(),
	}
}
