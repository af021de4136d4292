// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
)

// MemberUpdater defines the interface for member update operations
type MemberUpdater interface {
	// UpdateMember overwrites the descriptive fields of an existing member
	UpdateMember(ctx context.Context, id int64, details model.Member) (*model.Member, error)
}

// MemberUpdate handles member update business operations
type MemberUpdate struct {
	repository port.MemberRepository
	publisher  port.MemberEventPublisher
	now        func() time.Time
}

// UpdateMember copies the descriptive fields of details onto the stored member.
// The stored entitlement is kept; it is not managed through this path.
func (s *MemberUpdate) UpdateMember(ctx context.Context, id int64, details model.Member) (*model.Member, error) {

	slog.InfoContext(ctx, "updating member", "member_id", id)

	if err := validateMemberDetails(details); err != nil {
		return nil, err
	}

	member, err := s.repository.FindMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := *member

	member.FirstName = details.FirstName
	member.MiddleName = details.MiddleName
	member.LastName = details.LastName
	member.BusinessUnit = details.BusinessUnit
	member.Country = details.Country
	member.SourceMemberID = details.SourceMemberID

	saved, err := s.repository.SaveMember(ctx, *member)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save member",
			"member_id", id,
			"error", err,
		)
		return nil, fmt.Errorf("save member failed: %w", err)
	}

	slog.InfoContext(ctx, "member updated",
		"member_id", id,
		"old_first_name", previous.FirstName,
		"old_last_name", previous.LastName,
		"old_business_unit", previous.BusinessUnit,
		"old_country", previous.Country,
	)

	principal, _ := ctx.Value(constants.PrincipalContextID).(string)
	event := model.MemberUpdatedEvent{
		Member:    *saved,
		Principal: principal,
		UpdatedAt: s.now().UTC(),
	}
	if errPublish := s.publisher.PublishMemberUpdated(ctx, event); errPublish != nil {
		// the member is already saved, so the update still succeeds
		slog.ErrorContext(ctx, "failed to publish member updated event",
			"member_id", id,
			"error", errPublish,
		)
	}

	return saved, nil
}

func validateMemberDetails(details model.Member) error {
	if strings.TrimSpace(details.FirstName) == "" {
		return errors.NewValidation("first name is required")
	}
	if strings.TrimSpace(details.LastName) == "" {
		return errors.NewValidation("last name is required")
	}
	return nil
}

// NewMemberUpdate creates a new MemberUpdate instance
func NewMemberUpdate(repository port.MemberRepository, publisher port.MemberEventPublisher) MemberUpdater {
	return &MemberUpdate{
		repository: repository,
		publisher:  publisher,
		now:        time.Now,
	}
}
