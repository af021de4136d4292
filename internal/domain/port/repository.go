// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
)

// MemberRepository defines lookup and persistence of single members
type MemberRepository interface {
	// FindMemberByID returns errors.NotFound when no member has the id
	FindMemberByID(ctx context.Context, id int64) (*model.Member, error)

	// SaveMember stores the member and returns it as persisted
	SaveMember(ctx context.Context, member model.Member) (*model.Member, error)
}

// MemberStore is a storage backend serving both search and update
type MemberStore interface {
	MemberSearcher
	MemberRepository
}
