// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/filter"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/paging"
)

// MemberSearcher defines the behavior for member search operations
// This abstraction allows different storage implementations (SQL, OpenSearch, etc.)
// without the domain layer knowing about specific implementations
type MemberSearcher interface {
	// SearchMembers returns the page of members matching the predicate.
	// A search that matches nothing returns an empty page, not an error
	SearchMembers(ctx context.Context, predicate filter.Predicate, page paging.Request) (*model.MemberPage, error)

	// IsReady checks if the storage is ready to serve searches
	IsReady(ctx context.Context) error
}
