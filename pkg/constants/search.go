// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// DefaultPage is the zero-based page used when a caller does not ask for one.
	DefaultPage = 0
	// DefaultPageSize is the number of members per page when a caller does
	// not ask for a size.
	DefaultPageSize = 10
	// MinPageSize is the smallest page size a caller may request.
	MinPageSize = 1
	// MaxPageSize is the largest page size a caller may request.
	MaxPageSize = 100
)

const (
	// MemberUpdatedSubject is the NATS subject member update events are
	// published on.
	MemberUpdatedSubject = "lfx.member-search.member_updated"
)
