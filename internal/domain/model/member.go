// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// Member represents a member record as seen by search and update
type Member struct {
	// ID is the store-assigned identifier
	ID int64 `json:"id" db:"id"`
	// FirstName of the member
	FirstName string `json:"first_name" db:"first_name"`
	// MiddleName of the member, may be empty
	MiddleName string `json:"middle_name" db:"middle_name"`
	// LastName of the member
	LastName string `json:"last_name" db:"last_name"`
	// BusinessUnit the member belongs to
	BusinessUnit string `json:"business_unit" db:"business_unit"`
	// Country the member is based in
	Country string `json:"country" db:"country"`
	// SourceMemberID is the identifier of the member in the system of record
	SourceMemberID string `json:"source_member_id" db:"source_member_id"`
	// Entitled gates visibility; non-entitled members never appear in search results
	Entitled bool `json:"entitled" db:"entitled"`
}

// MemberPage is one page of a member search
type MemberPage struct {
	// Members on this page, in store order
	Members []Member
	// TotalElements is the number of members matching the search across all pages
	TotalElements int64
	// TotalPages is the number of pages of Size needed for TotalElements
	TotalPages int
	// Page is the zero-based page number
	Page int
	// Size is the requested page size
	Size int
}

// MemberUpdatedEvent is published after a member has been saved by the update path
type MemberUpdatedEvent struct {
	Member    Member    `json:"member"`
	Principal string    `json:"principal,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
