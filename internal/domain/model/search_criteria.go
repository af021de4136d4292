// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// MemberSearchCriteria encapsulates all possible member search parameters.
// A nil pointer or empty slice means no constraint on that field.
type MemberSearchCriteria struct {
	// FirstName substring, case-insensitive
	FirstName *string
	// MiddleName substring, case-insensitive
	MiddleName *string
	// LastName substring, case-insensitive
	LastName *string
	// BusinessUnits a member may belong to (any of)
	BusinessUnits []string
	// Country, exact match
	Country *string
	// SourceMemberID, exact match
	SourceMemberID *string
	// Page is the zero-based page number
	Page int
	// Size is the page size
	Size int
}
