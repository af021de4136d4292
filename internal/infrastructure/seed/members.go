// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package seed provides the demo member data loaded into an empty store.
package seed

import (
	"strconv"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
)

// DefaultGenerated is the number of generated members added after the named ones.
const DefaultGenerated = 1000

// Members returns two named members, one entitled and one not, followed by
// generated members User1..UserN of which every fifth is not entitled.
// IDs are left zero for the store to assign.
func Members(generated int) []model.Member {
	members := make([]model.Member, 0, generated+2)
	members = append(members,
		model.Member{
			FirstName:      "John",
			MiddleName:     "D",
			LastName:       "Doe",
			BusinessUnit:   "IT",
			Country:        "USA",
			SourceMemberID: "1001",
			Entitled:       true,
		},
		model.Member{
			FirstName:      "Alice",
			MiddleName:     "K",
			LastName:       "Johnson",
			BusinessUnit:   "IT",
			Country:        "USA",
			SourceMemberID: "1003",
			Entitled:       false,
		},
	)

	for i := 1; i <= generated; i++ {
		n := strconv.Itoa(i)
		members = append(members, model.Member{
			FirstName:      "User" + n,
			MiddleName:     "M",
			LastName:       "Last" + n,
			BusinessUnit:   "IT",
			Country:        "USA",
			SourceMemberID: "S" + n,
			Entitled:       i%5 != 0,
		})
	}
	return members
}
