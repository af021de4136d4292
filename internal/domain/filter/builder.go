// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package filter

import (
	"strings"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
)

// Builder turns search criteria into a Predicate. It holds no state and is
// safe for concurrent use.
type Builder struct{}

// NewBuilder returns a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns the predicate for c. A term is added only for criteria
// fields that are set and not blank; pagination is ignored.
func (b *Builder) Build(c model.MemberSearchCriteria) Predicate {
	var terms []Term

	if v, ok := present(c.FirstName); ok {
		terms = append(terms, Contains{Field: FieldFirstName, Value: v})
	}
	if v, ok := present(c.MiddleName); ok {
		terms = append(terms, Contains{Field: FieldMiddleName, Value: v})
	}
	if v, ok := present(c.LastName); ok {
		terms = append(terms, Contains{Field: FieldLastName, Value: v})
	}

	var units []string
	for _, unit := range c.BusinessUnits {
		if !isBlank(unit) {
			units = append(units, unit)
		}
	}
	if len(units) > 0 {
		terms = append(terms, AnyOf{Field: FieldBusinessUnit, Values: units})
	}

	if v, ok := present(c.Country); ok {
		terms = append(terms, Equals{Field: FieldCountry, Value: v})
	}
	if v, ok := present(c.SourceMemberID); ok {
		terms = append(terms, Equals{Field: FieldSourceMemberID, Value: v})
	}

	return Predicate{terms: terms}
}

func present(s *string) (string, bool) {
	if s == nil || isBlank(*s) {
		return "", false
	}
	return *s, true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
