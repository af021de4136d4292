// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package filter

import (
	"slices"
	"strings"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
)

// Field names a filterable member attribute. The value is the attribute's
// storage name (SQL column, OpenSearch field).
type Field string

const (
	FieldFirstName      Field = "first_name"
	FieldMiddleName     Field = "middle_name"
	FieldLastName       Field = "last_name"
	FieldBusinessUnit   Field = "business_unit"
	FieldCountry        Field = "country"
	FieldSourceMemberID Field = "source_member_id"
	FieldEntitled       Field = "entitled"
)

// valueOf returns the string attribute of m named by f.
func (f Field) valueOf(m model.Member) string {
	switch f {
	case FieldFirstName:
		return m.FirstName
	case FieldMiddleName:
		return m.MiddleName
	case FieldLastName:
		return m.LastName
	case FieldBusinessUnit:
		return m.BusinessUnit
	case FieldCountry:
		return m.Country
	case FieldSourceMemberID:
		return m.SourceMemberID
	}
	return ""
}

// Term is one conjunct of a Predicate.
type Term interface {
	// Match reports whether m satisfies the term.
	Match(m model.Member) bool
	// Accept dispatches to the Visitor method for the concrete term.
	Accept(v Visitor) error
}

// Visitor renders terms for a storage backend.
type Visitor interface {
	VisitContains(t Contains) error
	VisitEquals(t Equals) error
	VisitAnyOf(t AnyOf) error
	VisitEntitled(t Entitled) error
}

// Contains is a case-insensitive substring match.
type Contains struct {
	Field Field
	Value string
}

// Match implements Term.
func (t Contains) Match(m model.Member) bool {
	return strings.Contains(strings.ToLower(t.Field.valueOf(m)), strings.ToLower(t.Value))
}

// Accept implements Term.
func (t Contains) Accept(v Visitor) error {
	return v.VisitContains(t)
}

// Equals is an exact, case-sensitive match.
type Equals struct {
	Field Field
	Value string
}

// Match implements Term.
func (t Equals) Match(m model.Member) bool {
	return t.Field.valueOf(m) == t.Value
}

// Accept implements Term.
func (t Equals) Accept(v Visitor) error {
	return v.VisitEquals(t)
}

// AnyOf matches when the field equals any of Values.
type AnyOf struct {
	Field  Field
	Values []string
}

// Match implements Term.
func (t AnyOf) Match(m model.Member) bool {
	return slices.Contains(t.Values, t.Field.valueOf(m))
}

// Accept implements Term.
func (t AnyOf) Accept(v Visitor) error {
	return v.VisitAnyOf(t)
}

// Entitled matches entitled members only.
type Entitled struct{}

// Match implements Term.
func (Entitled) Match(m model.Member) bool {
	return m.Entitled
}

// Accept implements Term.
func (t Entitled) Accept(v Visitor) error {
	return v.VisitEntitled(t)
}

// Predicate is the conjunction of the criteria terms and the entitlement
// term. The criteria terms are unexported and every way of reading the
// predicate appends Entitled as the last conjunct, so a Predicate cannot
// exist without it, the zero value included.
type Predicate struct {
	terms []Term
}

// Terms returns the conjuncts in evaluation order; the last one is always
// Entitled.
func (p Predicate) Terms() []Term {
	terms := make([]Term, 0, len(p.terms)+1)
	terms = append(terms, p.terms...)
	return append(terms, Entitled{})
}

// Match reports whether m satisfies every conjunct.
func (p Predicate) Match(m model.Member) bool {
	for _, t := range p.Terms() {
		if !t.Match(m) {
			return false
		}
	}
	return true
}

// Walk visits every conjunct in order and stops at the first error.
func (p Predicate) Walk(v Visitor) error {
	for _, t := range p.Terms() {
		if err := t.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns the members that satisfy the predicate, preserving order.
func (p Predicate) Apply(members []model.Member) []model.Member {
	matched := make([]model.Member, 0, len(members))
	for _, m := range members {
		if p.Match(m) {
			matched = append(matched, m)
		}
	}
	return matched
}
