// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"strings"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/filter"
)

// clause is one entry of a bool filter.
type clause map[string]any

// filterBuilder renders predicate terms as bool filter clauses.
type filterBuilder struct {
	clauses []clause
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func (f *filterBuilder) VisitContains(t filter.Contains) error {
	f.clauses = append(f.clauses, clause{
		"wildcard": map[string]any{
			string(t.Field): map[string]any{
				"value":            "*" + wildcardEscaper.Replace(t.Value) + "*",
				"case_insensitive": true,
			},
		},
	})
	return nil
}

func (f *filterBuilder) VisitEquals(t filter.Equals) error {
	f.clauses = append(f.clauses, clause{
		"term": map[string]any{string(t.Field): t.Value},
	})
	return nil
}

func (f *filterBuilder) VisitAnyOf(t filter.AnyOf) error {
	values := t.Values
	if values == nil {
		values = []string{}
	}
	f.clauses = append(f.clauses, clause{
		"terms": map[string]any{string(t.Field): values},
	})
	return nil
}

func (f *filterBuilder) VisitEntitled(filter.Entitled) error {
	f.clauses = append(f.clauses, clause{
		"term": map[string]any{string(filter.FieldEntitled): true},
	})
	return nil
}

// filterClauses renders the predicate; the entitlement clause is always last.
func filterClauses(p filter.Predicate) ([]clause, error) {
	var f filterBuilder
	if err := p.Walk(&f); err != nil {
		return nil, err
	}
	return f.clauses, nil
}
