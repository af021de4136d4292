// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package sqlstore

import (
	"strings"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/filter"
)

// whereBuilder renders a predicate as a WHERE clause with '?' placeholders.
type whereBuilder struct {
	clauses []string
	args    []any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (w *whereBuilder) VisitContains(t filter.Contains) error {
	w.clauses = append(w.clauses, "LOWER("+string(t.Field)+`) LIKE ? ESCAPE '\'`)
	w.args = append(w.args, "%"+likeEscaper.Replace(strings.ToLower(t.Value))+"%")
	return nil
}

func (w *whereBuilder) VisitEquals(t filter.Equals) error {
	w.clauses = append(w.clauses, string(t.Field)+" = ?")
	w.args = append(w.args, t.Value)
	return nil
}

func (w *whereBuilder) VisitAnyOf(t filter.AnyOf) error {
	if len(t.Values) == 0 {
		w.clauses = append(w.clauses, "1 = 0")
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Values)), ", ")
	w.clauses = append(w.clauses, string(t.Field)+" IN ("+placeholders+")")
	for _, v := range t.Values {
		w.args = append(w.args, v)
	}
	return nil
}

func (w *whereBuilder) VisitEntitled(filter.Entitled) error {
	w.clauses = append(w.clauses, string(filter.FieldEntitled)+" = TRUE")
	return nil
}

// where renders the predicate conjunction; the entitlement clause is always last.
func where(p filter.Predicate) (string, []any, error) {
	var w whereBuilder
	if err := p.Walk(&w); err != nil {
		return "", nil, err
	}
	return strings.Join(w.clauses, " AND "), w.args, nil
}
