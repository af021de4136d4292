// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package extractor derives structured member search criteria from a free
// text query using a fixed vocabulary. It is a heuristic, not a parser.
package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
)

// minNameLength is the rune length a token must exceed to be taken as a name.
const minNameLength = 2

// wordPattern matches one vocabulary term as a whole word in a lower-cased
// query.
type wordPattern struct {
	term string
	re   *regexp.Regexp
}

// Extractor holds the compiled vocabulary. It is immutable after New and
// safe for concurrent use.
type Extractor struct {
	businessUnits []wordPattern
	countries     []wordPattern
	// knownTerms and stopWords are lower-cased for case-insensitive lookups
	knownTerms map[string]struct{}
	stopWords  map[string]struct{}
}

// New compiles v into an Extractor.
func New(v model.Vocabulary) *Extractor {
	e := &Extractor{
		businessUnits: compile(v.BusinessUnits),
		countries:     compile(v.Countries),
		knownTerms:    make(map[string]struct{}, len(v.BusinessUnits)+len(v.Countries)),
		stopWords:     make(map[string]struct{}, len(v.StopWords)),
	}
	for _, term := range v.BusinessUnits {
		e.knownTerms[strings.ToLower(term)] = struct{}{}
	}
	for _, term := range v.Countries {
		e.knownTerms[strings.ToLower(term)] = struct{}{}
	}
	for _, word := range v.StopWords {
		e.stopWords[strings.ToLower(word)] = struct{}{}
	}
	return e
}

func compile(terms []string) []wordPattern {
	patterns := make([]wordPattern, 0, len(terms))
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		patterns = append(patterns, wordPattern{
			term: term,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`),
		})
	}
	return patterns
}

// Extract derives criteria from query. It never fails: a query with nothing
// recognisable yields empty criteria with default pagination.
func (e *Extractor) Extract(query string) model.MemberSearchCriteria {
	criteria := model.MemberSearchCriteria{
		Page: constants.DefaultPage,
		Size: constants.DefaultPageSize,
	}
	lowerQuery := strings.ToLower(query)

	// every business unit present, in vocabulary order
	for _, p := range e.businessUnits {
		if p.re.MatchString(lowerQuery) {
			criteria.BusinessUnits = append(criteria.BusinessUnits, p.term)
		}
	}

	// first country in vocabulary order wins
	for _, p := range e.countries {
		if p.re.MatchString(lowerQuery) {
			country := p.term
			criteria.Country = &country
			break
		}
	}

	var names nameSlots
	for _, token := range strings.Fields(query) {
		if e.isNameCandidate(token) {
			names.offer(token)
		}
	}
	criteria.FirstName = names.first()
	criteria.LastName = names.last()

	return criteria
}

func (e *Extractor) isNameCandidate(token string) bool {
	first, _ := utf8.DecodeRuneInString(token)
	if !unicode.IsUpper(first) || utf8.RuneCountInString(token) <= minNameLength {
		return false
	}
	lower := strings.ToLower(token)
	if _, known := e.knownTerms[lower]; known {
		return false
	}
	if _, stop := e.stopWords[lower]; stop {
		return false
	}
	return true
}

// nameSlots fills first name, then last name; later offers are dropped.
type nameSlots struct {
	values [2]string
	filled int
}

func (s *nameSlots) offer(token string) {
	if s.filled == len(s.values) {
		return
	}
	s.values[s.filled] = token
	s.filled++
}

func (s *nameSlots) first() *string {
	if s.filled < 1 {
		return nil
	}
	return &s.values[0]
}

func (s *nameSlots) last() *string {
	if s.filled < 2 {
		return nil
	}
	return &s.values[1]
}
