// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Vocabulary is the fixed set of terms the free-text extractor classifies
// query words against. Order is significant: business units are reported in
// declaration order and the first declared country found wins.
type Vocabulary struct {
	BusinessUnits []string `yaml:"business_units"`
	Countries     []string `yaml:"countries"`
	StopWords     []string `yaml:"stop_words"`
}

// DefaultVocabulary returns the built-in vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		BusinessUnits: []string{"IT", "HR", "Admin", "Sales", "Finance", "Legal"},
		Countries:     []string{"USA", "US", "UK", "India", "Canada", "Germany", "Japan"},
		StopWords: []string{
			"Find", "Search", "Show", "Get", "List", "All", "Members", "People",
			"Employees", "Who", "Are", "In", "The", "Living", "Working",
		},
	}
}
