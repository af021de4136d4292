// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// LoadVocabulary reads a YAML vocabulary file. Lists missing from the file
// keep their built-in defaults.
//
//	business_units: [IT, HR]
//	countries: [USA, India]
//	stop_words: [Find, Show]
func LoadVocabulary(path string) (model.Vocabulary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Vocabulary{}, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}
	return ParseVocabulary(b)
}

// ParseVocabulary decodes a YAML vocabulary document.
func ParseVocabulary(b []byte) (model.Vocabulary, error) {
	var parsed model.Vocabulary
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return model.Vocabulary{}, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	v := model.DefaultVocabulary()
	if parsed.BusinessUnits != nil {
		v.BusinessUnits = parsed.BusinessUnits
	}
	if parsed.Countries != nil {
		v.Countries = parsed.Countries
	}
	if parsed.StopWords != nil {
		v.StopWords = parsed.StopWords
	}
	return v, nil
}
