// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package paging holds offset pagination arithmetic shared by every member
// store backend.
package paging

import (
	"fmt"
	"math"

	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
)

// Request is a zero-based page number and a page size.
type Request struct {
	Page int
	Size int
}

// NewRequest returns a validated Request.
func NewRequest(page, size int) (Request, error) {
	r := Request{Page: page, Size: size}
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	return r, nil
}

// Validate rejects negative pages and sizes outside [MinPageSize, MaxPageSize].
func (r Request) Validate() error {
	if r.Page < 0 {
		return errors.NewValidation(
			"invalid pagination",
			fmt.Errorf("page number must be non-negative, got %d", r.Page),
		)
	}
	if r.Size < constants.MinPageSize {
		return errors.NewValidation(
			"invalid pagination",
			fmt.Errorf("page size must be at least %d, got %d", constants.MinPageSize, r.Size),
		)
	}
	if r.Size > constants.MaxPageSize {
		return errors.NewValidation(
			"invalid pagination",
			fmt.Errorf("page size must not exceed %d, got %d", constants.MaxPageSize, r.Size),
		)
	}
	return nil
}

// Offset is the number of matching rows that precede this page. It
// saturates at math.MaxInt instead of overflowing for huge page numbers.
func (r Request) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

// TotalPages returns how many pages of the given size are needed to hold
// total elements. A size below one yields zero pages.
func TotalPages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Window returns the [start, end) slice bounds of this page inside a result
// set of n elements; both bounds are clamped to n.
func (r Request) Window(n int) (start, end int) {
	start = r.Offset()
	if start > n {
		start = n
	}
	if start < 0 {
		start = 0
	}
	end = start
	if r.Size > 0 {
		end = start + min(r.Size, n-start)
	}
	return start, end
}
