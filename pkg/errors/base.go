// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "fmt"

// base holds the message and optional cause shared by every error type in
// this package.
type base struct {
	message string
	err     error
}

// error renders "message" or "message: cause". Every embedding type uses it,
// so changing the format here changes it everywhere.
func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (b base) Unwrap() error {
	return b.err
}
