// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"log/slog"
)

// Authenticator defines the interface for authentication operations
type Authenticator interface {
	// ParsePrincipal validates a bearer token and returns the principal it names
	ParsePrincipal(ctx context.Context, token string, logger *slog.Logger) (string, error)
}
