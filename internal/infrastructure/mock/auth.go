// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"os"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
)

// MockPrincipalEnv names the variable holding the principal returned by MockAuthService
const MockPrincipalEnv = "JWT_AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL"

// MockAuthService accepts any token and returns a fixed principal
type MockAuthService struct {
	principal string
}

// ParsePrincipal returns the configured principal, ignoring the token
func (m *MockAuthService) ParsePrincipal(ctx context.Context, token string, logger *slog.Logger) (string, error) {
	if m.principal == "" {
		return "", errors.NewUnauthorized("mock principal not configured in " + MockPrincipalEnv)
	}

	logger.DebugContext(ctx, "parsed mock principal",
		"user_id", m.principal,
	)

	return m.principal, nil
}

// NewMockAuthService creates a mock authenticator using the principal from the environment
func NewMockAuthService() port.Authenticator {
	return NewMockAuthServiceWithPrincipal(os.Getenv(MockPrincipalEnv))
}

// NewMockAuthServiceWithPrincipal creates a mock authenticator returning principal
func NewMockAuthServiceWithPrincipal(principal string) port.Authenticator {
	return &MockAuthService{principal: principal}
}
