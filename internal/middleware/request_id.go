// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/log"

	"github.com/google/uuid"
)

// RequestIDMiddleware creates a middleware that adds a request ID to the context
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Try to get request ID from header first
			requestID := r.Header.Get(string(constants.RequestIDHeader))

			// If no request ID in header, generate a new one
			if requestID == "" {
				requestID = generateRequestID()
			}

			// Add request ID to response header
			w.Header().Set(string(constants.RequestIDHeader), requestID)

			ctx := log.WithRequestID(r.Context(), requestID)

			// Every log line written with this context carries the request ID
			ctx = log.AppendCtx(ctx, slog.String(string(constants.RequestIDHeader), requestID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// generateRequestID generates a new unique request ID
func generateRequestID() string {
	return uuid.New().String()
}
