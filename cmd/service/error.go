// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/api"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
)

func wrapError(ctx context.Context, err error) error {

	f := func(err error) error {
		if err == nil {
			return &api.InternalServerError{
				Message: "unknown error",
			}
		}

		var (
			validation   errors.Validation
			notFound     errors.NotFound
			unauthorized errors.Unauthorized
			unavailable  errors.ServiceUnavailable
		)
		switch {
		case stderrors.As(err, &validation):
			return &api.BadRequestError{
				Message: validation.Error(),
			}
		case stderrors.As(err, &notFound):
			return &api.NotFoundError{
				Message: notFound.Error(),
			}
		case stderrors.As(err, &unauthorized):
			return &api.UnauthorizedError{
				Message: unauthorized.Error(),
			}
		case stderrors.As(err, &unavailable):
			return &api.ServiceUnavailableError{
				Message: unavailable.Error(),
			}
		default:
			return &api.InternalServerError{
				Message: err.Error(),
			}
		}
	}

	slog.ErrorContext(ctx, "request failed",
		"error", err,
	)
	return f(err)
}
