// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/api"
	pkgerrors "github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name                 string
		inputError           error
		expectedErrorType    interface{}
		expectedErrorMessage string
	}{
		{
			name:                 "validation error",
			inputError:           pkgerrors.NewValidation("invalid input"),
			expectedErrorType:    &api.BadRequestError{},
			expectedErrorMessage: "invalid input",
		},
		{
			name:                 "validation error with wrapped error",
			inputError:           pkgerrors.NewValidation("validation failed", errors.New("underlying error")),
			expectedErrorType:    &api.BadRequestError{},
			expectedErrorMessage: "validation failed: underlying error",
		},
		{
			name:                 "not found error",
			inputError:           pkgerrors.NewNotFound("member not found with id: 9"),
			expectedErrorType:    &api.NotFoundError{},
			expectedErrorMessage: "member not found with id: 9",
		},
		{
			name:                 "not found error behind fmt wrapping",
			inputError:           fmt.Errorf("save member failed: %w", pkgerrors.NewNotFound("member not found with id: 9")),
			expectedErrorType:    &api.NotFoundError{},
			expectedErrorMessage: "member not found with id: 9",
		},
		{
			name:                 "unauthorized error",
			inputError:           pkgerrors.NewUnauthorized("token is expired"),
			expectedErrorType:    &api.UnauthorizedError{},
			expectedErrorMessage: "token is expired",
		},
		{
			name:                 "service unavailable error",
			inputError:           pkgerrors.NewServiceUnavailable("store unavailable", errors.New("connection refused")),
			expectedErrorType:    &api.ServiceUnavailableError{},
			expectedErrorMessage: "store unavailable: connection refused",
		},
		{
			name:                 "generic error becomes internal server error",
			inputError:           errors.New("generic error"),
			expectedErrorType:    &api.InternalServerError{},
			expectedErrorMessage: "generic error",
		},
		{
			name:                 "unexpected error becomes internal server error",
			inputError:           pkgerrors.NewUnexpected("unexpected error"),
			expectedErrorType:    &api.InternalServerError{},
			expectedErrorMessage: "unexpected error",
		},
		{
			name:                 "nil error becomes internal server error",
			inputError:           nil,
			expectedErrorType:    &api.InternalServerError{},
			expectedErrorMessage: "unknown error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion := assert.New(t)

			result := wrapError(context.Background(), tc.inputError)

			assertion.IsType(tc.expectedErrorType, result)
			assertion.Equal(tc.expectedErrorMessage, result.Error())
		})
	}
}

func TestWrapError_StatusMapping(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, 400, api.StatusCode(wrapError(ctx, pkgerrors.NewValidation("bad"))))
	assert.Equal(t, 401, api.StatusCode(wrapError(ctx, pkgerrors.NewUnauthorized("no token"))))
	assert.Equal(t, 404, api.StatusCode(wrapError(ctx, pkgerrors.NewNotFound("missing"))))
	assert.Equal(t, 503, api.StatusCode(wrapError(ctx, pkgerrors.NewServiceUnavailable("down"))))
	assert.Equal(t, 500, api.StatusCode(wrapError(ctx, errors.New("boom"))))
}
