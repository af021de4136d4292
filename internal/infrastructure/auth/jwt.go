// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

const (
	// PS256 is the default for Heimdall's JWT finalizer.
	signatureAlgorithm = validator.PS256
	defaultIssuer      = "heimdall"
	defaultJWKSURL     = "http://heimdall:4457/.well-known/jwks"
	jwksCacheTTL       = 5 * time.Minute
	allowedClockSkew   = 5 * time.Second
)

// JWTAuthConfig holds the configuration parameters for JWT authentication.
type JWTAuthConfig struct {
	// JWKSURL is the URL to the JSON Web Key Set endpoint
	JWKSURL string
	// Audience is the intended audience for the JWT token
	Audience string
	// Issuer is the expected iss claim
	Issuer string
}

// memberSearchClaims are the custom claims the gateway adds to the token.
type memberSearchClaims struct {
	Principal string `json:"principal"`
	Email     string `json:"email,omitempty"`
}

// Validate rejects tokens without a principal.
func (c *memberSearchClaims) Validate(ctx context.Context) error {
	if c.Principal == "" {
		return errors.New("principal must be provided")
	}
	return nil
}

// JWTAuth validates bearer tokens against a JWKS endpoint.
type JWTAuth struct {
	validator *validator.Validator
}

// ParsePrincipal validates the token and returns its principal claim.
func (j *JWTAuth) ParsePrincipal(ctx context.Context, token string, logger *slog.Logger) (string, error) {

	if j.validator == nil {
		return "", errs.NewUnexpected("JWT validator is not set up")
	}

	parsedJWT, err := j.validator.ValidateToken(ctx, token)
	if err != nil {
		logger.ErrorContext(ctx, "failed to validate JWT token",
			"error", err,
		)
		return "", errs.NewUnauthorized(shortenValidationError(err))
	}

	claims, ok := parsedJWT.(*validator.ValidatedClaims)
	if !ok {
		return "", errs.NewUnauthorized("failed to get validated authorization claims")
	}

	custom, ok := claims.CustomClaims.(*memberSearchClaims)
	if !ok {
		return "", errs.NewUnauthorized("failed to get custom authorization claims")
	}

	logger.DebugContext(ctx, "parsed principal",
		"user_id", custom.Principal,
	)

	return custom.Principal, nil
}

// shortenValidationError keeps the first two colon-separated parts of a
// validation error so nested library details are not sent to callers.
func shortenValidationError(err error) string {
	msg := strings.Replace(err.Error(), ": go-jose/go-jose/jwt", "", 1)
	first := strings.Index(msg, ":")
	if first == -1 || first+1 >= len(msg) {
		return msg
	}
	if second := strings.Index(msg[first+1:], ":"); second != -1 {
		return msg[:first+second+1]
	}
	return msg
}

// NewJWTAuth creates a new JWT authentication service
func NewJWTAuth(config JWTAuthConfig) (*JWTAuth, error) {
	jwksURLStr := config.JWKSURL
	if jwksURLStr == "" {
		jwksURLStr = defaultJWKSURL
	}
	audience := config.Audience
	if audience == "" {
		audience = constants.ServiceName
	}
	issuerStr := config.Issuer
	if issuerStr == "" {
		issuerStr = defaultIssuer
	}

	jwksURL, err := url.Parse(jwksURLStr)
	if err != nil {
		slog.With("error", err).Error("invalid JWKS_URL")
		return nil, err
	}
	issuer, err := url.Parse(issuerStr)
	if err != nil {
		slog.With("error", err).Error("invalid JWT issuer")
		return nil, err
	}
	provider := jwks.NewCachingProvider(issuer, jwksCacheTTL, jwks.WithCustomJWKSURI(jwksURL))

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		signatureAlgorithm,
		issuer.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &memberSearchClaims{}
		}),
		validator.WithAllowedClockSkew(allowedClockSkew),
	)
	if err != nil {
		slog.With("error", err).Error("failed to set up the JWT validator")
		return nil, err
	}

	return &JWTAuth{
		validator: jwtValidator,
	}, nil
}
