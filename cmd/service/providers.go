// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/extractor"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/infrastructure/opensearch"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/infrastructure/seed"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/infrastructure/sqlstore"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/httpclient"
)

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// MemberStoreImpl injects the member store implementation
func MemberStoreImpl(ctx context.Context) port.MemberStore {

	var (
		memberStore port.MemberStore
		err         error
	)

	// Member store implementation configuration
	storeSource := envOrDefault("MEMBER_STORE", "memory")

	seedMembers, err := strconv.ParseBool(envOrDefault("SEED_MEMBERS", "true"))
	if err != nil {
		log.Fatalf("invalid SEED_MEMBERS value: %v", err)
	}

	switch storeSource {
	case "memory":
		slog.InfoContext(ctx, "initializing in-memory member store", "seed", seedMembers)
		if seedMembers {
			memberStore = mock.NewSeededMockMemberStore(seed.DefaultGenerated)
		} else {
			memberStore = mock.NewMockMemberStore()
		}

	case "sqlite", "postgres":
		dialect := sqlstore.DialectSQLite
		dsn := envOrDefault("SQLITE_PATH", "members.db")
		if storeSource == "postgres" {
			dialect = sqlstore.DialectPostgres
			dsn = envOrDefault("POSTGRES_URL", "postgres://localhost:5432/members?sslmode=disable")
		}

		slog.InfoContext(ctx, "initializing SQL member store", "dialect", dialect)
		db, errOpen := sqlstore.Open(ctx, dialect, dsn)
		if errOpen != nil {
			log.Fatalf("failed to open %s database: %v", dialect, errOpen)
		}
		if errMigrate := sqlstore.Migrate(ctx, db, dialect); errMigrate != nil {
			log.Fatalf("failed to migrate %s database: %v", dialect, errMigrate)
		}

		sqlStore := sqlstore.NewMemberStore(db)
		if seedMembers {
			inserted, errSeed := sqlStore.SeedIfEmpty(ctx, seed.Members(seed.DefaultGenerated))
			if errSeed != nil {
				log.Fatalf("failed to seed members: %v", errSeed)
			}
			slog.InfoContext(ctx, "member seeding completed", "inserted", inserted)
		}
		memberStore = sqlStore

	case "opensearch":
		opensearchURL := envOrDefault("OPENSEARCH_URL", "http://localhost:9200")
		opensearchIndex := envOrDefault("OPENSEARCH_INDEX", "members")

		httpConfig := httpclient.DefaultConfig()
		if maxRetries := os.Getenv("OPENSEARCH_MAX_RETRIES"); maxRetries != "" {
			httpConfig.MaxRetries, err = strconv.Atoi(maxRetries)
			if err != nil {
				log.Fatalf("invalid OpenSearch max retries value %s: %v", maxRetries, err)
			}
		}

		slog.InfoContext(ctx, "initializing opensearch member store",
			"url", opensearchURL,
			"index", opensearchIndex,
			"max_retries", httpConfig.MaxRetries,
		)
		opensearchStore, errStore := opensearch.NewMemberStore(ctx, opensearch.Config{
			URL:   opensearchURL,
			Index: opensearchIndex,
			HTTP:  httpConfig,
		})
		if errStore != nil {
			log.Fatalf("failed to initialize OpenSearch member store: %v", errStore)
		}
		if errIndex := opensearchStore.EnsureIndex(ctx); errIndex != nil {
			log.Fatalf("failed to ensure OpenSearch index %s: %v", opensearchIndex, errIndex)
		}
		memberStore = opensearchStore

	default:
		log.Fatalf("unsupported member store implementation: %s", storeSource)
	}

	return memberStore
}

// EventPublisherImpl injects the member event publisher implementation
func EventPublisherImpl(ctx context.Context) port.MemberEventPublisher {

	var (
		publisher port.MemberEventPublisher
		err       error
	)

	publisherSource := envOrDefault("EVENT_PUBLISHER", "none")

	switch publisherSource {
	case "none":
		slog.InfoContext(ctx, "member events are disabled")
		publisher = mock.NopMemberEventPublisher{}

	case "mock":
		slog.InfoContext(ctx, "initializing mock member event publisher")
		publisher = mock.NewMockMemberEventPublisher()

	case "nats":
		natsURL := envOrDefault("NATS_URL", "nats://localhost:4222")

		natsTimeout := envOrDefault("NATS_TIMEOUT", "10s")
		natsTimeoutDuration, errTimeout := time.ParseDuration(natsTimeout)
		if errTimeout != nil {
			log.Fatalf("invalid NATS timeout duration: %v", errTimeout)
		}

		natsMaxReconnect := envOrDefault("NATS_MAX_RECONNECT", "3")
		natsMaxReconnectInt, errReconnect := strconv.Atoi(natsMaxReconnect)
		if errReconnect != nil {
			log.Fatalf("invalid NATS max reconnect value %s: %v", natsMaxReconnect, errReconnect)
		}

		natsReconnectWait := envOrDefault("NATS_RECONNECT_WAIT", "2s")
		natsReconnectWaitDuration, errWait := time.ParseDuration(natsReconnectWait)
		if errWait != nil {
			log.Fatalf("invalid NATS reconnect wait duration %s : %v", natsReconnectWait, errWait)
		}

		slog.InfoContext(ctx, "initializing NATS member event publisher", "url", natsURL)
		publisher, err = nats.NewMemberEventPublisher(ctx, nats.Config{
			URL:           natsURL,
			Timeout:       natsTimeoutDuration,
			MaxReconnect:  natsMaxReconnectInt,
			ReconnectWait: natsReconnectWaitDuration,
		})
		if err != nil {
			log.Fatalf("failed to initialize NATS member event publisher: %v", err)
		}

	default:
		log.Fatalf("unsupported event publisher implementation: %s", publisherSource)
	}

	return publisher
}

// AuthServiceImpl injects the authentication service implementation
func AuthServiceImpl(ctx context.Context) port.Authenticator {

	var authService port.Authenticator

	authSource := envOrDefault("AUTH_SOURCE", "jwt")

	switch authSource {
	case "mock":
		slog.WarnContext(ctx, "initializing mock authentication service, tokens are not validated")
		authService = mock.NewMockAuthService()

	case "jwt":
		jwtConfig := auth.JWTAuthConfig{
			JWKSURL:  os.Getenv("JWKS_URL"),
			Audience: os.Getenv("AUDIENCE"),
		}
		slog.InfoContext(ctx, "initializing JWT authentication service")
		jwtAuth, err := auth.NewJWTAuth(jwtConfig)
		if err != nil {
			log.Fatalf("failed to initialize JWT authentication service: %v", err)
		}
		authService = jwtAuth

	default:
		log.Fatalf("unsupported authentication implementation: %s", authSource)
	}

	return authService
}

// VocabularyImpl loads the extractor vocabulary, from VOCABULARY_FILE when set
func VocabularyImpl(ctx context.Context) model.Vocabulary {
	path := os.Getenv("VOCABULARY_FILE")
	if path == "" {
		return model.DefaultVocabulary()
	}

	vocabulary, err := extractor.LoadVocabulary(path)
	if err != nil {
		log.Fatalf("failed to load vocabulary file %s: %v", path, err)
	}
	slog.InfoContext(ctx, "loaded vocabulary",
		"path", path,
		"business_units", len(vocabulary.BusinessUnits),
		"countries", len(vocabulary.Countries),
	)
	return vocabulary
}

// RateLimiterImpl returns the per-client rate limiter, nil when RATE_LIMIT_RPS is 0
func RateLimiterImpl(ctx context.Context) *middleware.ClientLimiter {
	rps, err := strconv.ParseFloat(envOrDefault("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps < 0 {
		log.Fatalf("invalid RATE_LIMIT_RPS value: %s", os.Getenv("RATE_LIMIT_RPS"))
	}
	if rps == 0 {
		slog.InfoContext(ctx, "rate limiting is disabled")
		return nil
	}

	burst, err := strconv.Atoi(envOrDefault("RATE_LIMIT_BURST", "40"))
	if err != nil || burst < 1 {
		log.Fatalf("invalid RATE_LIMIT_BURST value: %s", os.Getenv("RATE_LIMIT_BURST"))
	}

	slog.InfoContext(ctx, "rate limiting enabled", "rps", rps, "burst", burst)
	return middleware.NewClientLimiter(rps, burst)
}
