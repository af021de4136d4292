// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
)

// MemberEventPublisher defines the interface for announcing member changes
// This abstraction allows different messaging implementations (NATS, etc.)
type MemberEventPublisher interface {
	// PublishMemberUpdated announces that a member has been saved
	PublishMemberUpdated(ctx context.Context, event model.MemberUpdatedEvent) error

	// Close gracefully closes the publisher connection
	Close() error
}
