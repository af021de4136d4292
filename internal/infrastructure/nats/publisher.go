// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/log"
)

// NATSMemberEventPublisher implements the MemberEventPublisher interface for NATS
type NATSMemberEventPublisher struct {
	client  NATSClientInterface
	subject string
}

// PublishMemberUpdated serializes the event as JSON and publishes it
func (n *NATSMemberEventPublisher) PublishMemberUpdated(ctx context.Context, event model.MemberUpdatedEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal member updated event: %w", err)
	}

	headers := map[string]string{}
	if requestID, ok := log.RequestIDFromContext(ctx); ok {
		headers[string(constants.RequestIDHeader)] = requestID
	}

	slog.DebugContext(ctx, "publishing member updated event",
		"subject", n.subject,
		"member_id", event.Member.ID,
	)

	if err := n.client.Publish(ctx, &PublishNATSRequest{
		Subject: n.subject,
		Message: message,
		Headers: headers,
	}); err != nil {
		return fmt.Errorf("NATS member event publish failed: %w", err)
	}
	return nil
}

// Close gracefully closes the NATS connection
func (n *NATSMemberEventPublisher) Close() error {
	return n.client.Close()
}

// NewMemberEventPublisher creates a new NATS member event publisher
func NewMemberEventPublisher(ctx context.Context, config Config) (port.MemberEventPublisher, error) {
	client, err := NewClient(ctx, config)
	if err != nil {
		return nil, err
	}
	return NewMemberEventPublisherWithClient(client, constants.MemberUpdatedSubject), nil
}

// NewMemberEventPublisherWithClient creates a publisher over an existing client
func NewMemberEventPublisherWithClient(client NATSClientInterface, subject string) *NATSMemberEventPublisher {
	return &NATSMemberEventPublisher{
		client:  client,
		subject: subject,
	}
}
