// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
)

// MockMemberEventPublisher records published events instead of sending them
type MockMemberEventPublisher struct {
	mu     sync.Mutex
	events []model.MemberUpdatedEvent

	// PublishError, when set, is returned by PublishMemberUpdated
	PublishError error
	closed       bool
}

// NewMockMemberEventPublisher creates a new recording publisher
func NewMockMemberEventPublisher() *MockMemberEventPublisher {
	return &MockMemberEventPublisher{}
}

// PublishMemberUpdated records the event
func (m *MockMemberEventPublisher) PublishMemberUpdated(ctx context.Context, event model.MemberUpdatedEvent) error {
	slog.DebugContext(ctx, "mock publish member updated",
		"member_id", event.Member.ID,
	)

	if m.PublishError != nil {
		return m.PublishError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of the recorded events
func (m *MockMemberEventPublisher) Events() []model.MemberUpdatedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]model.MemberUpdatedEvent, len(m.events))
	copy(events, m.events)
	return events
}

// Closed reports whether Close has been called
func (m *MockMemberEventPublisher) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close implements the MemberEventPublisher interface
func (m *MockMemberEventPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// NopMemberEventPublisher drops every event; used when no event bus is configured
type NopMemberEventPublisher struct{}

// PublishMemberUpdated implements the MemberEventPublisher interface
func (NopMemberEventPublisher) PublishMemberUpdated(ctx context.Context, event model.MemberUpdatedEvent) error {
	return nil
}

// Close implements the MemberEventPublisher interface
func (NopMemberEventPublisher) Close() error {
	return nil
}
