// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockNATSClient is a mock implementation of NATSClientInterface
type MockNATSClient struct {
	published    []*PublishNATSRequest
	publishError error
	closeError   error
}

func NewMockNATSClient() *MockNATSClient {
	return &MockNATSClient{}
}

func (m *MockNATSClient) Publish(ctx context.Context, request *PublishNATSRequest) error {
	if m.publishError != nil {
		return m.publishError
	}
	m.published = append(m.published, request)
	return nil
}

func (m *MockNATSClient) Close() error {
	return m.closeError
}

func TestNATSMemberEventPublisherPublishMemberUpdated(t *testing.T) {
	updatedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	event := model.MemberUpdatedEvent{
		Member: model.Member{
			ID:        1,
			FirstName: "John",
			LastName:  "Doe",
			Entitled:  true,
		},
		Principal: "editor",
		UpdatedAt: updatedAt,
	}

	tests := []struct {
		name            string
		ctx             context.Context
		setupMock       func(*MockNATSClient)
		expectedError   bool
		expectedHeaders map[string]string
	}{
		{
			name:            "publishes json on the member subject",
			ctx:             context.Background(),
			expectedHeaders: map[string]string{},
		},
		{
			name: "forwards the request id",
			ctx:  log.WithRequestID(context.Background(), "req-42"),
			expectedHeaders: map[string]string{
				string(constants.RequestIDHeader): "req-42",
			},
		},
		{
			name: "client failure",
			ctx:  context.Background(),
			setupMock: func(m *MockNATSClient) {
				m.publishError = errors.New("nats: connection closed")
			},
			expectedError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion := assert.New(t)

			client := NewMockNATSClient()
			if tc.setupMock != nil {
				tc.setupMock(client)
			}
			publisher := NewMemberEventPublisherWithClient(client, constants.MemberUpdatedSubject)

			err := publisher.PublishMemberUpdated(tc.ctx, event)
			if tc.expectedError {
				assertion.Error(err)
				assertion.Empty(client.published)
				return
			}
			require.NoError(t, err)
			require.Len(t, client.published, 1)

			published := client.published[0]
			assertion.Equal(constants.MemberUpdatedSubject, published.Subject)
			assertion.Equal(tc.expectedHeaders, published.Headers)

			var decoded model.MemberUpdatedEvent
			require.NoError(t, json.Unmarshal(published.Message, &decoded))
			assertion.Equal(event, decoded)
		})
	}
}

func TestNATSMemberEventPublisherClose(t *testing.T) {
	client := NewMockNATSClient()
	publisher := NewMemberEventPublisherWithClient(client, constants.MemberUpdatedSubject)
	assert.NoError(t, publisher.Close())

	client.closeError = errors.New("already closed")
	assert.Error(t, publisher.Close())
}
