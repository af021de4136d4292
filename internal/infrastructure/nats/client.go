// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	"github.com/nats-io/nats.go"
)

// NATSClient wraps the NATS connection and provides publish operations
type NATSClient struct {
	conn    *nats.Conn
	config  Config
	timeout time.Duration
}

// NATSClientInterface defines the interface for NATS operations
// This allows for easy mocking and testing
type NATSClientInterface interface {
	Publish(ctx context.Context, request *PublishNATSRequest) error
	Close() error
}

// Publish sends the message and flushes so delivery errors surface to the caller
func (c *NATSClient) Publish(ctx context.Context, request *PublishNATSRequest) error {

	if request == nil || request.Subject == "" || len(request.Message) == 0 {
		slog.ErrorContext(ctx, "invalid NATS publish request")
		return fmt.Errorf("invalid NATS publish request: subject and message must be set")
	}

	msg := nats.NewMsg(request.Subject)
	msg.Data = request.Message
	for k, v := range request.Headers {
		msg.Header.Set(k, v)
	}

	if errPublish := c.conn.PublishMsg(msg); errPublish != nil {
		slog.ErrorContext(ctx, "NATS publish failed", "error", errPublish)
		return fmt.Errorf("NATS publish failed: %w", errPublish)
	}

	if errFlush := c.conn.FlushTimeout(c.timeout); errFlush != nil {
		slog.ErrorContext(ctx, "NATS flush failed", "error", errFlush)
		return fmt.Errorf("NATS flush failed: %w", errFlush)
	}

	slog.DebugContext(ctx, "published NATS message",
		"subject", request.Subject,
		"bytes", len(request.Message),
	)

	return nil
}

// Close drains pending messages and closes the NATS connection
func (c *NATSClient) Close() error {
	if c.conn != nil {
		return c.conn.Drain()
	}
	return nil
}

// NewClient creates a new NATS client with the given configuration
func NewClient(ctx context.Context, config Config) (*NATSClient, error) {
	slog.InfoContext(ctx, "creating NATS client",
		"url", config.URL,
		"timeout", config.Timeout,
	)

	// Configure NATS connection options
	opts := []nats.Option{
		nats.Name(constants.ServiceName),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
		}),
	}

	// Establish connection
	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to NATS", "error", err)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	client := &NATSClient{
		conn:    conn,
		config:  config,
		timeout: config.Timeout,
	}

	slog.InfoContext(ctx, "NATS client created successfully",
		"connected_url", conn.ConnectedUrl(),
		"status", conn.Status(),
	)

	return client, nil
}
