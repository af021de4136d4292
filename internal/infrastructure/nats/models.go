// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"time"
)

// Config represents NATS configuration
type Config struct {
	// URL is the NATS server URL
	URL string `json:"url"`
	// Timeout is the connect and flush timeout
	Timeout time.Duration `json:"timeout"`
	// MaxReconnect is the maximum number of reconnection attempts
	MaxReconnect int `json:"max_reconnect"`
	// ReconnectWait is the time to wait between reconnection attempts
	ReconnectWait time.Duration `json:"reconnect_wait"`
}

// PublishNATSRequest is a message to publish on a subject
type PublishNATSRequest struct {
	// Subject is the NATS subject to publish on
	Subject string `json:"subject"`
	// Message is the serialized event
	Message []byte `json:"message"`
	// Headers are copied onto the NATS message
	Headers map[string]string `json:"headers,omitempty"`
}
