// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// constantBackoff waits RetryDelay between every attempt.
func constantBackoff(min, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return min
}

// NewRetryableClient builds a retrying client on top of base. A nil base
// uses http.DefaultTransport.
func NewRetryableClient(config Config, base http.RoundTripper) *retryablehttp.Client {
	if base == nil {
		base = http.DefaultTransport
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{
		Transport: base,
		Timeout:   config.Timeout,
	}
	client.RetryMax = config.MaxRetries
	client.RetryWaitMin = config.RetryDelay
	client.RetryWaitMax = config.RetryDelay * time.Duration(1<<max(config.MaxRetries, 0))
	client.Logger = slog.Default()

	if !config.RetryBackoff {
		client.Backoff = constantBackoff
	}

	return client
}

// NewTransport wraps base in a RoundTripper that retries server errors,
// rate limiting and connection failures. It is meant for SDKs that accept a
// transport rather than a client, such as the OpenSearch client.
func NewTransport(config Config, base http.RoundTripper) http.RoundTripper {
	return &retryablehttp.RoundTripper{
		Client: NewRetryableClient(config, base),
	}
}

// NewClient returns a standard *http.Client backed by the retrying client.
func NewClient(config Config) *http.Client {
	return NewRetryableClient(config, nil).StandardClient()
}
