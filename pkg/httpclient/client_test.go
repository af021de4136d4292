// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig(maxRetries int) Config {
	return Config{
		Timeout:      5 * time.Second,
		MaxRetries:   maxRetries,
		RetryDelay:   time.Millisecond,
		RetryBackoff: false,
	}
}

func TestNewRetryableClient(t *testing.T) {
	assertion := assert.New(t)

	config := Config{
		Timeout:      10 * time.Second,
		MaxRetries:   3,
		RetryDelay:   500 * time.Millisecond,
		RetryBackoff: true,
	}

	client := NewRetryableClient(config, nil)

	assertion.Equal(3, client.RetryMax)
	assertion.Equal(500*time.Millisecond, client.RetryWaitMin)
	assertion.Equal(4*time.Second, client.RetryWaitMax)
	assertion.Equal(10*time.Second, client.HTTPClient.Timeout)
	assertion.Equal(http.DefaultTransport, client.HTTPClient.Transport)
}

func TestClientRetriesServerErrors(t *testing.T) {
	assertion := assert.New(t)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"green"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(2))

	resp, err := client.Get(server.URL)
	assertion.NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	assertion.NoError(err)
	assertion.Equal(http.StatusOK, resp.StatusCode)
	assertion.Equal(`{"status":"green"}`, string(body))
	assertion.Equal(int32(3), calls.Load())
}

func TestClientGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(1))

	resp, err := client.Get(server.URL)
	if resp != nil {
		resp.Body.Close()
	}
	assert.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	assertion := assert.New(t)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	transport := NewTransport(testConfig(3), nil)
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	assertion.NoError(err)
	defer resp.Body.Close()

	assertion.Equal(http.StatusBadRequest, resp.StatusCode)
	assertion.Equal(int32(1), calls.Load())
}
