// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/api"

	goahttp "goa.design/goa/v3/http"
	"golang.org/x/time/rate"
)

// idleClientTTL is how long a client limiter is kept without traffic.
const idleClientTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter rate-limits requests per client address.
type ClientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	r         rate.Limit
	b         int
	now       func() time.Time
	lastSweep time.Time
}

// NewClientLimiter allows reqPerSec requests per second per client with the
// given burst.
func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		clients: make(map[string]*clientLimiter),
		r:       rate.Limit(reqPerSec),
		b:       burst,
		now:     time.Now,
	}
}

// Allow reports whether one more request from client may proceed now.
func (cl *ClientLimiter) Allow(client string) bool {
	return cl.limiterFor(client).AllowN(cl.now(), 1)
}

func (cl *ClientLimiter) limiterFor(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastSweep) > idleClientTTL {
		for key, c := range cl.clients {
			if now.Sub(c.lastSeen) > idleClientTTL {
				delete(cl.clients, key)
			}
		}
		cl.lastSweep = now
	}

	if c, ok := cl.clients[client]; ok {
		c.lastSeen = now
		return c.limiter
	}
	c := &clientLimiter{limiter: rate.NewLimiter(cl.r, cl.b), lastSeen: now}
	cl.clients[client] = c
	return c.limiter
}

// RateLimitMiddleware rejects requests above the client's rate with 429.
func RateLimitMiddleware(limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddress(r)
			if limiter.Allow(client) {
				next.ServeHTTP(w, r)
				return
			}

			slog.WarnContext(r.Context(), "rate limit exceeded",
				"client", client,
				"path", r.URL.Path,
			)

			w.Header().Set("Retry-After", strconv.Itoa(1))
			body := api.NewErrorResponse(http.StatusTooManyRequests, "rate limit exceeded", r.URL.Path)
			enc := goahttp.ResponseEncoder(r.Context(), w)
			w.WriteHeader(http.StatusTooManyRequests)
			if err := enc.Encode(body); err != nil {
				slog.ErrorContext(r.Context(), "failed to encode rate limit response", "error", err)
			}
		})
	}
}

// clientAddress returns the host part of the remote address.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
