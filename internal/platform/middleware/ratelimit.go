// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/respond"
)

// # Rate Limiting

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorSet keeps one token bucket per client IP.
type visitorSet struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newVisitorSet(limit rate.Limit, burst int) *visitorSet {
	return &visitorSet{visitors: make(map[string]*visitor), limit: limit, burst: burst, now: time.Now}
}

// allow consumes a token for ip.
func (set *visitorSet) allow(ip string) bool {
	set.mu.Lock()
	defer set.mu.Unlock()

	current, found := set.visitors[ip]
	if !found {
		current = &visitor{limiter: rate.NewLimiter(set.limit, set.burst)}
		set.visitors[ip] = current
	}
	current.lastSeen = set.now()
	return current.limiter.AllowN(current.lastSeen, 1)
}

// sweep forgets visitors idle for longer than ttl.
func (set *visitorSet) sweep(ttl time.Duration) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for ip, current := range set.visitors {
		if set.now().Sub(current.lastSeen) > ttl {
			delete(set.visitors, ip)
		}
	}
}

// RateLimit limits requests per client IP with a token bucket. Idle entries
// are swept until context is cancelled.
func RateLimit(context context.Context) func(http.Handler) http.Handler {
	return rateLimit(context, newVisitorSet(rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst))
}

func rateLimit(context context.Context, set *visitorSet) func(http.Handler) http.Handler {
	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				set.sweep(constants.RateLimitClientTTL)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !set.allow(RealIP(request)) {
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
				respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// retryAfterSeconds is advertised on 429 responses.
const retryAfterSeconds = 1
