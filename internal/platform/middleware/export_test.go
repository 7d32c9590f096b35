// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package middleware

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitWith mounts the limiter with a custom bucket and clock.
func RateLimitWith(context context.Context, limit float64, burst int, now func() time.Time) func(http.Handler) http.Handler {
	set := newVisitorSet(rate.Limit(limit), burst)
	set.now = now
	return rateLimit(context, set)
}
