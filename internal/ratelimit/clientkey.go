package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownClient is the key used when no forwarding header identifies the caller.
const UnknownClient = "unknown"

// KeyFunc resolves the client identifier for a request.
type KeyFunc func(r *http.Request) string

// ClientKey returns a KeyFunc reading the client IP from forwarding headers.
// X-Forwarded-For is read from the rightmost trusted proxy position to
// prevent spoofing; X-Real-IP is the fallback, then UnknownClient.
func ClientKey(trustedProxyCount int) KeyFunc {
	return func(r *http.Request) string {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			idx := len(parts) - trustedProxyCount
			if trustedProxyCount <= 0 {
				idx = 0
			}
			if idx >= 0 && idx < len(parts) {
				if ip := strings.TrimSpace(parts[idx]); ip != "" {
					return ip
				}
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
		return UnknownClient
	}
}
