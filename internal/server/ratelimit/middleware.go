package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Middleware rejects requests over the limit with 429 and sets X-RateLimit-*
// headers on every limited response.
func (l *Limiter) Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := ClientID(r)
			allowed, info := l.Allow(clientID, r.URL.Path, r.Method)
			setHeaders(w, info)
			if !allowed {
				logger.Warn("rate limit exceeded",
					zap.String("client", clientID),
					zap.String("path", r.URL.Path),
					zap.Int("limit", info.Limit),
					zap.Time("reset_at", info.ResetTime))
				writeLimited(w, info)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientID uses the IP from RemoteAddr. X-Forwarded-For is ignored because
// the service is not assumed to sit behind a trusted proxy.
func ClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setHeaders(w http.ResponseWriter, info Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func writeLimited(w http.ResponseWriter, info Info) {
	body := map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		body["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if secs := int(info.RetryAfter.Seconds()); secs > 0 {
		body["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(body)
}
