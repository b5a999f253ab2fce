package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/phrazzld/notes-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// LoginRateLimitMessage is returned with 429 responses from the login limiter.
const LoginRateLimitMessage = "Too many login attempts from this IP, please try again after a 60 second pause"

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP using a token bucket per client.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	message   string
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter allows perWindow requests per window for each client IP.
func NewRateLimiter(perWindow int, window time.Duration, message string) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(window / time.Duration(perWindow)),
		burst:   perWindow,
		message: message,
		now:     time.Now,
	}
}

// NewLoginRateLimiter builds the limiter used on the login route.
func NewLoginRateLimiter(attemptsPerMinute int) *RateLimiter {
	return NewRateLimiter(attemptsPerMinute, time.Minute, LoginRateLimitMessage)
}

// Allow reports whether a request from client may proceed.
func (l *RateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[client]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)
		if !l.Allow(client) {
			w.Header().Set("Retry-After", "60")
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, l.message, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP middleware
// has already replaced with the forwarded client address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
