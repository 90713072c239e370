package middleware

import (
	"net/http"
	"sync"
	"time"

	"catalogo/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

type rateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	entries   map[string]*rateEntry
	nextPurge time.Time
}

// RateLimiter limits each client IP to limit requests per window. Every call
// returns an independent limiter; expired entries are purged lazily.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newRateLimiter(limit, window, time.Now).handle
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		now:     now,
		entries: make(map[string]*rateEntry),
	}
}

func (l *rateLimiter) handle(c *gin.Context) {
	ip := c.ClientIP()
	now := l.now()

	l.mu.Lock()
	l.purge(now)
	entry, ok := l.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &rateEntry{windowEnd: now.Add(l.window)}
		l.entries[ip] = entry
	}
	entry.count++
	excedido := entry.count > l.limit
	windowEnd := entry.windowEnd
	l.mu.Unlock()

	if excedido {
		c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Muitas requisições. Tente novamente em instantes."))
		return
	}
	c.Next()
}

// purge drops expired entries at most once per window. Caller holds l.mu.
func (l *rateLimiter) purge(now time.Time) {
	if now.Before(l.nextPurge) {
		return
	}
	l.nextPurge = now.Add(l.window)
	purged := 0
	for ip, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().
			Int("entries_purged", purged).
			Int("entries_remaining", len(l.entries)).
			Msg("rate limiter map purged")
	}
}
