package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/2ellamills/fitness-class/internal/config"
)

// cachedResponse is what gets stored in Redis for a cache entry.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// captureWriter tees the response body into buf (up to limit bytes) while
// writing it to the client.
type captureWriter struct {
	http.ResponseWriter
	status    int
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.truncated {
		if cw.limit > 0 && cw.buf.Len()+len(b) > cw.limit {
			cw.truncated = true
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

// NewRedisCache caches successful responses of anonymous-safe routes.  It is
// a pass-through when disabled or without Redis.  Bodies larger than
// MaxBodyBytes are served but never cached.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			key := cacheKey(cfg, c)

			if hit, ok := lookup(c.Request().Context(), rdb, key); ok {
				h := c.Response().Header()
				for k, vals := range hit.Header {
					if strings.EqualFold(k, echo.HeaderContentLength) {
						continue
					}
					h[k] = append([]string(nil), vals...)
				}
				h.Set("X-Cache", "HIT")
				c.Response().WriteHeader(hit.Status)
				_, err := c.Response().Write(hit.Body)
				return err
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || cw.truncated {
				return nil
			}
			entry := cachedResponse{Status: cw.status, Header: c.Response().Header().Clone(), Body: cw.buf.Bytes()}
			entry.Header.Del("X-Cache")
			if payload, err := json.Marshal(entry); err == nil {
				_ = rdb.Set(context.WithoutCancel(c.Request().Context()), key, payload, ttl).Err()
			}
			return nil
		}
	}
}

func lookup(ctx context.Context, rdb *redis.Client, key string) (cachedResponse, bool) {
	bs, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return cachedResponse{}, false
	}
	var entry cachedResponse
	if err := json.Unmarshal(bs, &entry); err != nil || entry.Status == 0 {
		return cachedResponse{}, false
	}
	return entry, true
}

// cacheKey hashes the parts picked by KeyStrategy under the configured prefix.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", c.Path()}
	case "method_route":
		parts = []string{"method", r.Method, "route", c.Path()}
	case "method_route_query":
		parts = []string{"method", r.Method, "route", c.Path(), "q", r.URL.RawQuery}
	default:
		parts = []string{"route", c.Path(), "q", r.URL.RawQuery}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}
