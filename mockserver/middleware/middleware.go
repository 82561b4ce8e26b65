// Package middleware holds the gin handlers every mock backend request passes
// through. Server wires them in order: request id, recovery, logging, CORS,
// rate limit; AuthMiddleware guards the /api and upload groups only.
package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"backoffice/config"
	"backoffice/mockserver/response"
	"backoffice/pkg/errors"
	"backoffice/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// abort ends the chain with a failure envelope that carries no data.
func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, &response.Body{Message: message})
}

// RequestIDMiddleware echoes the caller's X-Request-ID or mints one, and puts
// it on the request context so handlers can log with logger.FromContext.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// LoggingMiddleware writes one access line per request, at warn for 4xx and
// error for 5xx.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		target := c.Request.URL.RequestURI()

		c.Next()

		status := c.Writer.Status()
		log := logger.FromContext(c.Request.Context())
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("target", target),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Request served", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Request served", fields...)
		default:
			log.Info("Request served", fields...)
		}
	}
}

// RecoveryMiddleware turns a handler panic into a 500 envelope.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				logger.FromContext(c.Request.Context()).Error("Handler panicked",
					zap.Any("panic", p),
					zap.String("path", c.FullPath()))
				abort(c, http.StatusInternalServerError, "An unexpected error occurred")
			}
		}()
		c.Next()
	}
}

// CORSMiddleware answers preflights with 204 and reflects allowed origins.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	static := map[string]string{
		"Access-Control-Allow-Methods": strings.Join(cfg.AllowMethods, ", "),
		"Access-Control-Allow-Headers": strings.Join(cfg.AllowHeaders, ", "),
		"Access-Control-Max-Age":       strconv.Itoa(cfg.MaxAge),
	}
	if cfg.AllowCredentials {
		static["Access-Control-Allow-Credentials"] = "true"
	}
	wildcard := slices.Contains(cfg.AllowOrigins, "*")

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" && (wildcard || slices.Contains(cfg.AllowOrigins, origin)) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		for k, v := range static {
			c.Header(k, v)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	buckets sync.Map // ip -> *rate.Limiter
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limit: rate.Limit(perSecond), burst: burst}
}

// Allow takes one token from ip's bucket, creating the bucket on first use.
func (rl *RateLimiter) Allow(ip string) bool {
	b, ok := rl.buckets.Load(ip)
	if !ok {
		b, _ = rl.buckets.LoadOrStore(ip, rate.NewLimiter(rl.limit, rl.burst))
	}
	return b.(*rate.Limiter).Allow()
}

// RateLimitMiddleware answers 429 once a client IP drains its bucket. A
// disabled config yields a pass-through handler.
func RateLimitMiddleware(cfg *config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	rl := NewRateLimiter(cfg.Rate, cfg.Burst)

	return func(c *gin.Context) {
		if ip := c.ClientIP(); !rl.Allow(ip) {
			logger.FromContext(c.Request.Context()).Warn("Rate limited", zap.String("client_ip", ip))
			abort(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}

// TokenVerifier reports whether an access token was issued by the server.
type TokenVerifier interface {
	ValidToken(token string) bool
}

// AuthMiddleware requires "Authorization: Bearer <token>" with a known token.
func AuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		switch {
		case !ok || token == "":
			response.Fail(c, errors.New(errors.CodeUnauthorized, "Missing bearer token"))
		case !v.ValidToken(token):
			response.Fail(c, errors.New(errors.CodeUnauthorized, "Invalid or expired token"))
		default:
			c.Next()
		}
	}
}
