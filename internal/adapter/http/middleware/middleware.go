package middleware

import (
	"net/http"
	"strconv"
	"time"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/observability"
	"storefront-gateway/pkg/apperror"
	"storefront-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"

	// CtxCredential holds the *domain.Credential of an authorized request.
	CtxCredential = "credential"
)

// RequireBearer rejects requests whose Authorization header is not a
// well-formed bearer credential.
func RequireBearer(authSvc ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, err := authSvc.Authorize(c.GetHeader(HeaderAuthorization))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(CtxCredential, cred)
		c.Next()
	}
}

// OptionalBearer attaches a credential when an Authorization header is sent
// and lets anonymous requests through. A malformed header is still rejected.
func OptionalBearer(authSvc ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(HeaderAuthorization)
		if header == "" {
			c.Next()
			return
		}
		cred, err := authSvc.Authorize(header)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(CtxCredential, cred)
		c.Next()
	}
}

// CredentialFrom returns the request's credential, or nil if none.
func CredentialFrom(c *gin.Context) *domain.Credential {
	v, ok := c.Get(CtxCredential)
	if !ok {
		return nil
	}
	cred, _ := v.(*domain.Credential)
	return cred
}

// RequestID propagates X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(response.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Metrics records request count and latency per route template.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// Recovery turns a panic into a SYS_001 envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("request_id", c.GetString(response.RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				response.Error(c, apperror.InternalError(nil))
				c.Abort()
			}
		}()
		c.Next()
	}
}

// MaxBodySize limits the request body. Declared oversize bodies are refused
// up front; undeclared ones fail when the handler reads past the limit.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.ErrPayloadTooLarge())
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
