package router

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/handler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware logs HTTP requests with slog. Each request gets a
// request id, reused from the incoming header when present.
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		// Process request
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("request_id", requestID),
			slog.Int("status", status),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", time.Since(start)),
			slog.Int("body_size", c.Writer.Size()),
		}
		if id, ok := handler.CurrentIdentity(c); ok {
			attrs = append(attrs, slog.String("user_id", id.UserID))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("HTTP Request", attrs...)
		case status >= http.StatusBadRequest:
			logger.Warn("HTTP Request", attrs...)
		default:
			logger.Info("HTTP Request", attrs...)
		}
	}
}

// CORSMiddleware handles Cross-Origin Resource Sharing. With no allowed
// origins every origin is accepted without credentials; otherwise only the
// listed origins are echoed back and may send credentials.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		if len(allowed) == 0 {
			h.Set("Access-Control-Allow-Origin", "*")
		} else if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}
		}
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, Cache-Control, X-Requested-With, "+RequestIDHeader)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		h.Set("Access-Control-Expose-Headers", RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Authenticator verifies bearer tokens
type Authenticator interface {
	Authenticate(token string) (domain.Identity, error)
}

// AuthMiddleware resolves the bearer token into the caller identity
func AuthMiddleware(auth Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			handler.RespondError(c, logger, domain.NewError(domain.KindUnauthorized, "not authorized, no token"))
			return
		}

		id, err := auth.Authenticate(token)
		if err != nil {
			logger.Info("Token rejected",
				slog.String("path", c.Request.URL.Path),
				slog.String("error", err.Error()),
			)
			handler.RespondError(c, logger, err)
			return
		}

		handler.SetIdentity(c, id)
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role
func RequireAdmin(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := handler.CurrentIdentity(c)
		if !ok || !id.IsAdmin() {
			handler.RespondError(c, logger, domain.NewError(domain.KindForbidden, "admin access required"))
			return
		}
		c.Next()
	}
}
