package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID reuses the caller's X-Request-ID or generates a new one, and
// echoes it on the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// StructuredLoggingMiddleware provides structured logging with request latency
// and query parameters, and records each request in m
func StructuredLoggingMiddleware(logger *slog.Logger, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		requestID := GetRequestID(c)

		logger.Debug("request started",
			"request_id", requestID,
			"method", method,
			"path", path,
			"query_params", c.Request.URL.Query().Encode(),
			"remote_addr", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		// unmatched routes are counted together so 404 scans cannot grow the map
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Record(method+" "+route, statusCode)

		level := slog.LevelInfo
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if statusCode >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "request completed",
			"request_id", requestID,
			"method", method,
			"path", path,
			"route", route,
			"status_code", statusCode,
			"latency_ms", latency.Milliseconds(),
			"latency", latency.String(),
			"bytes_written", c.Writer.Size(),
		)

		for _, err := range c.Errors {
			logger.Error("request error",
				"request_id", requestID,
				"method", method,
				"path", path,
				"error", err.Error(),
				"latency_ms", latency.Milliseconds(),
			)
		}
	}
}

// Recovery turns a panic into a 500 response and logs it
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "An unexpected error occurred",
		})
	})
}

// BodyLimit caps request bodies at maxBytes
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
