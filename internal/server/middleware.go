package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"openday/internal/logging"
)

const correlationHeader = "X-Correlation-ID"

func (s *Server) correlationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationHeader)
		// only UUIDs are trusted from the client; anything else is replaced
		if parsed, err := uuid.Parse(id); err == nil && len(id) == 36 {
			id = parsed.String()
		} else {
			id = logging.NewCorrelationID()
		}
		c.Request = c.Request.WithContext(logging.WithCorrelationID(c.Request.Context(), id))
		c.Header(correlationHeader, id)
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.metrics.Request(c.Request.Method, route, strconv.Itoa(status), latency.Seconds())

		logging.FromContext(c.Request.Context(), s.logger).Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.String("remote_addr", c.ClientIP()),
		)
	}
}

// rateLimit applies only to the write-side POST routes.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || s.limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		c.Header("Retry-After", strconv.Itoa(int(s.limiter.window.Seconds())))
		respond(c, http.StatusTooManyRequests, msgTooManyRequest, nil)
		c.Abort()
	}
}
