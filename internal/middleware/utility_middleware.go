package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gopet/internal/observability"
	"gopet/internal/utils"
	"gopet/pkg/logger"
)

// CORSMiddleware allows the SPA origins. An empty list or "*" allows any
// origin without credentials.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", utils.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", utils.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}

	if len(allowedOrigins) == 0 || contains(allowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}

	return cors.New(config)
}

// RequestIDMiddleware reuses the caller's X-Request-ID or mints one, and
// exposes it on the gin context, the request context and the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(utils.HeaderRequestID)
		if requestID == "" {
			requestID = utils.NewRequestID()
		}

		c.Set(utils.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Header(utils.HeaderRequestID, requestID)
		c.Next()
	}
}

// LoggingMiddleware logs one line per request and records the HTTP metrics
// under the route template, so /rides/ride_1 and /rides/ride_2 share a series.
func LoggingMiddleware(log *logger.Logger, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		duration := time.Since(start)

		metrics.ObserveHTTPRequest(c.Request.Method, route, status, duration)
		log.LogAPIRequest(c.Request.Method, c.Request.URL.Path, status, duration, c.GetString(utils.ContextKeyRequestID))
	}
}

// RecoveryMiddleware turns panics into a 500 envelope and logs them.
func RecoveryMiddleware(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithContext(c.Request.Context()).
			WithField("panic", recovered).
			Error("Recovered from panic")
		utils.InternalServerErrorResponse(c)
	})
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
