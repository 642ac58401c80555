package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"roll-backend/internal/shared/apperr"
	"roll-backend/internal/shared/response"
)

var panicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_panics_recovered_total",
	Help: "Handler panics turned into 500 responses.",
}, []string{"path"})

// Recovery converts a handler panic into the standard 500 body
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				path := c.FullPath()
				if path == "" {
					path = "unmatched"
				}
				panicsTotal.WithLabelValues(path).Inc()

				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("method", c.Request.Method).
					Str("path", path).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered")

				response.ErrorResponse(c, http.StatusInternalServerError, apperr.CodeInternal, "Internal server error")
			}
		}()

		c.Next()
	}
}
