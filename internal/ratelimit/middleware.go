package ratelimit

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/observability"
)

// Middleware throttles requests per client IP.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := observability.GetRealClientIP(c)
		result := s.CheckRateLimit(c.Request.Context(), ip)

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := (result.RetryAfterMs + 999) / 1000
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			s.logger.Warn(observability.WithFields(c.Request.Context(),
				observability.Field{Key: "client_ip", Value: ip},
				observability.Field{Key: "retry_after_ms", Value: result.RetryAfterMs},
			), "rate limit exceeded")

			apierrors.RespondWithError(c, apierrors.TooManyRequests("Too many requests, please try again later."))
			return
		}

		c.Next()
	}
}
