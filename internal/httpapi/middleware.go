package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

const headerRequestID = "X-Request-ID"

// RequestLogger assigns every request an id, exposes it through the user
// context and the response header, and logs the outcome.
func RequestLogger(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()

		c.Locals("requestid", requestID)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), requestID))
		c.Set(headerRequestID, requestID)

		err := c.Next()

		ctx := c.UserContext()
		statusCode := c.Response().StatusCode()
		entry := log.
			WithField("http_method", c.Method()).
			WithField("uri", c.OriginalURL()).
			WithField("status_code", statusCode).
			WithField("latency_ms", time.Since(start).Milliseconds()).
			WithField("client_ip", c.IP()).
			WithField("user_agent", string(c.Request().Header.UserAgent()))

		switch {
		case err != nil:
			entry.WithField("error", err.Error()).Error(ctx, "Request processing failed")
		case statusCode >= 500:
			entry.Error(ctx, "Request completed with server error")
		case statusCode >= 400:
			entry.Warn(ctx, "Request completed with client error")
		default:
			entry.Info(ctx, "Request completed successfully")
		}

		return err
	}
}
