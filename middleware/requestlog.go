package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"remote-voting/logger"
	"remote-voting/types"
)

// RequestLog pushes an audit entry for every API request to the async DB
// logger. Bodies on /api/auth routes are withheld: login carries the contact
// value and verify carries the OTP code.
//
// Ctx accessors return zero-copy views into fasthttp's reusable buffers,
// which the next request on the connection overwrites. Everything retained
// past the handler must be copied before it reaches the logger goroutine.
func RequestLog(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		entry := types.LogEntry{
			Method:     utils.CopyString(c.Method()),
			URL:        utils.CopyString(c.OriginalURL()),
			ClientIP:   utils.CopyString(c.IP()),
			StatusCode: c.Response().StatusCode(),
			CreatedAt:  time.Now(),
		}
		if !strings.HasPrefix(c.Path(), "/api/auth") {
			entry.RequestBody = string(c.Body())
			entry.ResponseBody = string(c.Response().Body())
		}
		asyncLogger.Log(entry)

		return err
	}
}
