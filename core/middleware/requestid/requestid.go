// Package requestid tags every request with an id for log correlation.
package requestid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName is the response header carrying the id.
	HeaderName = "X-Request-ID"
	// LocalsKey is the fiber locals key read by logger.WithRequestID.
	LocalsKey = "request_id"
)

// New returns the middleware. An id supplied by the caller is kept.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
