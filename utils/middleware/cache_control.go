package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/course-catalog/utils/response"
)

// CacheControl marks successful responses of a route as publicly cacheable
// for maxAge. It only sets a header; nothing is cached server side.
func CacheControl(maxAge time.Duration) fiber.Handler {
	header := response.CacheControlPublic(maxAge)

	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			c.Set(fiber.HeaderCacheControl, header)
		}
		return nil
	}
}
