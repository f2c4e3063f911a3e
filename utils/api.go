package utils

import (
	"log"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/course-catalog/database"
	"github.com/sahilchouksey/course-catalog/utils/response"
)

// MakeHTTPHandleFunc binds a store to a handler that needs one
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
			return response.InternalServerError(c, "")
		}
		return nil
	}
}
