package response

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standardized API response
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success returns a 200 response with data as the whole body
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// CacheControlPublic renders a "public, max-age=N" header value
func CacheControlPublic(maxAge time.Duration) string {
	return fmt.Sprintf("public, max-age=%d", int64(maxAge.Seconds()))
}

// Text returns a 200 text/plain response
func Text(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).SendString(message)
}

// StatusOnly returns a response with the given status and an empty body
func StatusOnly(c *fiber.Ctx, statusCode int) error {
	c.Status(statusCode)
	return nil
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string, code string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message, "BAD_REQUEST")
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message, "NOT_FOUND")
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message, "TOO_MANY_REQUESTS")
}

// ValidationError returns a 400 Bad Request response listing the invalid fields
func ValidationError(c *fiber.Ctx, err error, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: err.Error(),
			Fields:  fields,
		},
	})
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// ServiceUnavailable returns a 503 Service Unavailable response
func ServiceUnavailable(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	return Error(c, fiber.StatusServiceUnavailable, message, "SERVICE_UNAVAILABLE")
}

// ErrorHandler is the app-wide fiber error handler. It renders errors that
// escaped the handlers with the same envelope as the helpers above.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	switch code {
	case fiber.StatusNotFound:
		return Error(c, code, message, "NOT_FOUND")
	case fiber.StatusMethodNotAllowed:
		return Error(c, code, message, "METHOD_NOT_ALLOWED")
	case fiber.StatusBadRequest:
		return Error(c, code, message, "BAD_REQUEST")
	case fiber.StatusInternalServerError:
		return InternalServerError(c, message)
	default:
		return Error(c, code, message, "ERROR")
	}
}
