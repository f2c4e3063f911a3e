package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheControlPublic(t *testing.T) {
	assert.Equal(t, "public, max-age=3600", CacheControlPublic(60*time.Minute))
	assert.Equal(t, "public, max-age=0", CacheControlPublic(0))
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/fiber-error", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad input")
	})
	app.Get("/plain-error", func(c *fiber.Ctx) error {
		return errors.New("database exploded")
	})

	tests := []struct {
		path     string
		status   int
		code     string
		message string
	}{
		{"/fiber-error", fiber.StatusBadRequest, "BAD_REQUEST", "bad input"},
		{"/plain-error", fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
		{"/missing", fiber.StatusNotFound, "NOT_FOUND", "Cannot GET /missing"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var payload Response
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.False(t, payload.Success)
			require.NotNil(t, payload.Error)
			assert.Equal(t, tt.code, payload.Error.Code)
			assert.Equal(t, tt.message, payload.Error.Message)
		})
	}
}
