package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad %s", "input"), fiber.StatusBadRequest},
		{Unauthenticated("who"), fiber.StatusUnauthorized},
		{Forbidden("no"), fiber.StatusForbidden},
		{NotFound("gone"), fiber.StatusNotFound},
		{Conflict("dup"), fiber.StatusConflict},
		{errors.New("boom"), fiber.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("gone")), fiber.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestSentinelsMatchWithErrorsIs(t *testing.T) {
	sentinel := NotFound("task not found")
	wrapped := fmt.Errorf("delete: %w", NotFound("task not found"))

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, NotFound("customer not found")))
	assert.False(t, errors.Is(wrapped, Conflict("task not found")))
}

func TestRespond(t *testing.T) {
	app := fiber.New()
	app.Get("/client", func(c *fiber.Ctx) error { return Respond(c, Conflict("sku taken")) })
	app.Get("/server", func(c *fiber.Ctx) error { return Respond(c, errors.New("pq: connection refused")) })

	resp, err := app.Test(httptest.NewRequest("GET", "/client", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var body dto.ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Error)
	assert.Equal(t, "sku taken", body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/server", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	raw, _ = io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, string(raw), "connection refused")
}
