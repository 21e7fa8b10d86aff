package models

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestFieldErrors(t *testing.T) {
	fieldErrs := NewFieldErrors()
	assert.False(t, fieldErrs.HasErrors())
	assert.NoError(t, fieldErrs.ErrOrNil())

	fieldErrs.Add("title", "title is required")
	fieldErrs.Add("title", "title is too long")
	fieldErrs.AddNonField("something else went wrong")

	assert.True(t, fieldErrs.HasErrors())
	assert.Len(t, fieldErrs.Fields["title"], 2)
	assert.Len(t, fieldErrs.Fields[NonFieldErrors], 1)
	assert.Error(t, fieldErrs.ErrOrNil())
	assert.Contains(t, fieldErrs.Error(), "title")
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("Post", 1), fiber.StatusNotFound},
		{"validation", NewValidationError("bad input"), fiber.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("no token"), fiber.StatusUnauthorized},
		{"forbidden", NewForbiddenError("staff only"), fiber.StatusForbidden},
		{"conflict", NewConflictError("duplicate"), fiber.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"plain error", errors.New("anything"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}

	t.Run("field errors map to 400", func(t *testing.T) {
		fieldErrs := NewFieldErrors()
		fieldErrs.Add("reason", "unknown reason code")
		assert.Equal(t, fiber.StatusBadRequest, StatusForError(fieldErrs))
	})
}

func TestRespondWithError_HidesInternalCause(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError,
			NewInternalError(errors.New("pq: password authentication failed for user")))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError,
			errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusConflict, NewConflictError("duplicate"))
	})

	for _, path := range []string{"/internal", "/plain"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, path, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)

			var body ErrorResponse
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "INTERNAL_ERROR", body.Code)
			assert.Equal(t, "Internal server error", body.Error)
			assert.Empty(t, body.Details)
		})
	}

	t.Run("client errors keep their message", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/conflict", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)

		var body ErrorResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "CONFLICT", body.Code)
		assert.Equal(t, "duplicate", body.Error)
	})
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("pq: connection refused")
	appErr := NewInternalError(inner)
	assert.True(t, errors.Is(appErr, inner))
}
