package models

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NonFieldErrors is the pseudo-field key used for whole-form validation
// errors such as duplicate or self reports.
const NonFieldErrors = "non_field_errors"

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Status  string              `json:"status"`
	Error   string              `json:"error"`
	Code    string              `json:"code,omitempty"`
	Details string              `json:"details,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// FieldErrors is a validation failure keyed by field name. Whole-form
// violations go under NonFieldErrors.
type FieldErrors struct {
	Fields map[string][]string
}

// NewFieldErrors returns an empty FieldErrors ready for Add calls.
func NewFieldErrors() *FieldErrors {
	return &FieldErrors{Fields: map[string][]string{}}
}

// Add appends a message for the given field.
func (e *FieldErrors) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// AddNonField appends a whole-form message.
func (e *FieldErrors) AddNonField(message string) {
	e.Add(NonFieldErrors, message)
}

// HasErrors reports whether any message was added.
func (e *FieldErrors) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns e as an error when it holds messages, nil otherwise.
func (e *FieldErrors) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *FieldErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// RespondWithError creates a standardized error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Status: "error"}

	var fieldErrs *FieldErrors
	var appErr *AppError
	switch {
	case errors.As(err, &fieldErrs):
		response.Error = "Validation failed"
		response.Code = "VALIDATION_ERROR"
		response.Errors = fieldErrs.Fields
	case errors.As(err, &appErr):
		response.Error = appErr.Message
		response.Code = appErr.Code
		// The wrapped cause of an internal error is a driver or storage
		// message; it is logged here and never sent to the client.
		if appErr.Code == "INTERNAL_ERROR" {
			slog.ErrorContext(c.UserContext(), "internal error", "error", appErr.Err)
		} else if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	default:
		slog.ErrorContext(c.UserContext(), "unhandled error", "error", err)
		response.Error = "Internal server error"
		response.Code = "INTERNAL_ERROR"
	}

	return c.Status(status).JSON(response)
}

// StatusForError maps a domain error to its HTTP status code.
func StatusForError(err error) int {
	var fieldErrs *FieldErrors
	if errors.As(err, &fieldErrs) {
		return fiber.StatusBadRequest
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		case "FORBIDDEN":
			return fiber.StatusForbidden
		case "CONFLICT":
			return fiber.StatusConflict
		}
	}
	return fiber.StatusInternalServerError
}
