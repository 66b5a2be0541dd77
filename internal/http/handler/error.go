package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"

	"github.com/Gfx-Boy/sovereign-ledger/internal/http/middleware"
	"github.com/Gfx-Boy/sovereign-ledger/internal/service"
	"github.com/Gfx-Boy/sovereign-ledger/internal/stamp"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service-layer errors onto the error envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	var parseErr *stamp.ParseError
	var vErrs validation.Errors

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrFolderNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrUploadInProgress):
		return writeError(c, fiber.StatusConflict, "UPLOAD_IN_PROGRESS", "an upload is already in progress for this submitter")
	case errors.Is(err, service.ErrFileEmpty):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	case errors.As(err, &parseErr):
		return writeError(c, fiber.StatusBadRequest, "INVALID_DOCUMENT", "document could not be parsed as a PDF")
	case errors.As(err, &vErrs):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", vErrs.Error())
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrRecordNumberRequired):
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
