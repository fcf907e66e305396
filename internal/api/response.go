package api

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/logger"
)

// Success writes a 200 envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

func ErrorWithDetails(c *fiber.Ctx, code int, message string, details interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"errors":  details,
	})
}

// ValidationError reports each failing field with its validator tag.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Error(c, fiber.StatusBadRequest, "invalid input")
	}

	fields := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return ErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", fields)
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case apperrors.IsValidation(err):
		return fiber.StatusBadRequest
	case apperrors.IsNotFound(err):
		return fiber.StatusNotFound
	case apperrors.IsConflict(err):
		return fiber.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler is the fiber error handler for every route.
func errorHandler(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ValidationError(c, err)
	}

	code := StatusFor(err)
	switch {
	case code == fiber.StatusGatewayTimeout && errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Request timed out", "method", c.Method(), "path", c.Path())
		return Error(c, code, "request timed out")
	case code == fiber.StatusServiceUnavailable && errors.Is(err, context.Canceled):
		return Error(c, code, "request cancelled")
	}
	if code >= fiber.StatusInternalServerError {
		logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return Error(c, code, "internal error")
	}
	return Error(c, code, err.Error())
}
