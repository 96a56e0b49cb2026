package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/report"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/scoring"
	"alfredoptarigan/resume-screener/internal/services"
)

// badRequest lists the errors caused by the client's input.
var badRequest = []error{
	services.ErrNoFiles,
	services.ErrInvalidExtension,
	services.ErrFileTooLarge,
	services.ErrTooManyFiles,
	scoring.ErrJobDescriptionRequired,
	scoring.ErrUnknownStrategy,
	report.ErrUnknownFormat,
	report.ErrUnknownLayout,
}

// statusFor maps an error returned by the services to an HTTP status.
func statusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	if errors.Is(err, repositories.ErrScreeningNotFound) {
		return fiber.StatusNotFound
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

// NewErrorHandler returns the Fiber error handler that renders every error as
// {"error": ..., "code": ...}.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		code := statusFor(err)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  code,
		})
	}
}
