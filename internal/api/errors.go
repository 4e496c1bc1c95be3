package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
)

const msgInternal = "Internal server error"

func statusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindInvalid:
		return fiber.StatusBadRequest
	case apperrors.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	kind := apperrors.KindOf(err)
	if kind == apperrors.KindUnknown {
		logger.Error("Unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgInternal})
	}
	return c.Status(statusOf(kind)).JSON(fiber.Map{"error": apperrors.Message(err, msgInternal)})
}
