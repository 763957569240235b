package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/niley1nov/LMS/internal/dto"
	"github.com/niley1nov/LMS/internal/services"
)

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized becomes a 500 with the detail kept out of the response body.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidIdentityToken):
		return respond(c, fiber.StatusUnauthorized, err)
	case errors.Is(err, services.ErrIdentityIncomplete),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrOrderInUse):
		return respond(c, fiber.StatusBadRequest, err)
	case errors.Is(err, services.ErrForbidden):
		return respond(c, fiber.StatusForbidden, err)
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrModuleNotFound):
		return respond(c, fiber.StatusNotFound, err)
	case errors.Is(err, services.ErrAlreadyEnrolled):
		return respond(c, fiber.StatusConflict, err)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func respond(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}

// unauthorizedSession is the defensive branch for handlers reached without a
// resolved user. The session middleware answers first in practice; the
// message matches its wording, not the identity-token failure.
func unauthorizedSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized: missing or invalid session",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func invalidFields(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Validation failed", Fields: fields,
	})
}
