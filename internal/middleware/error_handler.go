package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pllus/main-blog/dto"
	"github.com/pllus/main-blog/internal/apperr"
)

// ErrorHandler writes every handler error as {"message": ...}. Fiber's own
// errors keep their status; everything else goes through apperr.Status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := apperr.Status(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.OriginalURL(), err)
		if status == fiber.StatusInternalServerError {
			msg = "internal server error"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Message: msg})
}
