package response

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/acadbridge/campus-api/services"
)

// FromServiceError translates a business error from the service layer into a
// structured response. Unknown errors are logged and mapped to a generic 500
// so storage internals never reach the caller.
func FromServiceError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return NotFound(c, notFound.Error())
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		return Conflict(c, conflict.Error())
	}

	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return BadRequest(c, validation.Error())
	}

	log.Printf("unexpected error on %s %s: %v", c.Method(), c.Path(), err)
	return InternalServerError(c, "")
}
