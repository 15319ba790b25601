package httpapi

import (
	"errors"
	"net/http"

	"github.com/aaronromeo/swolelog/internal/draft"
	"github.com/aaronromeo/swolelog/internal/form"
	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	var verr *workout.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, draft.ErrNotFound), errors.Is(err, workout.ErrRowOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, workout.ErrInvalidNumber),
		errors.Is(err, workout.ErrInvalidDate),
		errors.Is(err, workout.ErrUnknownField),
		errors.Is(err, workout.ErrLastRow):
		return http.StatusBadRequest
	case errors.Is(err, form.ErrSubmit):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	body := fiber.Map{"error": err.Error()}

	var verr *workout.ValidationError
	if errors.As(err, &verr) {
		body["problems"] = verr.Problems
	}
	if status == http.StatusBadGateway {
		// upstream details stay in the log
		body["error"] = form.ErrSubmit.Error()
	}
	return c.Status(status).JSON(body)
}
