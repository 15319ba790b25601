package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aaronromeo/swolelog/internal/draft"
	"github.com/aaronromeo/swolelog/internal/id"
	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/gofiber/fiber/v2"
)

type fieldUpdate struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

func registerDrafts(app *fiber.App, deps Deps) {
	ctl := deps.Controller
	api := app.Group("/api")

	api.Get("/exercises", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"variant":    ctl.Variant().Name(),
			"exercises":  deps.Catalog.Exercises(),
			"categories": deps.Catalog.Categories(),
		})
	})

	api.Post("/drafts", func(c *fiber.Ctx) error {
		draftID, d, err := ctl.Create(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{"id": draftID, "draft": d})
	})

	drafts := api.Group("/drafts/:id", func(c *fiber.Ctx) error {
		if !id.ValidDraftID(c.Params("id")) {
			return writeError(c, draft.ErrNotFound)
		}
		return c.Next()
	})

	drafts.Get("/", func(c *fiber.Ctx) error {
		return respond(c)(ctl.Get(c.UserContext(), c.Params("id")))
	})

	drafts.Delete("/", func(c *fiber.Ctx) error {
		if err := ctl.Discard(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	drafts.Put("/date", func(c *fiber.Ctx) error {
		var in struct {
			Date string `json:"date"`
		}
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json: " + err.Error()})
		}
		return respond(c)(ctl.SetDate(c.UserContext(), c.Params("id"), in.Date))
	})

	drafts.Post("/exercises", func(c *fiber.Ctx) error {
		return respond(c)(ctl.AddExercise(c.UserContext(), c.Params("id")))
	})

	drafts.Delete("/exercises/:index", func(c *fiber.Ctx) error {
		index, err := rowIndex(c)
		if err != nil {
			return writeError(c, err)
		}
		return respond(c)(ctl.RemoveExercise(c.UserContext(), c.Params("id"), index))
	})

	drafts.Patch("/exercises/:index", func(c *fiber.Ctx) error {
		index, err := rowIndex(c)
		if err != nil {
			return writeError(c, err)
		}
		var in fieldUpdate
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json: " + err.Error()})
		}
		raw, err := rawValue(in.Value)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return respond(c)(ctl.UpdateField(c.UserContext(), c.Params("id"), index, in.Field, raw))
	})

	drafts.Post("/submit", func(c *fiber.Ctx) error {
		return respond(c)(ctl.Submit(c.UserContext(), c.Params("id")))
	})
}

func respond(c *fiber.Ctx) func(workout.Draft, error) error {
	return func(d workout.Draft, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(d)
	}
}

func rowIndex(c *fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", workout.ErrRowOutOfRange, c.Params("index"))
	}
	return index, nil
}

// rawValue turns a JSON string, number or null into the text a form input would hold.
func rawValue(v json.RawMessage) (string, error) {
	if len(v) == 0 || string(v) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), nil
	}
	return "", errors.New("value must be a string, number or null")
}
