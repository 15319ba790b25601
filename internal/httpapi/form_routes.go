package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaronromeo/swolelog/internal/draft"
	"github.com/aaronromeo/swolelog/internal/form"
	"github.com/aaronromeo/swolelog/internal/id"
	"github.com/aaronromeo/swolelog/internal/web"
	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/gofiber/fiber/v2"
)

const draftCookie = "swolelog_draft"

const (
	flashUnreadable = "Some values could not be read"
	flashSubmitted  = "Workout added successfully!"
	flashFailed     = "Failed to add workout"
)

type formHandler struct {
	Deps
}

func registerForm(app *fiber.App, deps Deps) {
	h := formHandler{Deps: deps}
	app.Get("/", h.show)
	app.Post("/", h.post)
}

// current returns the cookie's draft, starting a new one when the cookie is missing or its draft expired.
func (h formHandler) current(c *fiber.Ctx) (string, workout.Draft, error) {
	ctx := c.UserContext()
	if draftID := c.Cookies(draftCookie); id.ValidDraftID(draftID) {
		d, err := h.Controller.Get(ctx, draftID)
		if err == nil {
			return draftID, d, nil
		}
		if !errors.Is(err, draft.ErrNotFound) {
			return "", workout.Draft{}, err
		}
	}

	draftID, d, err := h.Controller.Create(ctx)
	if err != nil {
		return "", workout.Draft{}, err
	}
	c.Cookie(&fiber.Cookie{
		Name:     draftCookie,
		Value:    draftID,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return draftID, d, nil
}

func (h formHandler) show(c *fiber.Ctx) error {
	_, d, err := h.current(c)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, h.page(d))
}

// post stores every posted field, then runs the button's action.
func (h formHandler) post(c *fiber.Ctx) error {
	ctx := c.UserContext()
	draftID, d, err := h.current(c)
	if err != nil {
		return err
	}

	d, unreadable, err := h.Controller.Apply(ctx, draftID, formValues(c, len(d.Exercises)))
	if err != nil {
		return err
	}

	status := http.StatusOK
	var flash, kind string
	var details []string
	if len(unreadable) > 0 {
		status, flash, kind = http.StatusBadRequest, flashUnreadable, web.FlashError
		for _, e := range unreadable {
			details = append(details, e.Error())
		}
	}

	action := c.FormValue("action")
	if action == "submit" && len(unreadable) > 0 {
		// a post with unreadable values is stored but not sent
		action = "save"
	}

	next, err := h.act(ctx, draftID, action)
	var verr *workout.ValidationError
	switch {
	case err == nil:
		d = next
		if action == "submit" {
			flash, kind = flashSubmitted, web.FlashSuccess
		}
	case errors.As(err, &verr):
		status, flash, kind = statusFor(err), h.invalidMessage(), web.FlashError
		details = details[:0]
		for _, p := range verr.Problems {
			details = append(details, p.String())
		}
	case errors.Is(err, form.ErrSubmit):
		status, flash, kind = statusFor(err), flashFailed, web.FlashError
	case statusFor(err) < http.StatusInternalServerError:
		status, flash, kind = statusFor(err), err.Error(), web.FlashError
	default:
		return err
	}

	page := h.page(d)
	page.Flash, page.FlashKind, page.Problems = flash, kind, details
	return h.render(c, status, page)
}

func (h formHandler) act(ctx context.Context, draftID, action string) (workout.Draft, error) {
	switch {
	case action == "add":
		return h.Controller.AddExercise(ctx, draftID)
	case strings.HasPrefix(action, "remove-"):
		index, err := strconv.Atoi(strings.TrimPrefix(action, "remove-"))
		if err != nil {
			return workout.Draft{}, fmt.Errorf("%w: %q", workout.ErrRowOutOfRange, action)
		}
		return h.Controller.RemoveExercise(ctx, draftID, index)
	case action == "submit":
		return h.Controller.Submit(ctx, draftID)
	}
	return h.Controller.Get(ctx, draftID)
}

func (h formHandler) invalidMessage() string {
	if h.Controller.Variant().Categorized() {
		return "Please enter a name and category for every exercise"
	}
	return "Please select valid exercise names from the list"
}

func (h formHandler) page(d workout.Draft) web.FormPage {
	return web.NewFormPage(d, h.Controller.Variant(), h.Catalog)
}

func (h formHandler) render(c *fiber.Ctx, status int, page web.FormPage) error {
	var buf bytes.Buffer
	if err := h.Templates.ExecuteTemplate(&buf, "form.html", page); err != nil {
		return err
	}
	c.Type("html")
	return c.Status(status).Send(buf.Bytes())
}

// formValues reads the date and the inputs of the first n rows. Inputs missing
// from the post are left out so their stored values survive.
func formValues(c *fiber.Ctx, n int) form.Values {
	args := c.Request().PostArgs()
	v := form.Values{Date: string(args.Peek("date"))}
	for i := 0; i < n; i++ {
		row := map[workout.Field]string{}
		for _, f := range workout.Fields {
			key := fmt.Sprintf("%s-%d", f, i)
			if args.Has(key) {
				row[f] = string(args.Peek(key))
			}
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}
