package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaronromeo/swolelog/internal/draft"
	"github.com/aaronromeo/swolelog/internal/id"
	"github.com/aaronromeo/swolelog/internal/metrics"
	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/aaronromeo/swolelog/internal/workoutsapi"
)

// ErrSubmit marks a submission the workouts API did not accept.
var ErrSubmit = errors.New("failed to add workout")

// Submitter sends a finished workout to the workouts API.
type Submitter interface {
	Submit(ctx context.Context, s workout.Submission) error
}

// Controller owns the edit and submit lifecycle of workout drafts.
// Read-modify-write of a draft happens under mu; the POST itself does not,
// so a draft stays editable while its submission is in flight.
type Controller struct {
	store   draft.Store
	variant workout.Variant
	api     Submitter
	metrics *metrics.Manager
	logger  *slog.Logger

	mu sync.Mutex
}

func NewController(
	store draft.Store,
	variant workout.Variant,
	api Submitter,
	metricsManager *metrics.Manager,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:   store,
		variant: variant,
		api:     api,
		metrics: metricsManager,
		logger:  logger,
	}
}

func (c *Controller) Variant() workout.Variant { return c.variant }

// Create stores a fresh draft and returns its ID.
func (c *Controller) Create(ctx context.Context) (string, workout.Draft, error) {
	draftID := id.NewDraftID()
	d := workout.NewDraft()
	if err := c.store.Put(ctx, draftID, d); err != nil {
		return "", workout.Draft{}, fmt.Errorf("store draft: %w", err)
	}
	c.metrics.CounterDrafts.Inc()
	c.logger.Debug("draft created", "draft", draftID)
	return draftID, d, nil
}

func (c *Controller) Get(ctx context.Context, draftID string) (workout.Draft, error) {
	return c.store.Get(ctx, draftID)
}

// Discard drops a draft. Unknown IDs are not an error.
func (c *Controller) Discard(ctx context.Context, draftID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(ctx, draftID)
}

// edit loads the draft, applies fn and stores the result. Nothing is stored when fn fails.
func (c *Controller) edit(ctx context.Context, draftID string, fn func(d *workout.Draft) error) (workout.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.store.Get(ctx, draftID)
	if err != nil {
		return workout.Draft{}, err
	}
	if err := fn(&d); err != nil {
		return workout.Draft{}, err
	}
	if err := c.store.Put(ctx, draftID, d); err != nil {
		return workout.Draft{}, fmt.Errorf("store draft: %w", err)
	}
	return d, nil
}

func (c *Controller) SetDate(ctx context.Context, draftID, raw string) (workout.Draft, error) {
	return c.edit(ctx, draftID, func(d *workout.Draft) error {
		return d.SetDate(raw)
	})
}

func (c *Controller) AddExercise(ctx context.Context, draftID string) (workout.Draft, error) {
	return c.edit(ctx, draftID, func(d *workout.Draft) error {
		d.AddExercise()
		return nil
	})
}

func (c *Controller) RemoveExercise(ctx context.Context, draftID string, index int) (workout.Draft, error) {
	return c.edit(ctx, draftID, func(d *workout.Draft) error {
		return d.RemoveExercise(index)
	})
}

func (c *Controller) UpdateField(ctx context.Context, draftID string, index int, field, raw string) (workout.Draft, error) {
	f, err := workout.ParseField(field)
	if err != nil {
		return workout.Draft{}, err
	}
	return c.edit(ctx, draftID, func(d *workout.Draft) error {
		return d.Update(index, f, raw)
	})
}

// Values is a whole-form post: the date plus every row's raw inputs, in row order.
type Values struct {
	Date string
	Rows []map[workout.Field]string
}

// Apply writes every value of a whole-form post. Values that fail to parse are
// skipped and reported; the rest are stored. Rows beyond the draft's length are ignored.
func (c *Controller) Apply(ctx context.Context, draftID string, v Values) (workout.Draft, []error, error) {
	var problems []error
	d, err := c.edit(ctx, draftID, func(d *workout.Draft) error {
		if err := d.SetDate(v.Date); err != nil {
			problems = append(problems, err)
		}
		for i, row := range v.Rows {
			if i >= len(d.Exercises) {
				break
			}
			for _, f := range workout.Fields {
				raw, ok := row[f]
				if !ok {
					continue
				}
				if err := d.Update(i, f, raw); err != nil {
					problems = append(problems, fmt.Errorf("exercise %d: %w", i+1, err))
				}
			}
		}
		return nil
	})
	return d, problems, err
}

// Submit validates the draft, POSTs it and resets the draft on success.
// On any failure the draft is left as it was.
func (c *Controller) Submit(ctx context.Context, draftID string) (workout.Draft, error) {
	c.mu.Lock()
	d, err := c.store.Get(ctx, draftID)
	c.mu.Unlock()
	if err != nil {
		return workout.Draft{}, err
	}

	log := c.logger.With("draft", draftID, "variant", c.variant.Name())

	sub, err := workout.Build(d, c.variant)
	if err != nil {
		c.metrics.CounterSubmissions.WithLabelValues(metrics.ResultInvalid).Inc()
		log.Info("workout rejected by validation", "error", err)
		return d, err
	}

	start := time.Now()
	err = c.api.Submit(ctx, sub)
	c.metrics.HistSubmitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var reqErr *workoutsapi.RequestError
		if errors.As(err, &reqErr) {
			c.metrics.CounterSubmissions.WithLabelValues(metrics.ResultRejected).Inc()
		} else {
			c.metrics.CounterSubmissions.WithLabelValues(metrics.ResultFailed).Inc()
		}
		log.Error("error adding workout", "error", err)
		return d, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	c.metrics.CounterSubmissions.WithLabelValues(metrics.ResultSuccess).Inc()

	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := workout.NewDraft()
	if err := c.store.Put(ctx, draftID, fresh); err != nil {
		// the workout is already added; a stale draft is not a failed submit
		log.Error("workout added but draft not reset", "error", err)
	}
	return fresh, nil
}
