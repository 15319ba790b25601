package workoutsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaronromeo/swolelog/internal/id"
	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/hashicorp/go-retryablehttp"
)

const DefaultURL = "http://localhost:5050/api/workouts"

// RequestError is returned when the API answers with a non-2xx status.
type RequestError struct {
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("workouts api status %d", e.StatusCode)
}

type Client struct {
	h       *retryablehttp.Client
	url     string
	timeout time.Duration
	logger  *slog.Logger
}

type ClientOption func(*Client)

func WithURL(u string) ClientOption {
	return func(c *Client) {
		c.url = u
	}
}

// WithRetries sets how many times a failed POST is repeated. The default is 0.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		c.h.RetryMax = n
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.h.HTTPClient = hc
	}
}

func New(opts ...ClientOption) *Client {
	h := retryablehttp.NewClient()
	h.RetryMax = 0
	h.Logger = nil
	// hand the final response back so the status can be reported
	h.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c := &Client{h: h, url: DefaultURL, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates and POSTs one workout. Any 2xx status is success; the
// response body is discarded.
func (c *Client) Submit(ctx context.Context, s workout.Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	if err := workout.ValidateSubmissionJSON(body); err != nil {
		return err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	subID := id.SubmissionID(s.Date.Format(workout.DateLayout), body)
	log := c.logger.With("submission", subID, "exercises", len(s.Exercises))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("posting workout", "url", c.url)
	resp, err := c.h.Do(req)
	if err != nil {
		return fmt.Errorf("post workout: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{StatusCode: resp.StatusCode}
	}
	log.Info("workout added", "status", resp.StatusCode)
	return nil
}
