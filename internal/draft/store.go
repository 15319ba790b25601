package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaronromeo/swolelog/internal/workout"
)

var ErrNotFound = errors.New("draft not found")

// Store keeps in-progress workout forms keyed by draft ID.
type Store interface {
	Get(ctx context.Context, id string) (workout.Draft, error)
	Put(ctx context.Context, id string, d workout.Draft) error
	Delete(ctx context.Context, id string) error
}

func encode(d workout.Draft) ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal draft: %w", err)
	}
	return b, nil
}

func decode(b []byte) (workout.Draft, error) {
	var d workout.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return workout.Draft{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return d, nil
}
