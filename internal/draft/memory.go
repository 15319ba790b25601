package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/coocood/freecache"
	gocache "github.com/patrickmn/go-cache"
)

const megabyte = 1024 * 1024

// MemoryStore keeps drafts in a process-local freecache. Entries expire after ttl
// of inactivity and may be evicted early when the cache is full.
// Drafts over freecache's entry limit (1/1024 of its size) go to an unbounded
// overflow cache with the same ttl, so a draft can hold any number of rows.
type MemoryStore struct {
	cache    *freecache.Cache
	overflow *gocache.Cache
	ttl      time.Duration
}

func NewMemoryStore(sizeMB int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: freecache.NewCache(sizeMB * megabyte),
		// no janitor goroutine; expired entries are swept on the next overflow put
		overflow: gocache.New(ttl, 0),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (workout.Draft, error) {
	if v, ok := s.overflow.Get(id); ok {
		return decode(v.([]byte))
	}
	b, err := s.cache.Get([]byte(id))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return workout.Draft{}, ErrNotFound
		}
		return workout.Draft{}, fmt.Errorf("cache get: %w", err)
	}
	return decode(b)
}

func (s *MemoryStore) Put(_ context.Context, id string, d workout.Draft) error {
	b, err := encode(d)
	if err != nil {
		return err
	}
	err = s.cache.Set([]byte(id), b, int(s.ttl.Seconds()))
	switch {
	case errors.Is(err, freecache.ErrLargeEntry):
		s.cache.Del([]byte(id))
		s.overflow.DeleteExpired()
		s.overflow.SetDefault(id, b)
		return nil
	case err != nil:
		return fmt.Errorf("cache set: %w", err)
	}
	// the draft fits again; drop any older oversized copy
	s.overflow.Delete(id)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Del([]byte(id))
	s.overflow.Delete(id)
	return nil
}
