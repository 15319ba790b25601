package draft

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func sampleDraft(t *testing.T) workout.Draft {
	t.Helper()
	d := workout.NewDraft()
	require.NoError(t, d.SetDate("2024-01-05"))
	require.NoError(t, d.Update(0, workout.FieldName, "Squat"))
	require.NoError(t, d.Update(0, workout.FieldWeight, ""))
	d.AddExercise()
	return d
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(1, time.Hour)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	d := sampleDraft(t)
	require.NoError(t, s.Put(ctx, "a", d))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, d, got)
	assert.Nil(t, got.Exercises[0].Weight, "cleared fields stay null")

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func largeDraft(t *testing.T, rows int) workout.Draft {
	t.Helper()
	d := sampleDraft(t)
	for len(d.Exercises) < rows {
		d.AddExercise()
	}
	return d
}

func TestMemoryStore_LargeDraft(t *testing.T) {
	ctx := context.Background()
	// 1MB cache: freecache alone would refuse entries over 1KB
	s := NewMemoryStore(1, time.Hour)

	big := largeDraft(t, 2000)
	require.NoError(t, s.Put(ctx, "big", big))
	got, err := s.Get(ctx, "big")
	require.NoError(t, err)
	assert.Len(t, got.Exercises, 2000)
	assert.Equal(t, big, got)

	small := sampleDraft(t)
	require.NoError(t, s.Put(ctx, "big", small))
	got, err = s.Get(ctx, "big")
	require.NoError(t, err)
	assert.Equal(t, small, got)

	require.NoError(t, s.Put(ctx, "big", big))
	require.NoError(t, s.Delete(ctx, "big"))
	_, err = s.Get(ctx, "big")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(1, time.Hour)

	d := sampleDraft(t)
	require.NoError(t, s.Put(ctx, "a", d))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, got.Update(0, workout.FieldName, "Bench"))

	again, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Squat", again.Exercises[0].Name)
}

func TestRedisStore_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	s := NewRedisStore(db, time.Hour)
	ctx := context.Background()

	d := sampleDraft(t)
	b, err := json.Marshal(d)
	require.NoError(t, err)

	mock.ExpectGet(keyPrefix + "abc").SetVal(string(b))
	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	mock.ExpectGet(keyPrefix + "gone").RedisNil()
	_, err = s.Get(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectGet(keyPrefix + "broken").SetErr(errors.New("connection refused"))
	_, err = s.Get(ctx, "broken")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_LargeDraft(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	s := NewRedisStore(db, time.Hour)
	ctx := context.Background()

	big := largeDraft(t, 2000)
	b, err := json.Marshal(big)
	require.NoError(t, err)

	mock.ExpectSet(keyPrefix+"big", b, time.Hour).SetVal("OK")
	require.NoError(t, s.Put(ctx, "big", big))

	mock.ExpectGet(keyPrefix + "big").SetVal(string(b))
	got, err := s.Get(ctx, "big")
	require.NoError(t, err)
	assert.Len(t, got.Exercises, 2000)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_PutDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	s := NewRedisStore(db, 30*time.Minute)
	ctx := context.Background()

	d := sampleDraft(t)
	b, err := json.Marshal(d)
	require.NoError(t, err)

	mock.ExpectSet(keyPrefix+"abc", b, 30*time.Minute).SetVal("OK")
	require.NoError(t, s.Put(ctx, "abc", d))

	mock.ExpectDel(keyPrefix + "abc").SetVal(1)
	require.NoError(t, s.Delete(ctx, "abc"))

	mock.ExpectDel(keyPrefix + "abc").SetErr(errors.New("boom"))
	assert.Error(t, s.Delete(ctx, "abc"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
