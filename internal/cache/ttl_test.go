package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantry-it/backend/internal/cache"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func counter() (cache.Loader[int], *int) {
	calls := 0
	return func(context.Context) (int, error) {
		calls++
		return calls, nil
	}, &calls
}

func TestTTL_CachesUntilExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	c := cache.NewTTL[int](30 * time.Second).WithClock(clock.Now)
	load, calls := counter()
	ctx := context.Background()

	v, err := c.Get(ctx, load)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	clock.t = clock.t.Add(29 * time.Second)
	v, _ = c.Get(ctx, load)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, *calls)

	clock.t = clock.t.Add(time.Second)
	v, _ = c.Get(ctx, load)
	assert.Equal(t, 2, v)
}

func TestTTL_Invalidate(t *testing.T) {
	c := cache.NewTTL[int](time.Hour)
	load, calls := counter()
	ctx := context.Background()

	_, _ = c.Get(ctx, load)
	c.Invalidate()
	v, err := c.Get(ctx, load)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, *calls)
}

func TestTTL_ZeroDisables(t *testing.T) {
	c := cache.NewTTL[int](0)
	load, calls := counter()
	ctx := context.Background()

	_, _ = c.Get(ctx, load)
	_, _ = c.Get(ctx, load)
	assert.Equal(t, 2, *calls)
}

func TestTTL_ErrorsAreNotCached(t *testing.T) {
	c := cache.NewTTL[string](time.Hour)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := c.Get(ctx, func(context.Context) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	v, err := c.Get(ctx, func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestTTL_InvalidateDuringLoadDropsResult(t *testing.T) {
	c := cache.NewTTL[string](time.Hour)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)
	go func() {
		v, _ := c.Get(ctx, func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-started
	c.Invalidate()
	close(release)
	assert.Equal(t, "stale", <-done)

	v, err := c.Get(ctx, func(context.Context) (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}
