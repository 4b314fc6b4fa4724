package maintenance_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantry-it/backend/internal/maintenance"
)

type countingOptimizer struct {
	calls int
	err   error
}

func (c *countingOptimizer) Optimize(context.Context) error {
	c.calls++
	return c.err
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	_, err := maintenance.NewScheduler("every tuesday", &countingOptimizer{}, discard)
	assert.ErrorContains(t, err, "every tuesday")
}

func TestScheduler_RunOnce(t *testing.T) {
	opt := &countingOptimizer{}
	s, err := maintenance.NewScheduler("@daily", opt, discard)
	require.NoError(t, err)

	s.RunOnce()
	assert.Equal(t, 1, opt.calls)

	opt.err = errors.New("locked")
	s.RunOnce()
	assert.Equal(t, 2, opt.calls)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := maintenance.NewScheduler("@hourly", &countingOptimizer{}, discard)
	require.NoError(t, err)

	s.Start()
	next := s.NextRun()
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Before(time.Now().Add(time.Hour+time.Minute)))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
