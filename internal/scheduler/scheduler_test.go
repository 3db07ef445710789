package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	calls     atomic.Int32
	retention atomic.Int64
	err       error
}

func (f *fakePurger) PurgeCompleted(ctx context.Context, olderThan time.Duration) (int64, error) {
	f.calls.Add(1)
	f.retention.Store(int64(olderThan))
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("expected deadline on purge context")
	}
	return 2, f.err
}

func TestRunOnce(t *testing.T) {
	p := &fakePurger{}
	s, err := New(Config{Purger: p, Retention: 48 * time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.EqualValues(t, 1, p.calls.Load())
	assert.Equal(t, int64(48*time.Hour), p.retention.Load())
}

func TestRunOnce_Error(t *testing.T) {
	p := &fakePurger{err: errors.New("locked")}
	s, err := New(Config{Purger: p, Retention: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	_, err = s.RunOnce(context.Background())
	assert.EqualError(t, err, "locked")
}

func TestStart_Disabled(t *testing.T) {
	p := &fakePurger{}
	s, err := New(Config{Purger: p})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	assert.False(t, s.Enabled())
	require.NoError(t, s.Start(context.Background()))
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, p.calls.Load())
}

func TestStart_RunsImmediately(t *testing.T) {
	p := &fakePurger{}
	s, err := New(Config{Purger: p, Retention: time.Hour, Interval: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return p.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
