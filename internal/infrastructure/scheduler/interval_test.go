package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIntervalSchedulerRunsImmediatelyAndRepeats(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	s := NewIntervalScheduler(10 * time.Millisecond)

	require.NoError(t, s.Start(context.Background(), func(time.Time) { runs.Add(1) }))
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Stop(context.Background()))
	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, stopped, runs.Load())
}

func TestIntervalSchedulerStopsOnContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	s := NewIntervalScheduler(time.Hour)

	require.NoError(t, s.Start(ctx, func(time.Time) { runs.Add(1) }))
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, s.Stop(context.Background()))
}

func TestIntervalSchedulerDefaults(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(0)
	require.Equal(t, time.Hour, s.interval)
	require.NoError(t, s.Start(context.Background(), nil))
	require.NoError(t, s.Stop(context.Background()))
}
