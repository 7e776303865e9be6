package loadgate_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noteflow/noteflow.go/pkg/loadgate"
)

// gates in tests use wide margins so slow CI machines cannot flip outcomes.

func TestFastActionShowsNothing(t *testing.T) {
	var starts, stops atomic.Int32
	g := &loadgate.Gate{
		Delay:      200 * time.Millisecond,
		MinVisible: 100 * time.Millisecond,
		OnStart:    func() { starts.Add(1) },
		OnStop:     func() { stops.Add(1) },
	}

	err := g.Run(context.Background(), func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	// The delay timer must be dead; a stray late OnStart would fire by now.
	time.Sleep(300 * time.Millisecond)
	require.Zero(t, starts.Load())
	require.Zero(t, stops.Load())
}

func TestSlowActionShowsExactlyOnce(t *testing.T) {
	var starts, stops atomic.Int32
	var startedAt, stoppedAt atomic.Int64
	g := &loadgate.Gate{
		Delay:      50 * time.Millisecond,
		MinVisible: 100 * time.Millisecond,
		OnStart: func() {
			starts.Add(1)
			startedAt.Store(time.Now().UnixNano())
		},
		OnStop: func() {
			stops.Add(1)
			stoppedAt.Store(time.Now().UnixNano())
		},
	}

	err := g.Run(context.Background(), func(ctx context.Context) error {
		time.Sleep(250 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, int32(1), starts.Load())
	require.Equal(t, int32(1), stops.Load())

	visible := time.Duration(stoppedAt.Load() - startedAt.Load())
	require.GreaterOrEqual(t, visible, g.MinVisible)
}

func TestMinVisibleHoldsTheStop(t *testing.T) {
	var stops atomic.Int32
	g := &loadgate.Gate{
		Delay:      20 * time.Millisecond,
		MinVisible: 300 * time.Millisecond,
		OnStart:    func() {},
		OnStop:     func() { stops.Add(1) },
	}

	begun := time.Now()
	// Runs just past the delay, so nearly all of MinVisible remains.
	err := g.Run(context.Background(), func(ctx context.Context) error {
		time.Sleep(60 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, int32(1), stops.Load())
	require.GreaterOrEqual(t, time.Since(begun), g.Delay+g.MinVisible)
}

func TestFailureStillStops(t *testing.T) {
	boom := errors.New("boom")
	var starts, stops atomic.Int32
	g := &loadgate.Gate{
		Delay:      30 * time.Millisecond,
		MinVisible: 0,
		OnStart:    func() { starts.Add(1) },
		OnStop:     func() { stops.Add(1) },
	}

	err := g.Run(context.Background(), func(ctx context.Context) error {
		time.Sleep(120 * time.Millisecond)
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, int32(1), starts.Load())
	require.Equal(t, int32(1), stops.Load())
}

func TestErrorPassesThroughWithoutCallbacks(t *testing.T) {
	boom := errors.New("boom")
	var starts atomic.Int32
	g := &loadgate.Gate{
		Delay:   200 * time.Millisecond,
		OnStart: func() { starts.Add(1) },
		OnStop:  func() {},
	}

	err := g.Run(context.Background(), func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Zero(t, starts.Load())
}

func TestZeroDelayShowsBeforeTheAction(t *testing.T) {
	var starts atomic.Int32
	var visibleDuringAction bool
	g := &loadgate.Gate{
		Delay:      0,
		MinVisible: 0,
		OnStart:    func() { starts.Add(1) },
		OnStop:     func() {},
	}

	err := g.Run(context.Background(), func(ctx context.Context) error {
		visibleDuringAction = starts.Load() == 1
		return nil
	})
	require.NoError(t, err)
	require.True(t, visibleDuringAction)
}

func TestContextCancelCutsTrailingWaitShort(t *testing.T) {
	var stops atomic.Int32
	g := &loadgate.Gate{
		Delay:      10 * time.Millisecond,
		MinVisible: 5 * time.Second,
		OnStart:    func() {},
		OnStop:     func() { stops.Add(1) },
	}

	ctx, cancel := context.WithCancel(context.Background())
	begun := time.Now()
	err := g.Run(ctx, func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		cancel()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int32(1), stops.Load())
	require.Less(t, time.Since(begun), 2*time.Second)
}

func TestDefaults(t *testing.T) {
	g := loadgate.New(func() {}, func() {})
	require.Equal(t, loadgate.DefaultDelay, g.Delay)
	require.Equal(t, loadgate.DefaultMinVisible, g.MinVisible)
}
