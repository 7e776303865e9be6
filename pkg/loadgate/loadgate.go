// Package loadgate implements a timing policy for busy indicators.
//
// A naive indicator flashes twice on a fast operation: once when it appears
// for a few milliseconds, and again when it vanishes. The gate suppresses
// both edges. The indicator only appears if the action is still running after
// [Gate.Delay], and once shown it stays up for at least [Gate.MinVisible]
// before the stop callback fires.
//
// The gate knows nothing about rendering; it takes two callbacks and adds
// timing around them, which keeps it testable and independent of whatever the
// caller uses to draw.
package loadgate

import (
	"context"
	"sync"
	"time"
)

// Defaults tuned so that operations under half a second feel instant and
// anything slower gets an indicator that does not blink.
const (
	DefaultDelay      = 500 * time.Millisecond
	DefaultMinVisible = 300 * time.Millisecond
)

// Gate runs actions and decides whether, when, and for how long their busy
// indicator is visible.
//
// OnStart and OnStop form an exactly-once pair: OnStop fires if and only if
// OnStart fired, and never before MinVisible has elapsed since it. OnStart
// may be invoked from a timer goroutine; both callbacks must be quick and
// must not call back into the gate.
type Gate struct {
	// Delay is how long an action may run before OnStart fires. Zero or
	// negative shows the indicator immediately, before the action runs.
	Delay time.Duration

	// MinVisible is the minimum time between OnStart and OnStop. Zero
	// disables the trailing guarantee.
	MinVisible time.Duration

	OnStart func()
	OnStop  func()
}

// New returns a gate with the default timings.
func New(onStart, onStop func()) *Gate {
	return &Gate{
		Delay:      DefaultDelay,
		MinVisible: DefaultMinVisible,
		OnStart:    onStart,
		OnStop:     onStop,
	}
}

// Run executes action and manages the indicator around it.
//
// The action's error is returned unchanged; the gate adds no transformation
// to the action's outcome. If the indicator was shown, it is stopped before
// Run returns — also when the action fails or panics, so the caller never
// surfaces an error underneath a stuck indicator. Cancelling ctx during the
// trailing MinVisible wait cuts the wait short but still fires OnStop.
func (g *Gate) Run(ctx context.Context, action func(context.Context) error) error {
	var (
		mu      sync.Mutex
		settled bool
		shown   bool
		shownAt time.Time
	)

	// Runs on the timer goroutine. Holding the lock while calling OnStart
	// keeps it from interleaving with the settle path below, which is what
	// guarantees the exactly-once pairing.
	show := func() {
		mu.Lock()
		defer mu.Unlock()
		if settled {
			return
		}
		shown = true
		shownAt = time.Now()
		if g.OnStart != nil {
			g.OnStart()
		}
	}

	var delay *time.Timer
	if g.Delay <= 0 {
		show()
	} else {
		delay = time.AfterFunc(g.Delay, show)
	}

	defer func() {
		mu.Lock()
		settled = true
		wasShown := shown
		visible := time.Since(shownAt)
		mu.Unlock()

		// A finished action must never leave a delay timer armed; a stray
		// late OnStart would show an indicator nothing will ever stop.
		if delay != nil {
			delay.Stop()
		}
		if !wasShown {
			return
		}

		if remaining := g.MinVisible - visible; remaining > 0 {
			hold := time.NewTimer(remaining)
			select {
			case <-hold.C:
			case <-ctx.Done():
				hold.Stop()
			}
		}
		if g.OnStop != nil {
			g.OnStop()
		}
	}()

	return action(ctx)
}
