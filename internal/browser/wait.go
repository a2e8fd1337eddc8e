package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PollInterval is how often WaitUntil re-evaluates its condition
const PollInterval = 50 * time.Millisecond

// Condition reports whether the awaited state has been reached.
// Returning ErrNotFound means "not yet"; any other error aborts the wait.
type Condition func(ctx context.Context) (bool, error)

// WaitUntil evaluates cond until it holds or timeout elapses. The condition
// is always evaluated at least once. On expiry the error wraps ErrTimeout;
// cancellation of ctx itself is returned as is.
func WaitUntil(ctx context.Context, timeout time.Duration, what string, cond Condition) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		ok, err := cond(waitCtx)
		switch {
		case err == nil && ok:
			return nil
		case err == nil, errors.Is(err, ErrNotFound):
		case waitCtx.Err() != nil:
			// the driver call was cut short by the deadline
		default:
			return err
		}

		select {
		case <-waitCtx.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			return fmt.Errorf("%w after %s waiting for %s", ErrTimeout, timeout, what)
		case <-ticker.C:
		}
	}
}

// WaitFor waits until sel matches and returns the first match
func WaitFor(ctx context.Context, f Finder, sel Selector, timeout time.Duration) (Element, error) {
	var found Element
	err := WaitUntil(ctx, timeout, sel.String(), func(ctx context.Context) (bool, error) {
		el, err := f.Find(ctx, sel)
		if err != nil {
			return false, err
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// WaitEnabled waits until el accepts input
func WaitEnabled(ctx context.Context, el Element, what string, timeout time.Duration) error {
	return WaitUntil(ctx, timeout, what+" enabled", el.IsEnabled)
}

// WaitVisible waits until el is rendered and visible
func WaitVisible(ctx context.Context, el Element, what string, timeout time.Duration) error {
	return WaitUntil(ctx, timeout, what+" visible", el.IsVisible)
}

// WaitAttribute waits until el's attribute equals want
func WaitAttribute(ctx context.Context, el Element, name, want string, timeout time.Duration) error {
	what := fmt.Sprintf("%s=%q", name, want)
	return WaitUntil(ctx, timeout, what, func(ctx context.Context) (bool, error) {
		got, err := el.Attribute(ctx, name)
		if err != nil {
			return false, err
		}
		return got == want, nil
	})
}
