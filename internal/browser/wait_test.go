package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitUntil_ImmediateSuccess(t *testing.T) {
	calls := 0
	err := WaitUntil(context.Background(), time.Second, "ready", func(ctx context.Context) (bool, error) {
		calls++
		return true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWaitUntil_EventualSuccess(t *testing.T) {
	calls := 0
	err := WaitUntil(context.Background(), time.Second, "third poll", func(ctx context.Context) (bool, error) {
		calls++
		if calls < 3 {
			return false, ErrNotFound
		}
		return true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitUntil_Timeout(t *testing.T) {
	start := time.Now()
	err := WaitUntil(context.Background(), 120*time.Millisecond, "never", func(ctx context.Context) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "never")
	assert.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitUntil_ZeroTimeoutEvaluatesOnce(t *testing.T) {
	calls := 0
	err := WaitUntil(context.Background(), 0, "once", func(ctx context.Context) (bool, error) {
		calls++
		return false, nil
	})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, calls)
}

func TestWaitUntil_PropagatesConditionError(t *testing.T) {
	boom := errors.New("detached")
	err := WaitUntil(context.Background(), time.Second, "x", func(ctx context.Context) (bool, error) {
		return false, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestWaitUntil_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitUntil(ctx, time.Second, "x", func(ctx context.Context) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestSelector_CSS(t *testing.T) {
	tests := []struct {
		sel  Selector
		want string
	}{
		{ByID("inventory_container"), `[id="inventory_container"]`},
		{ByID("add-to-cart-test.allthethings()-t-shirt-(red)"), `[id="add-to-cart-test.allthethings()-t-shirt-(red)"]`},
		{ByClass("shopping_cart_badge"), ".shopping_cart_badge"},
		{ByClass("error-message-container error"), ".error-message-container.error"},
		{ByName("user-name"), `[name="user-name"]`},
		{ByCSS("div > span"), "div > span"},
	}

	for _, tt := range tests {
		t.Run(tt.sel.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.CSS())
		})
	}
}
