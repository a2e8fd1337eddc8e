package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTimeout(t *testing.T) {
	t.Run("no deadline uses the action timeout", func(t *testing.T) {
		got := actionTimeout(context.Background())

		require.NotNil(t, got)
		assert.Equal(t, float64(ActionTimeout.Milliseconds()), *got)
	})

	t.Run("short deadline caps the wait", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		got := actionTimeout(ctx)

		require.NotNil(t, got)
		assert.LessOrEqual(t, *got, 500.0)
		assert.Greater(t, *got, 0.0)
	})

	t.Run("expired deadline never means unlimited", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		got := actionTimeout(ctx)

		require.NotNil(t, got)
		assert.Equal(t, 1.0, *got)
	})

	t.Run("long deadline keeps the action timeout", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		got := actionTimeout(ctx)

		require.NotNil(t, got)
		assert.Equal(t, float64(ActionTimeout.Milliseconds()), *got)
	})
}
