package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffamaxey/notebooker/internal/testutil"
)

func TestRedisRenderCache_SetAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewRedisRenderCache(client, 5*time.Minute)
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "job-1", []byte("<html>report</html>")))

		got, err := cache.Get(ctx, "job-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("<html>report</html>"), got)

		ttl := client.TTL(ctx, "notebooker:render:job-1").Val()
		assert.True(t, ttl > 0 && ttl <= 5*time.Minute)
	})

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := cache.Get(ctx, "job-unknown")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty job id rejected", func(t *testing.T) {
		_, err := cache.Get(ctx, "")
		require.Error(t, err)
		require.Error(t, cache.Set(ctx, "", nil))
	})
}
