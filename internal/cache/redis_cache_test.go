package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheService_SetGetDelete(t *testing.T) {
	c := NewMemoryCacheService()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, c.Set(ctx, "key", payload{Name: "a", Count: 2}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "key", &got))
	assert.Equal(t, payload{Name: "a", Count: 2}, got)

	require.NoError(t, c.Delete(ctx, "key"))
	assert.ErrorIs(t, c.Get(ctx, "key", &got), ErrCacheMiss)
}

func TestMemoryCacheService_Expiry(t *testing.T) {
	c := NewMemoryCacheService()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", time.Nanosecond))
	time.Sleep(time.Millisecond)

	var got string
	assert.ErrorIs(t, c.Get(ctx, "key", &got), ErrCacheMiss)
}

func TestMemoryCacheService_MissOnUnknownKey(t *testing.T) {
	c := NewMemoryCacheService()

	var got string
	assert.ErrorIs(t, c.Get(context.Background(), "absent", &got), ErrCacheMiss)
}
