package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter_GetSet(t *testing.T) {
	adapter := NewMemoryAdapter()
	defer adapter.Close()

	ctx := context.Background()

	err := adapter.Set(ctx, "test_key", []byte("test_value"), 10*time.Second)
	require.NoError(t, err)

	value, err := adapter.Get(ctx, "test_key")
	require.NoError(t, err)
	assert.Equal(t, []byte("test_value"), value)
}

func TestMemoryAdapter_GetNotFound(t *testing.T) {
	adapter := NewMemoryAdapter()
	defer adapter.Close()

	_, err := adapter.Get(context.Background(), "non_existent_key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key not found")
}

func TestMemoryAdapter_Expiration(t *testing.T) {
	adapter := NewMemoryAdapter()
	defer adapter.Close()

	ctx := context.Background()

	err := adapter.Set(ctx, "expiring", []byte("v"), time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = adapter.Get(ctx, "expiring")
	assert.Error(t, err)
}

func TestMemoryAdapter_Delete(t *testing.T) {
	adapter := NewMemoryAdapter()
	defer adapter.Close()

	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, adapter.Delete(ctx, "k"))

	_, err := adapter.Get(ctx, "k")
	assert.Error(t, err)
}

func TestMemoryAdapter_Ping(t *testing.T) {
	adapter := NewMemoryAdapter()
	assert.NoError(t, adapter.Ping(context.Background()))
}
