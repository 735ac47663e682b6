package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisMedium on it
func setupTestRedis(t *testing.T) (*RedisMedium, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	medium := NewRedisMedium(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return medium, mr, cleanup
}

func TestRedisMedium_GetMissing(t *testing.T) {
	medium, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, found, err := medium.Get(context.Background(), "boutique:cart")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisMedium_SetWithoutTTL(t *testing.T) {
	medium, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := medium.Set(context.Background(), "boutique:cart", `[]`)
	require.NoError(t, err)

	stored, err := mr.Get("boutique:cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, stored)
	assert.Zero(t, mr.TTL("boutique:cart"))
}

func TestRedisMedium_ThroughAdapter(t *testing.T) {
	medium, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	adapter := NewAdapter(medium, "", nil)
	ctx := context.Background()

	require.NoError(t, mr.Set("boutique:cart", "[{broken"))
	assert.Empty(t, Load[domain.CartLineItem](ctx, adapter, CartKey))

	adapter.Save(ctx, CartKey, []domain.CartLineItem{{ProductID: "p1", Price: 50, Quantity: 2}})
	items := Load[domain.CartLineItem](ctx, adapter, CartKey)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRedisMedium_BreakerOpensAfterFailures(t *testing.T) {
	medium, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	mr.Close()

	for i := 0; i < BreakerFailures; i++ {
		assert.Error(t, medium.Set(ctx, "boutique:cart", `[]`))
	}
	assert.Equal(t, gobreaker.StateOpen, medium.State())

	err := medium.Set(ctx, "boutique:cart", `[]`)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	adapter := NewAdapter(medium, "", nil)
	assert.Empty(t, Load[domain.CartLineItem](ctx, adapter, CartKey))
}
