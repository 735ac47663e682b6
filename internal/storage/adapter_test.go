package storage

import (
	"context"
	"math"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdapter(t *testing.T) (*Adapter, *MemoryMedium) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	medium := NewMemoryMedium()
	return NewAdapter(medium, "", logrus.NewEntry(logger)), medium
}

func TestLoad_MissingKey(t *testing.T) {
	adapter, _ := setupAdapter(t)

	items := Load[domain.CartLineItem](context.Background(), adapter, CartKey)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoad_MalformedJSON(t *testing.T) {
	adapter, medium := setupAdapter(t)
	medium.Put("boutique:cart", "{not json")

	items := Load[domain.CartLineItem](context.Background(), adapter, CartKey)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoad_NotAnArray(t *testing.T) {
	adapter, medium := setupAdapter(t)

	for _, raw := range []string{`{"productId":"p1"}`, `"p1"`, `42`, `null`} {
		medium.Put("boutique:wishlist", raw)
		entries := Load[domain.WishlistEntry](context.Background(), adapter, WishlistKey)
		require.NotNil(t, entries, raw)
		assert.Empty(t, entries, raw)
	}
}

func TestLoad_MediumError(t *testing.T) {
	adapter, medium := setupAdapter(t)
	medium.Put("boutique:cart", `[{"productId":"p1","quantity":1}]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := Load[domain.CartLineItem](ctx, adapter, CartKey)
	assert.Empty(t, items)
}

func TestSave_WritesUnderPrefixedKey(t *testing.T) {
	adapter, medium := setupAdapter(t)
	ctx := context.Background()

	adapter.Save(ctx, CartKey, []domain.CartLineItem{
		{ProductID: "p1", Name: "Robe", Price: 50, Quantity: 2, Color: "Noir"},
	})

	raw, ok := medium.Raw("boutique:cart")
	require.True(t, ok)
	assert.JSONEq(t, `[{"productId":"p1","name":"Robe","price":50,"image":"","quantity":2,"color":"Noir"}]`, raw)

	items := Load[domain.CartLineItem](ctx, adapter, CartKey)
	require.Len(t, items, 1)
	assert.Equal(t, "Noir", items[0].Color)
	assert.Equal(t, "", items[0].Size)
}

func TestSave_CustomPrefix(t *testing.T) {
	medium := NewMemoryMedium()
	adapter := NewAdapter(medium, "lumiere", nil)

	adapter.Save(context.Background(), WishlistKey, []domain.WishlistEntry{{ProductID: "p9"}})

	_, ok := medium.Raw("lumiere:wishlist")
	assert.True(t, ok)
	_, ok = medium.Raw("boutique:wishlist")
	assert.False(t, ok)
}

func TestSave_FailuresAreSwallowed(t *testing.T) {
	adapter, medium := setupAdapter(t)
	medium.FailWrites(ErrQuotaExceeded)

	assert.NotPanics(t, func() {
		adapter.Save(context.Background(), CartKey, []domain.CartLineItem{{ProductID: "p1", Quantity: 1}})
	})
	assert.Equal(t, 0, medium.Writes())

	_, ok := medium.Raw("boutique:cart")
	assert.False(t, ok)
}

func TestSave_UnencodableValueIsDropped(t *testing.T) {
	adapter, medium := setupAdapter(t)

	adapter.Save(context.Background(), CartKey, []float64{math.Inf(1)})

	assert.Equal(t, 0, medium.Writes())
}
