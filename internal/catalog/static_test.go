package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_Loads(t *testing.T) {
	dir := Demo()
	ctx := context.Background()

	products, err := dir.GetProducts(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, products)

	promos, err := dir.GetPromoCodes(ctx)
	require.NoError(t, err)

	byCode := make(map[string]domain.PromotionDefinition)
	for _, p := range promos {
		byCode[p.Code] = p
	}
	welcome, ok := byCode["BIENVENUE10"]
	require.True(t, ok)
	assert.Equal(t, domain.PromotionPercentage, welcome.Type)
	assert.Equal(t, 10.0, welcome.Value)
	assert.Nil(t, welcome.MinAmount)
	assert.Equal(t, 2030, welcome.EndDate.Year())

	vip := byCode["VIP30"]
	require.NotNil(t, vip.MinAmount)
	assert.Equal(t, 200.0, *vip.MinAmount)
	assert.False(t, byCode["SOLDES50"].Active)
}

func TestStaticDirectory_GetProduct(t *testing.T) {
	dir := Demo()

	p, err := dir.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Robe Élégance", p.Name)
	assert.Contains(t, p.Colors, "Noir")

	_, err = dir.GetProduct(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLoadYAML_NormalizesCodes(t *testing.T) {
	doc := `
promotions:
  - code: "  noel5 "
    type: fixed
    value: 5
    maxUses: 10
    active: true
`
	dir, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)

	promos, _ := dir.GetPromoCodes(context.Background())
	require.Len(t, promos, 1)
	assert.Equal(t, "NOEL5", promos[0].Code)
	assert.True(t, promos[0].EndDate.IsZero())
}

func TestLoadYAML_UnknownField(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("products:\n  - id: p1\n    colour: red\n"))
	assert.ErrorContains(t, err, "decode catalog")
}

func TestLoadYAML_Empty(t *testing.T) {
	dir, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)

	products, _ := dir.GetProducts(context.Background())
	assert.Empty(t, products)
}

func TestStaticDirectory_ReturnsCopies(t *testing.T) {
	dir := NewStaticDirectory([]domain.Product{{ID: "p1", Name: "A"}}, nil)

	products, _ := dir.GetProducts(context.Background())
	products[0].Name = "changed"

	p, err := dir.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)
}
