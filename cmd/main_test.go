package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	env := &environment{out: &out, in: strings.NewReader(stdin)}
	err := newApp(env).Run(append([]string{"storefront"}, args...))
	return out.String(), err
}

// fileStorage points the session at a fresh document so invocations share
// state like successive page loads.
func fileStorage(t *testing.T) []string {
	t.Helper()
	return []string{"--storage", "file", "--storage-path", filepath.Join(t.TempDir(), "session.json")}
}

func TestProducts_ListsDemoCatalog(t *testing.T) {
	out, err := runApp(t, "", "--storage", "memory", "products")
	require.NoError(t, err)

	assert.Contains(t, out, "Robe Élégance")
	assert.Contains(t, out, "p6")
}

func TestProduct_Unknown(t *testing.T) {
	_, err := runApp(t, "", "--storage", "memory", "product", "nope")
	assert.ErrorContains(t, err, "unknown product")
}

func TestProduct_MissingArgument(t *testing.T) {
	_, err := runApp(t, "", "--storage", "memory", "product")
	assert.ErrorContains(t, err, "missing product id")
}

func TestCart_PersistsAcrossInvocations(t *testing.T) {
	storage := fileStorage(t)

	_, err := runApp(t, "", append(storage, "cart", "add", "--product", "p1", "--color", "Noir", "--size", "M", "--qty", "2")...)
	require.NoError(t, err)
	_, err = runApp(t, "", append(storage, "cart", "add", "--product", "p1", "--color", "Noir", "--size", "M")...)
	require.NoError(t, err)

	out, err := runApp(t, "", append(storage, "cart", "show")...)
	require.NoError(t, err)
	assert.Contains(t, out, "items: 3  total: 150.00")

	raw, err := os.ReadFile(storage[3])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "boutique:cart")
}

func TestCart_UpdateRemoveClear(t *testing.T) {
	storage := fileStorage(t)

	_, err := runApp(t, "", append(storage, "cart", "add", "-p", "p2", "--size", "L")...)
	require.NoError(t, err)
	_, err = runApp(t, "", append(storage, "cart", "add", "-p", "p6")...)
	require.NoError(t, err)

	out, err := runApp(t, "", append(storage, "cart", "update", "-p", "p2", "--size", "L", "-q", "0")...)
	require.NoError(t, err)
	assert.Contains(t, out, "items: 2  total: 234.00")

	out, err = runApp(t, "", append(storage, "cart", "remove", "-p", "p2", "--size", "L")...)
	require.NoError(t, err)
	assert.Contains(t, out, "items: 1  total: 45.00")

	out, err = runApp(t, "", append(storage, "cart", "clear")...)
	require.NoError(t, err)
	assert.Contains(t, out, "cart is empty")

	out, err = runApp(t, "", append(storage, "cart", "show")...)
	require.NoError(t, err)
	assert.Contains(t, out, "cart is empty")
}

func TestCart_AddUnknownProduct(t *testing.T) {
	_, err := runApp(t, "", append(fileStorage(t), "cart", "add", "--product", "zz")...)
	assert.ErrorContains(t, err, "unknown product")
}

func TestCart_AddRequiresProduct(t *testing.T) {
	_, err := runApp(t, "", append(fileStorage(t), "cart", "add")...)
	assert.Error(t, err)
}

func TestPromo_AppliesToRestoredCart(t *testing.T) {
	storage := fileStorage(t)
	_, err := runApp(t, "", append(storage, "cart", "add", "-p", "p1", "-q", "4")...)
	require.NoError(t, err)

	out, err := runApp(t, "", append(storage, "promo", " bienvenue10 ")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BIENVENUE10")
	assert.Contains(t, out, "total: 200.00  discount: 20.00  to pay: 180.00")
}

func TestPromo_RejectionIsNotAnError(t *testing.T) {
	out, err := runApp(t, "", append(fileStorage(t), "promo", "NOPE")...)
	require.NoError(t, err)
	assert.NotContains(t, out, "to pay")
}

func TestWishlist_ToggleAndShow(t *testing.T) {
	storage := fileStorage(t)

	out, err := runApp(t, "", append(storage, "wishlist", "toggle", "p3")...)
	require.NoError(t, err)
	assert.Contains(t, out, "p3 added to wishlist")

	out, err = runApp(t, "", append(storage, "wishlist", "show")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Sac Bandoulière")

	out, err = runApp(t, "", append(storage, "wishlist", "toggle", "p3")...)
	require.NoError(t, err)
	assert.Contains(t, out, "p3 removed from wishlist")

	out, err = runApp(t, "", append(storage, "wishlist", "show")...)
	require.NoError(t, err)
	assert.Contains(t, out, "wishlist is empty")
}

func TestUnknownCommand(t *testing.T) {
	_, err := runApp(t, "", "--storage", "memory", "checkout")
	assert.ErrorContains(t, err, `unknown command "checkout"`)
}

func TestUnknownBackendFlag(t *testing.T) {
	_, err := runApp(t, "", "--storage", "floppy", "products")
	assert.Error(t, err)
}

func TestCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - id: x1
    name: Ceinture Tressée
    price: 35
    stock: 3
`), 0o600))

	out, err := runApp(t, "", "--storage", "memory", "--catalog", path, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Ceinture Tressée")
	assert.NotContains(t, out, "Robe Élégance")
}

func TestCatalogDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	out, err := runApp(t, "", "--storage", "memory", "--catalog-db", db, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Veste en Cuir")
	assert.NotContains(t, out, "Foulard en Soie")
	assert.FileExists(t, db)
}
