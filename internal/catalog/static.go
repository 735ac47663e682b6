package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoCatalog []byte

type catalogFile struct {
	Products   []domain.Product             `yaml:"products"`
	Promotions []domain.PromotionDefinition `yaml:"promotions"`
}

// StaticDirectory serves a catalog held in memory, usually decoded from YAML.
type StaticDirectory struct {
	products   []domain.Product
	index      map[string]int
	promotions []domain.PromotionDefinition
}

func NewStaticDirectory(products []domain.Product, promotions []domain.PromotionDefinition) *StaticDirectory {
	d := &StaticDirectory{
		products:   append([]domain.Product(nil), products...),
		index:      make(map[string]int, len(products)),
		promotions: make([]domain.PromotionDefinition, 0, len(promotions)),
	}
	for i, p := range d.products {
		d.index[p.ID] = i
	}
	for _, promo := range promotions {
		promo.Code = domain.NormalizeCode(promo.Code)
		d.promotions = append(d.promotions, promo)
	}
	return d
}

// LoadYAML decodes a catalog document with top-level "products" and
// "promotions" lists.
func LoadYAML(r io.Reader) (*StaticDirectory, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return NewStaticDirectory(file.Products, file.Promotions), nil
}

func LoadFile(path string) (*StaticDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	defer f.Close()
	return LoadYAML(f)
}

// Demo returns the catalog bundled with the binary.
func Demo() *StaticDirectory {
	d, err := LoadYAML(bytes.NewReader(demoCatalog))
	if err != nil {
		panic(err)
	}
	return d
}

func (d *StaticDirectory) GetProducts(context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), d.products...), nil
}

func (d *StaticDirectory) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	i, ok := d.index[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := d.products[i]
	return &p, nil
}

func (d *StaticDirectory) GetPromoCodes(context.Context) ([]domain.PromotionDefinition, error) {
	return append([]domain.PromotionDefinition(nil), d.promotions...), nil
}
