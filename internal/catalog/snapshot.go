package catalog

import (
	"context"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// Snapshot is a session-long copy of a Directory. It is filled once and never
// refreshed: catalog or promotion changes after Load are not observed.
type Snapshot struct {
	dir Directory
	sfg singleflight.Group

	mu         sync.RWMutex
	loaded     bool
	products   []domain.Product
	index      map[string]int
	promotions []domain.PromotionDefinition
}

func NewSnapshot(dir Directory) *Snapshot {
	return &Snapshot{
		dir:   dir,
		index: make(map[string]int),
	}
}

// Load reads products and promo codes from the directory. Concurrent callers
// share a single read; once a read succeeded further calls are no-ops.
func (s *Snapshot) Load(ctx context.Context) error {
	if s.Loaded() {
		return nil
	}

	_, err, _ := s.sfg.Do("snapshot", func() (interface{}, error) {
		if s.Loaded() {
			return nil, nil
		}

		products, err := s.dir.GetProducts(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "snapshot products")
		}
		promotions, err := s.dir.GetPromoCodes(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "snapshot promo codes")
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.products = products
		s.promotions = promotions
		for i, p := range products {
			s.index[p.ID] = i
		}
		s.loaded = true
		return nil, nil
	})
	return err
}

func (s *Snapshot) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Snapshot) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// Product looks a product up by id. Unknown ids report false.
func (s *Snapshot) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *Snapshot) PromoCodes() []domain.PromotionDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PromotionDefinition(nil), s.promotions...)
}
