package cart

import (
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// State is the read side of the cart.
type State interface {
	Items() []domain.CartLineItem
	CartTotal() float64
	CartCount() int
	AppliedPromo() *domain.AppliedPromotion
	PromoDiscount() float64
}

// Actions is the mutation side of the cart. Holding only Actions does not
// subscribe a consumer to cart changes.
type Actions interface {
	AddToCart(item domain.CartLineItem)
	RemoveFromCart(productID, color, size string)
	UpdateCartQuantity(productID string, quantity int, color, size string)
	ClearCart()
	ApplyPromoCode(code string) PromoResult
}

// Change tells a listener what part of the cart moved.
type Change int

const (
	// ItemsChanged covers any change to the line items, including ClearCart
	// which also drops the applied promotion.
	ItemsChanged Change = iota
	PromoChanged
)

type Option func(*Cart)

// WithClock replaces time.Now for promotion expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) { c.now = now }
}

func WithPromotions(promotions []domain.PromotionDefinition) Option {
	return func(c *Cart) { c.promotions = promotions }
}

// Cart owns the line items and the applied promotion.
type Cart struct {
	mu         sync.RWMutex
	items      []domain.CartLineItem
	promo      *domain.AppliedPromotion
	promotions []domain.PromotionDefinition
	now        func() time.Time
	onChange   func(Change)
}

var (
	_ State   = (*Cart)(nil)
	_ Actions = (*Cart)(nil)
)

func New(opts ...Option) *Cart {
	c := &Cart{
		items: []domain.CartLineItem{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers the single listener called after every effective
// mutation. It runs outside the cart lock.
func (c *Cart) OnChange(fn func(Change)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// SetPromotions replaces the promotion definitions codes are checked against.
func (c *Cart) SetPromotions(promotions []domain.PromotionDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.promotions = append([]domain.PromotionDefinition(nil), promotions...)
}

// Restore seeds the cart from stored items without notifying the listener.
// Stored lines sharing an identity are merged and quantities below one are
// raised to one.
func (c *Cart) Restore(items []domain.CartLineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []domain.CartLineItem{}
	for _, item := range items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		c.add(item)
	}
}

func (c *Cart) Items() []domain.CartLineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.CartLineItem{}, c.items...)
}

// CartTotal is recomputed from the line items on every call.
func (c *Cart) CartTotal() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total()
}

func (c *Cart) CartCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) AppliedPromo() *domain.AppliedPromotion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.promo == nil {
		return nil
	}
	p := *c.promo
	return &p
}

func (c *Cart) PromoDiscount() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.promo == nil {
		return 0
	}
	return c.promo.Discount
}

// AddToCart merges the item into an existing line with the same identity or
// appends it. There is no upper bound on quantity.
func (c *Cart) AddToCart(item domain.CartLineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	c.mu.Lock()
	c.add(item)
	c.mu.Unlock()
	c.notify(ItemsChanged)
}

func (c *Cart) add(item domain.CartLineItem) {
	if i := c.indexOf(item.Key()); i >= 0 {
		c.items[i].Quantity += item.Quantity
		return
	}
	c.items = append(c.items, item)
}

// RemoveFromCart drops the line with the given identity. Unknown lines are
// ignored.
func (c *Cart) RemoveFromCart(productID, color, size string) {
	key := domain.LineKey{ProductID: productID, Color: color, Size: size}

	c.mu.Lock()
	i := c.indexOf(key)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	c.mu.Unlock()

	c.notify(ItemsChanged)
}

// UpdateCartQuantity sets the quantity of a line, flooring it at one.
func (c *Cart) UpdateCartQuantity(productID string, quantity int, color, size string) {
	key := domain.LineKey{ProductID: productID, Color: color, Size: size}

	c.mu.Lock()
	i := c.indexOf(key)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.items[i].Quantity = max(1, quantity)
	c.mu.Unlock()

	c.notify(ItemsChanged)
}

// ClearCart empties the cart and drops the applied promotion with it.
func (c *Cart) ClearCart() {
	c.mu.Lock()
	c.items = []domain.CartLineItem{}
	c.promo = nil
	c.mu.Unlock()

	c.notify(ItemsChanged)
}

// ApplyPromoCode checks code against the current total and, on success,
// replaces whatever promotion was applied before. The discount is fixed at
// this point and does not follow later cart changes.
func (c *Cart) ApplyPromoCode(code string) PromoResult {
	c.mu.Lock()
	result := EvaluatePromo(code, c.total(), c.promotions, c.now())
	if !result.Success {
		c.mu.Unlock()
		return result
	}
	c.promo = &domain.AppliedPromotion{
		Code:     domain.NormalizeCode(code),
		Discount: result.Discount,
	}
	c.mu.Unlock()

	c.notify(PromoChanged)
	return result
}

func (c *Cart) total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

func (c *Cart) indexOf(key domain.LineKey) int {
	for i, item := range c.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

func (c *Cart) notify(change Change) {
	c.mu.RLock()
	fn := c.onChange
	c.mu.RUnlock()
	if fn != nil {
		fn(change)
	}
}
