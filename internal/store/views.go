package store

import (
	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/navigation"
	"github.com/fjod/go_cart/storefront/internal/ui"
)

type NavigationView interface {
	navigation.State
	navigation.Actions
}

type UIView interface {
	ui.State
	ui.Actions
}

// LegacyView exposes every slice through one value for consumers that have
// not moved to the narrow views.
type LegacyView interface {
	cart.State
	cart.Actions
	NavigationView
	UIView
	Phase() Phase
}

// cartActions hides the state methods of the cart so an actions-only
// consumer cannot reach them.
type cartActions struct {
	c *cart.Cart
}

func (a cartActions) AddToCart(item domain.CartLineItem) { a.c.AddToCart(item) }

func (a cartActions) RemoveFromCart(productID, color, size string) {
	a.c.RemoveFromCart(productID, color, size)
}

func (a cartActions) UpdateCartQuantity(productID string, quantity int, color, size string) {
	a.c.UpdateCartQuantity(productID, quantity, color, size)
}

func (a cartActions) ClearCart() { a.c.ClearCart() }

func (a cartActions) ApplyPromoCode(code string) cart.PromoResult { return a.c.ApplyPromoCode(code) }

type cartState struct {
	c *cart.Cart
}

func (s cartState) Items() []domain.CartLineItem           { return s.c.Items() }
func (s cartState) CartTotal() float64                     { return s.c.CartTotal() }
func (s cartState) CartCount() int                         { return s.c.CartCount() }
func (s cartState) AppliedPromo() *domain.AppliedPromotion { return s.c.AppliedPromo() }
func (s cartState) PromoDiscount() float64                 { return s.c.PromoDiscount() }

type legacyView struct {
	cart.State
	cart.Actions
	NavigationView
	UIView
	store *Store
}

func (v legacyView) Phase() Phase { return v.store.Phase() }

// CartState is the read-only cart view.
func (s *Store) CartState() cart.State { return cartState{c: s.cart} }

// CartActions is the mutation-only cart view.
func (s *Store) CartActions() cart.Actions { return cartActions{c: s.cart} }

func (s *Store) Navigation() NavigationView { return s.nav }

func (s *Store) UI() UIView { return s.ui }

func (s *Store) Legacy() LegacyView {
	return legacyView{
		State:          s.CartState(),
		Actions:        s.CartActions(),
		NavigationView: s.nav,
		UIView:         s.ui,
		store:          s,
	}
}
