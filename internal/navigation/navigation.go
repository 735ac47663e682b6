// Package navigation holds the current view, page, selected entities and
// search query of a storefront session.
package navigation

import (
	"sync"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// MaxSearchQueryLength caps the search query in runes. Longer input is
// truncated, not rejected.
const MaxSearchQueryLength = 100

// State is the read side of navigation.
type State interface {
	CurrentView() domain.View
	CurrentPage() string
	SelectedProductID() string
	SelectedCategoryID() string
	SelectedOrderID() string
	SelectedCustomerID() string
	SearchQuery() string
	Selection() domain.NavigationSelection
	GetProduct(id string) (domain.Product, bool)
}

// Actions is the mutation side of navigation.
type Actions interface {
	SetCurrentView(view domain.View)
	Navigate(page string)
	OpenProduct(id string)
	SetSelectedProduct(id string)
	SetSelectedCategory(id string)
	SetSelectedOrder(id string)
	SetSelectedCustomer(id string)
	SetSearchQuery(query string)
}

// ProductLookup resolves product ids; a catalog.Snapshot satisfies it.
type ProductLookup interface {
	Product(id string) (domain.Product, bool)
}

// ScrollResetter is told to scroll back to the top whenever Navigate runs.
type ScrollResetter interface {
	ResetScroll()
}

// ScrollFunc adapts a function to ScrollResetter.
type ScrollFunc func()

func (f ScrollFunc) ResetScroll() {
	if f != nil {
		f()
	}
}

type Navigator struct {
	mu       sync.RWMutex
	sel      domain.NavigationSelection
	products ProductLookup
	scroll   ScrollResetter
	onChange func()
}

var (
	_ State   = (*Navigator)(nil)
	_ Actions = (*Navigator)(nil)
)

func New(products ProductLookup, scroll ScrollResetter) *Navigator {
	if scroll == nil {
		scroll = ScrollFunc(nil)
	}
	return &Navigator{
		sel: domain.NavigationSelection{
			CurrentView: domain.ViewStore,
			CurrentPage: domain.PageHome,
		},
		products: products,
		scroll:   scroll,
	}
}

// OnChange registers the listener called after every mutation.
func (n *Navigator) OnChange(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onChange = fn
}

func (n *Navigator) Selection() domain.NavigationSelection {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sel
}

func (n *Navigator) CurrentView() domain.View   { return n.Selection().CurrentView }
func (n *Navigator) CurrentPage() string        { return n.Selection().CurrentPage }
func (n *Navigator) SelectedProductID() string  { return n.Selection().SelectedProductID }
func (n *Navigator) SelectedCategoryID() string { return n.Selection().SelectedCategoryID }
func (n *Navigator) SelectedOrderID() string    { return n.Selection().SelectedOrderID }
func (n *Navigator) SelectedCustomerID() string { return n.Selection().SelectedCustomerID }
func (n *Navigator) SearchQuery() string        { return n.Selection().SearchQuery }

// GetProduct looks a product up in the catalog. Unknown ids report false.
func (n *Navigator) GetProduct(id string) (domain.Product, bool) {
	if n.products == nil {
		return domain.Product{}, false
	}
	return n.products.Product(id)
}

// SetCurrentView switches view and moves to that view's landing page.
func (n *Navigator) SetCurrentView(view domain.View) {
	n.update(func(sel *domain.NavigationSelection) {
		sel.CurrentView = view
		sel.CurrentPage = view.LandingPage()
	})
}

// Navigate changes page and resets the scroll position.
func (n *Navigator) Navigate(page string) {
	n.update(func(sel *domain.NavigationSelection) {
		sel.CurrentPage = page
	})
	n.scroll.ResetScroll()
}

// OpenProduct selects a product and shows its detail page.
func (n *Navigator) OpenProduct(id string) {
	n.update(func(sel *domain.NavigationSelection) {
		sel.SelectedProductID = id
		sel.CurrentPage = domain.PageProduct
	})
	n.scroll.ResetScroll()
}

func (n *Navigator) SetSelectedProduct(id string) {
	n.update(func(sel *domain.NavigationSelection) { sel.SelectedProductID = id })
}

func (n *Navigator) SetSelectedCategory(id string) {
	n.update(func(sel *domain.NavigationSelection) { sel.SelectedCategoryID = id })
}

func (n *Navigator) SetSelectedOrder(id string) {
	n.update(func(sel *domain.NavigationSelection) { sel.SelectedOrderID = id })
}

func (n *Navigator) SetSelectedCustomer(id string) {
	n.update(func(sel *domain.NavigationSelection) { sel.SelectedCustomerID = id })
}

func (n *Navigator) SetSearchQuery(query string) {
	if r := []rune(query); len(r) > MaxSearchQueryLength {
		query = string(r[:MaxSearchQueryLength])
	}
	n.update(func(sel *domain.NavigationSelection) { sel.SearchQuery = query })
}

func (n *Navigator) update(fn func(sel *domain.NavigationSelection)) {
	n.mu.Lock()
	fn(&n.sel)
	listener := n.onChange
	n.mu.Unlock()

	if listener != nil {
		listener()
	}
}
