package ui

import (
	"slices"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// MaxCompare is how many products can be compared side by side.
const MaxCompare = 4

// State is the read side of the UI flags.
type State interface {
	DarkMode() bool
	IsInWishlist(productID string) bool
	Wishlist() []domain.WishlistEntry
	IsInCompare(productID string) bool
	CompareList() []string
	NewsletterSubscribed() bool
}

// Actions is the mutation side of the UI flags. The newsletter flag only
// ever goes from false to true.
type Actions interface {
	ToggleDarkMode()
	ToggleWishlist(productID string) bool
	ToggleCompare(productID string) bool
	ClearCompare()
	SubscribeNewsletter()
}

type Change int

const (
	FlagsChanged Change = iota
	WishlistChanged
)

type UI struct {
	mu         sync.RWMutex
	darkMode   bool
	wishlist   []string
	compare    []string
	newsletter bool
	onChange   func(Change)
}

var (
	_ State   = (*UI)(nil)
	_ Actions = (*UI)(nil)
)

func New() *UI {
	return &UI{
		wishlist: []string{},
		compare:  []string{},
	}
}

// OnChange registers the listener called after every effective mutation.
func (u *UI) OnChange(fn func(Change)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.onChange = fn
}

// RestoreWishlist seeds the wishlist from storage without notifying the
// listener. Duplicate and empty ids are dropped.
func (u *UI) RestoreWishlist(entries []domain.WishlistEntry) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.wishlist = []string{}
	for _, e := range entries {
		if e.ProductID != "" && !slices.Contains(u.wishlist, e.ProductID) {
			u.wishlist = append(u.wishlist, e.ProductID)
		}
	}
}

func (u *UI) DarkMode() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.darkMode
}

func (u *UI) IsInWishlist(productID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Contains(u.wishlist, productID)
}

// Wishlist returns the entries in the order they were added.
func (u *UI) Wishlist() []domain.WishlistEntry {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]domain.WishlistEntry, 0, len(u.wishlist))
	for _, id := range u.wishlist {
		out = append(out, domain.WishlistEntry{ProductID: id})
	}
	return out
}

func (u *UI) IsInCompare(productID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Contains(u.compare, productID)
}

func (u *UI) CompareList() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.compare)
}

func (u *UI) NewsletterSubscribed() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.newsletter
}

func (u *UI) ToggleDarkMode() {
	u.mu.Lock()
	u.darkMode = !u.darkMode
	u.mu.Unlock()
	u.notify(FlagsChanged)
}

// ToggleWishlist adds or removes the product and reports whether it is now
// in the wishlist.
func (u *UI) ToggleWishlist(productID string) bool {
	u.mu.Lock()
	var in bool
	if i := slices.Index(u.wishlist, productID); i >= 0 {
		u.wishlist = slices.Delete(u.wishlist, i, i+1)
	} else {
		u.wishlist = append(u.wishlist, productID)
		in = true
	}
	u.mu.Unlock()

	u.notify(WishlistChanged)
	return in
}

// ToggleCompare adds or removes the product from the comparison and reports
// whether it is now compared. Adding to a full comparison does nothing.
func (u *UI) ToggleCompare(productID string) bool {
	u.mu.Lock()
	if i := slices.Index(u.compare, productID); i >= 0 {
		u.compare = slices.Delete(u.compare, i, i+1)
		u.mu.Unlock()
		u.notify(FlagsChanged)
		return false
	}
	if len(u.compare) >= MaxCompare {
		u.mu.Unlock()
		return false
	}
	u.compare = append(u.compare, productID)
	u.mu.Unlock()

	u.notify(FlagsChanged)
	return true
}

func (u *UI) ClearCompare() {
	u.mu.Lock()
	if len(u.compare) == 0 {
		u.mu.Unlock()
		return
	}
	u.compare = []string{}
	u.mu.Unlock()
	u.notify(FlagsChanged)
}

// SubscribeNewsletter sets the one-way subscribed flag.
func (u *UI) SubscribeNewsletter() {
	u.mu.Lock()
	if u.newsletter {
		u.mu.Unlock()
		return
	}
	u.newsletter = true
	u.mu.Unlock()
	u.notify(FlagsChanged)
}

func (u *UI) notify(change Change) {
	u.mu.RLock()
	fn := u.onChange
	u.mu.RUnlock()
	if fn != nil {
		fn(change)
	}
}
