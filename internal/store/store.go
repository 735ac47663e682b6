// Package store is the composition root of a storefront session. It owns one
// instance of every state slice, restores cart and wishlist from durable
// storage once, persists them afterwards and publishes change notifications
// per slice.
package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/navigation"
	"github.com/fjod/go_cart/storefront/internal/storage"
	"github.com/fjod/go_cart/storefront/internal/ui"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Phase is the restore lifecycle of a Store.
type Phase int32

const (
	// PhaseRestoring holds until the storage read finished. Nothing is
	// written to storage in this phase.
	PhaseRestoring Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "restoring"
}

// writeTimeout bounds a single persistence write.
const writeTimeout = time.Second

var ErrAlreadyMounted = errors.New("store already mounted")

type Option func(*options)

type options struct {
	log    *logrus.Entry
	now    func() time.Time
	scroll navigation.ScrollResetter
}

func WithLogger(log *logrus.Entry) Option {
	return func(o *options) { o.log = log }
}

// WithClock sets the clock promotions are checked against.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithScrollResetter(scroll navigation.ScrollResetter) Option {
	return func(o *options) { o.scroll = scroll }
}

type Store struct {
	id      string
	log     *logrus.Entry
	adapter *storage.Adapter
	catalog *catalog.Snapshot

	cart *cart.Cart
	nav  *navigation.Navigator
	ui   *ui.UI
	bus  *broadcaster

	mounted atomic.Bool

	mu            sync.Mutex
	phase         Phase
	cartDirty     bool
	wishlistDirty bool

	// serializes writes so the last write always carries the latest state
	saveMu sync.Mutex
}

// New wires the slices together. Nothing is read from storage until Mount.
func New(adapter *storage.Adapter, directory catalog.Directory, opts ...Option) *Store {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logrus.NewEntry(logrus.StandardLogger())
	}

	id := uuid.NewString()
	snapshot := catalog.NewSnapshot(directory)
	s := &Store{
		id:      id,
		log:     o.log.WithField("session", id),
		adapter: adapter,
		catalog: snapshot,
		cart:    cart.New(cart.WithClock(o.now)),
		nav:     navigation.New(snapshot, o.scroll),
		ui:      ui.New(),
		bus:     newBroadcaster(),
		phase:   PhaseRestoring,
	}

	s.cart.OnChange(s.cartChanged)
	s.ui.OnChange(s.uiChanged)
	s.nav.OnChange(func() { s.bus.publish(TopicNavigation) })
	return s
}

func (s *Store) SessionID() string { return s.id }

func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Subscribe registers fn for change notifications on topic and returns a
// function that removes it. Notifications are delivered synchronously after
// the mutation that caused them.
func (s *Store) Subscribe(topic Topic, fn func()) (unsubscribe func()) {
	return s.bus.subscribe(topic, fn)
}

// Products returns the catalog snapshot taken at mount.
func (s *Store) Products() []domain.Product {
	return s.catalog.Products()
}

// Mount performs the one restore pass of the session: snapshot the catalog,
// read cart and wishlist, seed whichever is non-empty and switch to
// PhaseReady. If ctx ends before the switch the store stays in
// PhaseRestoring for good and never writes to storage.
func (s *Store) Mount(ctx context.Context) error {
	if !s.mounted.CompareAndSwap(false, true) {
		return ErrAlreadyMounted
	}

	if err := s.catalog.Load(ctx); err != nil {
		s.log.WithError(err).Warn("catalog unavailable, continuing without products and promo codes")
	}
	s.cart.SetPromotions(s.catalog.PromoCodes())

	items := storage.Load[domain.CartLineItem](ctx, s.adapter, storage.CartKey)
	wishlist := storage.Load[domain.WishlistEntry](ctx, s.adapter, storage.WishlistKey)

	if err := ctx.Err(); err != nil {
		s.log.WithError(err).Warn("restore interrupted, persistence disabled for this session")
		return errors.Wrap(err, "restore interrupted")
	}

	if len(items) > 0 {
		s.cart.Restore(items)
		s.bus.publish(TopicCart)
	}
	if len(wishlist) > 0 {
		s.ui.RestoreWishlist(wishlist)
		s.bus.publish(TopicUI)
	}

	s.becomeReady()
	s.log.WithFields(logrus.Fields{
		"cart_lines": len(items),
		"wishlist":   len(wishlist),
	}).Debug("session restored")
	return nil
}

func (s *Store) becomeReady() {
	s.mu.Lock()
	s.phase = PhaseReady
	flushCart, flushWishlist := s.cartDirty, s.wishlistDirty
	s.cartDirty, s.wishlistDirty = false, false
	s.mu.Unlock()

	if flushCart {
		s.persistCart()
	}
	if flushWishlist {
		s.persistWishlist()
	}
}

func (s *Store) cartChanged(change cart.Change) {
	if change == cart.ItemsChanged && s.readyOrMark(&s.cartDirty) {
		s.persistCart()
	}
	s.bus.publish(TopicCart)
}

func (s *Store) uiChanged(change ui.Change) {
	if change == ui.WishlistChanged && s.readyOrMark(&s.wishlistDirty) {
		s.persistWishlist()
	}
	s.bus.publish(TopicUI)
}

// readyOrMark reports whether writes are allowed; while restoring it marks
// the slice dirty instead.
func (s *Store) readyOrMark(dirty *bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseReady {
		return true
	}
	*dirty = true
	return false
}

func (s *Store) persistCart() {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	s.adapter.Save(ctx, storage.CartKey, s.cart.Items())
}

func (s *Store) persistWishlist() {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	s.adapter.Save(ctx, storage.WishlistKey, s.ui.Wishlist())
}
