package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPrefix = "boutique"

	CartKey     = "cart"
	WishlistKey = "wishlist"
)

// Adapter loads and saves the engine's collections on a Medium. Keys are
// namespaced with an application prefix so unrelated data on the same medium
// is never touched.
type Adapter struct {
	medium Medium
	prefix string
	log    *logrus.Entry
}

func NewAdapter(medium Medium, prefix string, log *logrus.Entry) *Adapter {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Adapter{
		medium: medium,
		prefix: prefix,
		log:    log.WithField("component", "storage"),
	}
}

func (a *Adapter) storageKey(key string) string {
	return fmt.Sprintf("%s:%s", a.prefix, key)
}

// Load reads the JSON array stored under key. It never fails: a missing key,
// a medium error, malformed JSON or a value that is not an array all yield an
// empty slice.
func Load[T any](ctx context.Context, a *Adapter, key string) []T {
	sk := a.storageKey(key)
	raw, found, err := a.medium.Get(ctx, sk)
	if err != nil {
		a.log.WithError(err).WithField("key", sk).Debug("storage read failed")
		return []T{}
	}
	if !found {
		return []T{}
	}

	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		a.log.WithError(err).WithField("key", sk).Debug("discarding unreadable stored value")
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}

// Save writes value as JSON under key. Failures are logged and discarded; the
// in-memory state stays authoritative.
func (a *Adapter) Save(ctx context.Context, key string, value any) {
	if err := a.save(ctx, key, value); err != nil {
		a.log.WithError(err).WithField("key", a.storageKey(key)).Debug("storage write dropped")
	}
}

func (a *Adapter) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal value failed")
	}
	if err := a.medium.Set(ctx, a.storageKey(key), string(data)); err != nil {
		return errors.Wrap(err, "medium write failed")
	}
	return nil
}
