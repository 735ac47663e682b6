package storage

import (
	"context"
	"errors"
)

// Medium is a durable string key-value store, the equivalent of the browser's
// origin-scoped storage. Only the Adapter talks to a Medium.
type Medium interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

var (
	ErrStorageDisabled = errors.New("storage disabled")
	ErrQuotaExceeded   = errors.New("storage quota exceeded")
)
