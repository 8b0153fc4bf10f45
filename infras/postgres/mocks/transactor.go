package mocks

import (
	"context"
	"sync"

	"slotbook/infras/postgres"
)

// Transactor runs fn directly and records the lock keys it was asked for.
type Transactor struct {
	mu   sync.Mutex
	Keys [][]string
	Err  error
}

// WithLocks implements postgres.Transactor.
func (t *Transactor) WithLocks(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Keys = append(t.Keys, postgres.LockOrder(keys))
	t.mu.Unlock()

	if t.Err != nil {
		return t.Err
	}

	return fn(ctx)
}

// LastKeys returns the keys of the most recent WithLocks call.
func (t *Transactor) LastKeys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.Keys) == 0 {
		return nil
	}

	return t.Keys[len(t.Keys)-1]
}

func NewTransactor() *Transactor {
	return &Transactor{}
}
