// Package lock guards the scheduler's check-and-write sequence per booking
// slot. The in-service conflict check and the insert are not atomic on their
// own; holding a short-lived lock per (party, slot) closes that race on
// multi-node deployments. Single-node deployments may run with the noop
// locker and rely on the unique booking indexes alone.
package lock

import (
	"context"
	"errors"
)

var ErrLockNotAcquired = errors.New("slot lock not acquired")

// Locker runs fn while holding exclusive locks on the given slot keys.
// Acquisition is non-blocking: if any key is already held, it fails fast
// with ErrLockNotAcquired.
type Locker interface {
	WithSlotLocks(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

type noopLocker struct{}

// NewNoopLocker returns a locker that runs fn without any locking.
func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) WithSlotLocks(ctx context.Context, _ []string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
