package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// Lock acquires the exclusive write lock beside the database, waiting until
// ctx is done. The returned func releases it.
func (s *Store) Lock(ctx context.Context) (unlock func() error, err error) {
	ctx = ensureContext(ctx)
	lock := flock.New(s.path + ".lock")
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, lock.Path())
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}
	return lock.Unlock, nil
}
