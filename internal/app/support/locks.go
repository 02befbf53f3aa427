package support

import (
	"context"
	"sync"

	"hotelier/internal/domain/room"
)

// RoomLocks serializes availability-check-then-write sequences per room.
// Without it two bookings for the same room can both observe a free range
// and both persist, breaking the non-overlap invariant.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[room.Number]*sync.Mutex
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[room.Number]*sync.Mutex)}
}

// Lock acquires the mutex for the given room and returns its release func.
func (l *RoomLocks) Lock(number room.Number) func() {
	l.mu.Lock()
	m, ok := l.locks[number]
	if !ok {
		m = &sync.Mutex{}
		l.locks[number] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// lockHolder parks unlock functions so a surrounding transaction can keep
// the lock held until after its commit. Releasing on handler return is not
// enough: a second request could read the pre-commit snapshot, see the room
// free, and write an overlap.
type lockHolder struct {
	mu  sync.Mutex
	fns []func()
}

type lockHolderKey struct{}

// WithLockHolder prepares ctx to carry unlocks past the handler.
func WithLockHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, lockHolderKey{}, &lockHolder{})
}

// HoldLock parks unlock on the ambient holder. It reports false when ctx has
// no holder and the caller must release the lock itself.
func HoldLock(ctx context.Context, unlock func()) bool {
	h, ok := ctx.Value(lockHolderKey{}).(*lockHolder)
	if !ok {
		return false
	}
	h.mu.Lock()
	h.fns = append(h.fns, unlock)
	h.mu.Unlock()
	return true
}

// ReleaseLocks runs and clears every parked unlock.
func ReleaseLocks(ctx context.Context) {
	h, ok := ctx.Value(lockHolderKey{}).(*lockHolder)
	if !ok {
		return
	}
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
