package liststate

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/BearBump/RollOff/internal/models"
)

// base holds what every controller shares: the state lock, subscribers, the stale-response
// guard and the notice path. S is the snapshot type handed to subscribers.
type base[S any] struct {
	mu       sync.Mutex
	closed   bool
	subs     map[int]func(S)
	nextSub  int
	notifier Notifier
	confirm  Confirmer

	// snap builds the subscriber snapshot; called with mu held.
	snap func() S
}

func (b *base[S]) init(n Notifier, c Confirmer, snap func() S) {
	if n == nil {
		n = LogNotifier{}
	}
	if c == nil {
		c = Decline
	}
	b.subs = map[int]func(S){}
	b.notifier = n
	b.confirm = c
	b.snap = snap
}

// Subscribe registers fn for every state change and returns the unsubscribe func.
func (b *base[S]) Subscribe(fn func(S)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Close discards the controller. Responses that resolve later are dropped.
func (b *base[S]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = map[int]func(S){}
}

func (b *base[S]) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// subscribersLocked must be called with mu held.
func (b *base[S]) subscribersLocked() []func(S) {
	out := make([]func(S), 0, len(b.subs))
	for _, fn := range b.subs {
		out = append(out, fn)
	}
	return out
}

// apply runs mutate under the lock unless the controller is closed, then notifies subscribers
// outside of it.
func (b *base[S]) apply(mutate func()) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	mutate()
	snap := b.snap()
	subs := b.subscribersLocked()
	b.mu.Unlock()

	publish(subs, snap)
	return nil
}

func publish[S any](subs []func(S), snap S) {
	for _, fn := range subs {
		fn(snap)
	}
}

// fail logs the failure and raises exactly one notice for it.
// Failures of a closed controller are returned as ErrClosed and raise nothing.
func (b *base[S]) fail(op, generic string, err error) error {
	if b.Closed() {
		return ErrClosed
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) || errors.Is(err, ErrArchived) {
		slog.Debug("operation rejected", "op", op, "err", err)
	} else {
		slog.Error("operation failed", "op", op, "err", err)
	}
	b.notifier.Notify(Notice{Op: op, Message: userMessage(err, generic), Err: err})
	return err
}

func indexBy[T any, K comparable](items []T, key func(T) K, k K) int {
	for i, it := range items {
		if key(it) == k {
			return i
		}
	}
	return -1
}
