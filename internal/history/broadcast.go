package history

import "sync"

// Broadcaster fans a payload-less "history may have changed" signal out to
// subscribers. Subscribers are expected to re-read the store.
type Broadcaster struct {
	mu   sync.RWMutex
	next int
	subs map[int]func()
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func())}
}

// Subscribe registers fn and returns a func that removes it. Calling the
// returned func more than once is harmless.
func (b *Broadcaster) Subscribe(fn func()) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish calls every subscriber. Handlers run outside the lock so they may
// subscribe, unsubscribe or read the store.
func (b *Broadcaster) Publish() {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}

// Len is the number of live subscriptions.
func (b *Broadcaster) Len() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
