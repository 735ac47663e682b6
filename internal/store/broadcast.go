package store

import "sync"

// Topic names one notification channel of the store.
type Topic int

const (
	TopicCart Topic = iota
	TopicNavigation
	TopicUI
)

func (t Topic) String() string {
	switch t {
	case TopicCart:
		return "cart"
	case TopicNavigation:
		return "navigation"
	case TopicUI:
		return "ui"
	default:
		return "unknown"
	}
}

type broadcaster struct {
	mu   sync.RWMutex
	next int
	subs map[Topic]map[int]func()
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[Topic]map[int]func())}
}

func (b *broadcaster) subscribe(topic Topic, fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]func())
	}
	id := b.next
	b.next++
	b.subs[topic][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[topic], id)
		})
	}
}

// publish calls every subscriber of topic outside the lock, so a subscriber
// may read the store or unsubscribe.
func (b *broadcaster) publish(topic Topic) {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.subs[topic]))
	for _, fn := range b.subs[topic] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
