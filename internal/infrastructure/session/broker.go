// Package session fans session-change events out to in-process subscribers.
package session

import (
	"sync"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Broker is the single process-wide session-change channel.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan entities.SessionEvent
	nextID int
	closed bool
	logger *zap.Logger
}

var _ interfaces.ISessionEvents = (*Broker)(nil)

func NewBroker(logger *zap.Logger) *Broker {
	return &Broker{
		subs:   make(map[int]chan entities.SessionEvent),
		logger: logger,
	}
}

func (b *Broker) Subscribe(buffer int) (<-chan entities.SessionEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan entities.SessionEvent, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

func (b *Broker) Publish(ev entities.SessionEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Warn("session event dropped",
				zap.Int("subscriber", id),
				zap.String("kind", string(ev.Kind)),
			)
		}
	}
}

// Close ends every subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
