package store

import (
	"context"
	"sync"

	applog "banktrack/internal/log"
	"banktrack/models"
)

// Unsubscribe tears down a live subscription. It must be called when the
// subscriber goes away; it is safe to call more than once.
type Unsubscribe func()

type hub struct {
	mu      sync.Mutex
	nextID  uint64
	clients map[uint64]func([]models.Bank)
}

func newHub() *hub {
	return &hub{clients: make(map[uint64]func([]models.Bank))}
}

func (h *hub) add(fn func([]models.Bank)) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.clients[id] = fn
	return id
}

func (h *hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

func (h *hub) snapshotClients() []func([]models.Bank) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]func([]models.Bank), 0, len(h.clients))
	for _, fn := range h.clients {
		clients = append(clients, fn)
	}
	return clients
}

// Subscribe opens a live feed of the full record set ordered by name. The
// callback receives the current set immediately and again after every
// create, update, or delete anywhere in the collection. The returned handle
// releases the registration.
func (s *Store) Subscribe(ctx context.Context, fn func([]models.Bank)) (Unsubscribe, error) {
	banks, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	id := s.hub.add(fn)
	applog.Debug(ctx, "subscription opened", "subscriber", id)

	fn(banks)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.hub.remove(id)
			applog.Debug(context.Background(), "subscription closed", "subscriber", id)
		})
	}, nil
}

// SubscriberCount reports how many live subscriptions are registered.
func (s *Store) SubscriberCount() int {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return len(s.hub.clients)
}

// broadcast reloads the record set and pushes it to every subscriber. A
// failing reload is logged and dropped; subscribers keep their last set
// until the next successful change.
func (s *Store) broadcast(ctx context.Context) {
	banks, err := s.Snapshot(ctx)
	if err != nil {
		applog.Warn(ctx, "broadcast snapshot failed", "error", err)
		return
	}

	for _, fn := range s.hub.snapshotClients() {
		fn(banks)
	}
}
