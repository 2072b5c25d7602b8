// Package hub fans composite payloads out to subscribers. Broadcast is
// fire-and-forget: each subscriber owns a bounded buffer and a slow or
// stalled consumer loses payloads instead of backpressuring the sampler.
package hub

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hostpulse/hostpulse/internal/model"
)

// subscriberBuffer is the per-subscriber channel depth before drops start.
const subscriberBuffer = 8

// Hub distributes payloads and replays the latest one to new subscribers
// so they are not left blank until the next tick.
type Hub struct {
	mu      sync.RWMutex
	subs    map[uuid.UUID]chan model.Payload
	latest  *model.Payload
	dropped uint64
	log     zerolog.Logger
}

func New(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[uuid.UUID]chan model.Payload),
		log:  log,
	}
}

// Subscribe registers a new consumer and immediately queues the most
// recent payload when one exists. The channel is closed on Unsubscribe.
func (h *Hub) Subscribe() (uuid.UUID, <-chan model.Payload) {
	id := uuid.New()
	ch := make(chan model.Payload, subscriberBuffer)

	h.mu.Lock()
	if h.latest != nil {
		ch <- *h.latest
	}
	h.subs[id] = ch
	h.mu.Unlock()

	h.log.Debug().Str("subscriber", id.String()).Msg("subscriber joined")
	return id, ch
}

// Unsubscribe removes a consumer and closes its channel.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()

	if ok {
		h.log.Debug().Str("subscriber", id.String()).Msg("subscriber left")
	}
}

// Broadcast records p as the latest payload and offers it to every
// subscriber without blocking. Full buffers drop the payload for that
// subscriber only.
func (h *Hub) Broadcast(p model.Payload) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = &p
	for id, ch := range h.subs {
		select {
		case ch <- p:
		default:
			h.dropped++
			h.log.Debug().Str("subscriber", id.String()).Uint64("dropped", h.dropped).Msg("subscriber buffer full, payload dropped")
		}
	}
}

// Latest returns the most recent broadcast payload for pull-style queries.
func (h *Hub) Latest() (model.Payload, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return model.Payload{}, false
	}
	return *h.latest, true
}

// SubscriberCount reports the number of live subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped reports how many payload deliveries were dropped so far.
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}
