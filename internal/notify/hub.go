package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Event is a single notification pushed to topic subscribers.
type Event struct {
	Topic   string    `json:"topic"`
	Name    string    `json:"event"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Hub is an in-process topic fan-out. Publish never blocks: events are
// dropped per-subscriber when a buffer is full, and publishing to a topic
// with no subscribers is a silent no-op. Delivery is not observable by
// publishers.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string][]*subscriber
	closed  bool
	metrics *hubMetrics
	logger  *slog.Logger
}

// subscriber guards its channel with its own mutex so a publisher holding
// a snapshot of the topic list can never race a close of the channel.
type subscriber struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// NewHub creates a Hub. The metrics registry may be nil, which disables
// instrumentation.
func NewHub(registry *prometheus.Registry, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:    make(map[string][]*subscriber),
		metrics: newHubMetrics(registry),
		logger:  logger,
	}
}

// Publish delivers an event to every subscriber of the topic,
// fire-and-forget.
func (h *Hub) Publish(topic, name string, payload any) {
	event := Event{Topic: topic, Name: name, Payload: payload, At: time.Now().UTC()}

	h.mu.RLock()
	subs := make([]*subscriber, len(h.subs[topic]))
	copy(subs, h.subs[topic])
	closed := h.closed
	h.mu.RUnlock()

	if closed {
		return
	}
	h.metrics.IncrementPublished(name)

	for _, sub := range subs {
		sub.mu.Lock()
		if sub.closed {
			sub.mu.Unlock()
			continue
		}
		select {
		case sub.ch <- event:
			sub.mu.Unlock()
			h.metrics.IncrementDelivered(name)
		default:
			sub.mu.Unlock()
			// Drop rather than block the publisher.
			h.metrics.IncrementDropped(name)
			h.logger.Debug("dropped event due to full subscriber buffer",
				"topic", topic, "event", name)
		}
	}
}

// Subscribe registers a buffered channel subscription for a topic. The
// returned cancel func removes the subscription and closes the channel;
// it is safe to call multiple times.
func (h *Hub) Subscribe(topic string, bufferSize int) (<-chan Event, func()) {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	sub := &subscriber{ch: make(chan Event, bufferSize)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	h.subs[topic] = append(h.subs[topic], sub)
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			list := h.subs[topic]
			for i, s := range list {
				if s == sub {
					h.subs[topic] = append(list[:i], list[i+1:]...)
					break
				}
			}
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
			h.mu.Unlock()
			sub.close()
		})
	}
	return sub.ch, cancel
}

// SubscriberCount returns the number of subscribers on a topic. Primarily
// useful for tests.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Close shuts the hub down and closes all subscriber channels. Publishing
// after Close is a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	var all []*subscriber
	for topic, subs := range h.subs {
		all = append(all, subs...)
		delete(h.subs, topic)
	}
	h.mu.Unlock()

	for _, sub := range all {
		sub.close()
	}
}
