package messaging

import (
	"context"
	"log/slog"
	"sync"

	"plume/contexts/content-sharing/publishing-service/ports"
)

const subscriberBuffer = 128

// Bus is the in-process publish/subscribe broker addressed by channel name.
// Delivery is fan-out to every live subscriber of a channel; there is no
// queuing for subscribers that are not yet connected and no persistence of
// past events. No cross-process broadcast.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan ports.EventEnvelope
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]chan ports.EventEnvelope),
		logger:      logger,
	}
}

func (b *Bus) Publish(ctx context.Context, channel string, event ports.EventEnvelope) error {
	// Sends stay under the read lock: they are non-blocking, and holding it
	// means a subscriber channel can never be closed mid-send.
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers[channel] {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				"event", "bus_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"channel", channel,
				"mutation", string(event.Mutation),
			)
		}
	}
	return nil
}

// Subscribe registers a new live consumer on the channel. The returned
// subscription must be closed when the consumer disconnects; closing
// unregisters the delivery target immediately.
func (b *Bus) Subscribe(_ context.Context, channel string) ports.Subscription {
	ch := make(chan ports.EventEnvelope, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[channel] = append(b.subscribers[channel], ch)
	b.mu.Unlock()

	sub := &subscription{events: ch}
	sub.close = func() {
		b.removeSubscriber(channel, ch)
	}
	return sub
}

// removeSubscriber drops the delivery target and closes its channel under
// the write lock, so publishers never send on a closed channel.
func (b *Bus) removeSubscriber(channel string, target chan ports.EventEnvelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	close(target)
	items := b.subscribers[channel]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan ports.EventEnvelope, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		delete(b.subscribers, channel)
		return
	}
	b.subscribers[channel] = filtered
}

type subscription struct {
	events chan ports.EventEnvelope
	once   sync.Once
	close  func()
}

func (s *subscription) Events() <-chan ports.EventEnvelope { return s.events }

func (s *subscription) Close() {
	s.once.Do(s.close)
}

var _ ports.EventBus = (*Bus)(nil)
