//nolint:revive // exported
package eventstream

import "context"

// Event pairs a payload with the topic it was published under.
type Event[Topic any, Payload any] struct {
	Topic   Topic
	Payload Payload
}

// TopicFilter decides whether a subscriber receives events of a topic.
type TopicFilter[Topic any] func(Topic) bool

// SnapshotProvider returns the events a new subscriber should see before live ones.
type SnapshotProvider[Topic any, Payload any] func(ctx context.Context) ([]Event[Topic, Payload], error)

type SubscribeOptions[Topic any, Payload any] struct {
	Snapshot SnapshotProvider[Topic, Payload]
}

type SubscribeOption[Topic any, Payload any] func(*SubscribeOptions[Topic, Payload])

func WithSnapshot[Topic any, Payload any](provider SnapshotProvider[Topic, Payload]) SubscribeOption[Topic, Payload] {
	return func(o *SubscribeOptions[Topic, Payload]) {
		o.Snapshot = provider
	}
}

// SyncStreamer fans published events out to subscribers.
//
// Example usage:
//
//	streamer := memory.NewInMemorySyncStreamer[movable.Collection, movable.Change]()
//	events, _ := streamer.Subscribe(ctx, nil)
//	streamer.Publish(movable.CollectionProjects, change)
//	defer streamer.Shutdown()
type SyncStreamer[Topic any, Payload any] interface {
	// Subscribe returns a channel closed when ctx is done or the streamer shuts down.
	// A nil filter receives every topic.
	Subscribe(ctx context.Context, filter TopicFilter[Topic], opts ...SubscribeOption[Topic, Payload]) (<-chan Event[Topic, Payload], error)

	// Publish never blocks. Events are dropped for subscribers whose buffer is full.
	Publish(topic Topic, payloads ...Payload)

	// Shutdown closes every subscriber channel.
	Shutdown()
}
