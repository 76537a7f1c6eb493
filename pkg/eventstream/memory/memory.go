//nolint:revive // exported
package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/the-dev-tools/folio/pkg/eventstream"
)

// defaultSubscriberBuffer absorbs bursts such as a full reorder commit followed by
// cache invalidations without dropping events for slow stream clients.
const defaultSubscriberBuffer = 256

var ErrStreamerClosed = errors.New("eventstream: streamer closed")

type subscriber[Topic any, Payload any] struct {
	ctx    context.Context
	filter eventstream.TopicFilter[Topic]
	ch     chan eventstream.Event[Topic, Payload]
	closed atomic.Bool
}

type inMemorySyncStreamer[Topic any, Payload any] struct {
	mu          sync.RWMutex
	subscribers map[*subscriber[Topic, Payload]]struct{}
	closed      atomic.Bool
	dropped     atomic.Int64
	bufferSize  int
}

type Option func(*config)

type config struct {
	bufferSize int
}

func WithBufferSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// NewInMemorySyncStreamer creates a streamer with per subscriber buffers.
func NewInMemorySyncStreamer[Topic any, Payload any](opts ...Option) eventstream.SyncStreamer[Topic, Payload] {
	cfg := config{bufferSize: defaultSubscriberBuffer}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &inMemorySyncStreamer[Topic, Payload]{
		subscribers: make(map[*subscriber[Topic, Payload]]struct{}),
		bufferSize:  cfg.bufferSize,
	}
}

// Dropped reports how many events were discarded because a subscriber was full.
func Dropped[Topic any, Payload any](s eventstream.SyncStreamer[Topic, Payload]) int64 {
	if m, ok := s.(*inMemorySyncStreamer[Topic, Payload]); ok {
		return m.dropped.Load()
	}
	return 0
}

func (s *inMemorySyncStreamer[Topic, Payload]) Publish(topic Topic, payloads ...Payload) {
	if s.closed.Load() || len(payloads) == 0 {
		return
	}

	// Sends never block, and holding the read lock keeps removeSubscriber from
	// closing a channel mid send.
	s.mu.RLock()
	defer s.mu.RUnlock()
	for sub := range s.subscribers {
		if sub.closed.Load() {
			continue
		}
		if sub.filter != nil && !sub.filter(topic) {
			continue
		}
		for _, payload := range payloads {
			s.trySend(sub, eventstream.Event[Topic, Payload]{Topic: topic, Payload: payload})
		}
	}
}

func (s *inMemorySyncStreamer[Topic, Payload]) Subscribe(
	ctx context.Context,
	filter eventstream.TopicFilter[Topic],
	opts ...eventstream.SubscribeOption[Topic, Payload],
) (<-chan eventstream.Event[Topic, Payload], error) {
	if s.closed.Load() {
		return nil, ErrStreamerClosed
	}

	var options eventstream.SubscribeOptions[Topic, Payload]
	for _, opt := range opts {
		opt(&options)
	}

	if filter == nil {
		filter = func(Topic) bool { return true }
	}

	sub := &subscriber[Topic, Payload]{
		ctx:    ctx,
		filter: filter,
		ch:     make(chan eventstream.Event[Topic, Payload], s.bufferSize),
	}

	if options.Snapshot != nil {
		snapshot, err := options.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		for _, evt := range snapshot {
			if filter(evt.Topic) {
				s.trySend(sub, evt)
			}
		}
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return nil, ErrStreamerClosed
	}
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()

	go s.monitorContext(sub)

	return sub.ch, nil
}

func (s *inMemorySyncStreamer[Topic, Payload]) Shutdown() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for sub := range s.subscribers {
		if sub.closed.CompareAndSwap(false, true) {
			close(sub.ch)
		}
	}
	s.subscribers = nil
}

func (s *inMemorySyncStreamer[Topic, Payload]) monitorContext(sub *subscriber[Topic, Payload]) {
	<-sub.ctx.Done()
	s.removeSubscriber(sub)
}

func (s *inMemorySyncStreamer[Topic, Payload]) removeSubscriber(sub *subscriber[Topic, Payload]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscribers == nil {
		return
	}
	if _, ok := s.subscribers[sub]; !ok {
		return
	}
	delete(s.subscribers, sub)
	if sub.closed.CompareAndSwap(false, true) {
		close(sub.ch)
	}
}

// trySend must run before sub is registered or under s.mu.
func (s *inMemorySyncStreamer[Topic, Payload]) trySend(sub *subscriber[Topic, Payload], evt eventstream.Event[Topic, Payload]) {
	select {
	case sub.ch <- evt:
	default:
		s.dropped.Add(1)
	}
}
