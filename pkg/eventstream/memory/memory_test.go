package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/the-dev-tools/folio/pkg/eventstream"
	"github.com/the-dev-tools/folio/pkg/eventstream/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type change struct {
	ID   int64
	Kind string
}

func receive[T any, P any](t *testing.T, ch <-chan eventstream.Event[T, P]) eventstream.Event[T, P] {
	t.Helper()
	select {
	case evt, ok := <-ch:
		require.True(t, ok, "channel closed")
		return evt
	case <-time.After(time.Second):
		t.Fatal("did not receive event within timeout")
	}
	return eventstream.Event[T, P]{}
}

func TestPublishSubscribe(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, change]()
	defer streamer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := streamer.Subscribe(ctx, nil)
	require.NoError(t, err)

	streamer.Publish("projects", change{ID: 1, Kind: "appended"}, change{ID: 2, Kind: "deleted"})

	first := receive(t, events)
	require.Equal(t, "projects", first.Topic)
	require.Equal(t, int64(1), first.Payload.ID)
	require.Equal(t, "deleted", receive(t, events).Payload.Kind)
}

func TestTopicFilter(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, change]()
	defer streamer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := streamer.Subscribe(ctx, func(topic string) bool { return topic == "skills" })
	require.NoError(t, err)

	streamer.Publish("projects", change{ID: 1})
	streamer.Publish("skills", change{ID: 2})

	require.Equal(t, int64(2), receive(t, events).Payload.ID)
	select {
	case evt := <-events:
		t.Fatalf("unexpected event %+v", evt)
	default:
	}
}

func TestMultipleSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, change]()
	defer streamer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subs := make([]<-chan eventstream.Event[string, change], 3)
	for i := range subs {
		var err error
		subs[i], err = streamer.Subscribe(ctx, nil)
		require.NoError(t, err)
	}

	streamer.Publish("others", change{ID: 7})
	for _, sub := range subs {
		require.Equal(t, int64(7), receive(t, sub).Payload.ID)
	}
}

func TestCancelClosesChannel(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, change]()
	defer streamer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := streamer.Subscribe(ctx, nil)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel was not closed after cancellation")
	}
}

func TestShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, change]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := streamer.Subscribe(ctx, nil)
	require.NoError(t, err)

	streamer.Shutdown()
	streamer.Shutdown()

	_, ok := <-events
	require.False(t, ok)

	_, err = streamer.Subscribe(ctx, nil)
	require.ErrorIs(t, err, memory.ErrStreamerClosed)

	// publishing after shutdown is a no-op
	streamer.Publish("projects", change{ID: 1})
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, change](memory.WithBufferSize(2))
	defer streamer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := streamer.Subscribe(ctx, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			streamer.Publish("projects", change{ID: int64(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	require.Equal(t, int64(8), memory.Dropped(streamer))
}

func TestSnapshot(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, change]()
	defer streamer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshot := func(context.Context) ([]eventstream.Event[string, change], error) {
		return []eventstream.Event[string, change]{
			{Topic: "projects", Payload: change{ID: 100, Kind: "snapshot"}},
			{Topic: "skills", Payload: change{ID: 101, Kind: "snapshot"}},
		}, nil
	}

	events, err := streamer.Subscribe(ctx, func(topic string) bool { return topic == "projects" },
		eventstream.WithSnapshot(snapshot))
	require.NoError(t, err)

	require.Equal(t, int64(100), receive(t, events).Payload.ID)
	streamer.Publish("projects", change{ID: 1})
	require.Equal(t, int64(1), receive(t, events).Payload.ID)

	failing := func(context.Context) ([]eventstream.Event[string, change], error) {
		return nil, errors.New("snapshot failed")
	}
	_, err = streamer.Subscribe(ctx, nil, eventstream.WithSnapshot(failing))
	require.Error(t, err)
}

func TestConcurrentPublishAndCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, change]()
	defer streamer.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		ctx, cancel := context.WithCancel(context.Background())
		events, err := streamer.Subscribe(ctx, nil)
		require.NoError(t, err)
		go func() {
			defer wg.Done()
			for range events {
			}
		}()
		go func() {
			defer wg.Done()
			defer cancel()
			for j := 0; j < 50; j++ {
				streamer.Publish("projects", change{ID: int64(j)})
			}
		}()
	}
	wg.Wait()
}
