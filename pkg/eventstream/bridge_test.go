package eventstream_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/the-dev-tools/folio/pkg/eventstream"
	"github.com/the-dev-tools/folio/pkg/eventstream/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type msg struct {
	Text string
}

func TestStreamToClient(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, string]()
	defer streamer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshot := func(context.Context) ([]eventstream.Event[string, string], error) {
		return []eventstream.Event[string, string]{{Topic: "projects", Payload: "hello"}}, nil
	}

	sent := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- eventstream.StreamToClient(ctx, streamer, snapshot, nil,
			func(evt eventstream.Event[string, string]) *msg {
				if evt.Payload == "skip" {
					return nil
				}
				return &msg{Text: evt.Topic + ":" + evt.Payload}
			},
			func(m *msg) error {
				sent <- m.Text
				return nil
			})
	}()

	require.Equal(t, "projects:hello", <-sent)

	// the snapshot arrives only after the subscription is registered
	streamer.Publish("skills", "skip", "go")
	select {
	case got := <-sent:
		require.Equal(t, "skills:go", got)
	case <-time.After(time.Second):
		t.Fatal("live event not forwarded")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestStreamToClientSendError(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, string]()
	defer streamer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshot := func(context.Context) ([]eventstream.Event[string, string], error) {
		return []eventstream.Event[string, string]{{Topic: "projects", Payload: "x"}}, nil
	}
	boom := errors.New("client gone")
	err := eventstream.StreamToClient(ctx, streamer, snapshot, nil,
		func(evt eventstream.Event[string, string]) *msg { return &msg{Text: evt.Payload} },
		func(*msg) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestStreamToClientShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	streamer := memory.NewInMemorySyncStreamer[string, string]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- eventstream.StreamToClient[string, string, msg](ctx, streamer, nil, nil,
			func(eventstream.Event[string, string]) *msg { return nil },
			func(*msg) error { return nil })
	}()

	time.Sleep(20 * time.Millisecond)
	streamer.Shutdown()
	require.NoError(t, <-done)
}
