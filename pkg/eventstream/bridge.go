//nolint:revive // exported
package eventstream

import "context"

// StreamToClient subscribes, forwards the snapshot and then live events through
// send until ctx is done or the streamer shuts down. convert may return nil to skip.
func StreamToClient[Topic any, Payload any, Response any](
	ctx context.Context,
	streamer SyncStreamer[Topic, Payload],
	snapshot SnapshotProvider[Topic, Payload],
	filter TopicFilter[Topic],
	convert func(Event[Topic, Payload]) *Response,
	send func(*Response) error,
) error {
	var opts []SubscribeOption[Topic, Payload]
	if snapshot != nil {
		opts = append(opts, WithSnapshot(snapshot))
	}
	events, err := streamer.Subscribe(ctx, filter, opts...)
	if err != nil {
		return err
	}

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			if msg := convert(evt); msg != nil {
				if err := send(msg); err != nil {
					return err
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
