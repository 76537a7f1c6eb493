package sorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/folio/db/pkg/dbtest"
	"github.com/the-dev-tools/folio/pkg/eventstream/memory"
	"github.com/the-dev-tools/folio/pkg/movable"
)

func TestEnginesCoverEveryCollection(t *testing.T) {
	ctx := context.Background()
	db, _, err := dbtest.GetTestQueries(ctx)
	require.NoError(t, err)
	defer db.Close()

	engines := New(db)
	all := engines.All()
	require.Len(t, all, len(movable.Collections()))
	for i, col := range movable.Collections() {
		require.Equal(t, col, all[i].Collection())
	}

	e, err := engines.Parse("tech-stack")
	require.NoError(t, err)
	require.Equal(t, movable.CollectionTechStack, e.Collection())

	_, err = engines.Parse("profile")
	require.ErrorIs(t, err, movable.ErrUnknownCollection)
	_, err = engines.Get("contacts")
	require.ErrorIs(t, err, movable.ErrValidation)
	require.Panics(t, func() { engines.MustGet("nope") })
}

func TestPublishToForwardsChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streamer := memory.NewInMemorySyncStreamer[movable.Collection, movable.Change]()
	defer streamer.Shutdown()
	events, err := streamer.Subscribe(ctx, nil)
	require.NoError(t, err)

	PublishTo(streamer)(ctx, []movable.Change{
		{Collection: movable.CollectionSkills, Kind: movable.ChangeReordered, Shifted: 3},
		{Collection: movable.CollectionOthers, Kind: movable.ChangeDeleted, ID: 9},
	})

	for _, want := range []movable.Collection{movable.CollectionSkills, movable.CollectionOthers} {
		select {
		case evt := <-events:
			require.Equal(t, want, evt.Topic)
			require.Equal(t, want, evt.Payload.Collection)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}
