// Package sorder builds one movable.Engine per ordered collection over a shared pool.
package sorder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/the-dev-tools/folio/pkg/eventstream"
	"github.com/the-dev-tools/folio/pkg/movable"
)

// Streamer carries committed changes, one topic per collection.
type Streamer = eventstream.SyncStreamer[movable.Collection, movable.Change]

type Engines struct {
	byCollection map[movable.Collection]*movable.Engine
}

func New(db *sql.DB, opts ...movable.Option) *Engines {
	e := &Engines{byCollection: make(map[movable.Collection]*movable.Engine, len(movable.Collections()))}
	for _, col := range movable.Collections() {
		e.byCollection[col] = movable.NewEngine(db, movable.MustSQLStore(db, col), opts...)
	}
	return e
}

func (e *Engines) Get(col movable.Collection) (*movable.Engine, error) {
	engine, ok := e.byCollection[col]
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", movable.ErrValidation, movable.ErrUnknownCollection, string(col))
	}
	return engine, nil
}

// Parse resolves a user supplied collection name to its engine.
func (e *Engines) Parse(name string) (*movable.Engine, error) {
	col, err := movable.ParseCollection(name)
	if err != nil {
		return nil, err
	}
	return e.Get(col)
}

func (e *Engines) MustGet(col movable.Collection) *movable.Engine {
	engine, err := e.Get(col)
	if err != nil {
		panic(err)
	}
	return engine
}

// All returns the engines in movable.Collections order.
func (e *Engines) All() []*movable.Engine {
	out := make([]*movable.Engine, 0, len(e.byCollection))
	for _, col := range movable.Collections() {
		out = append(out, e.byCollection[col])
	}
	return out
}

// PublishTo returns an observer forwarding committed changes to streamer.
func PublishTo(streamer Streamer) movable.Observer {
	return func(_ context.Context, changes []movable.Change) {
		for _, ch := range changes {
			streamer.Publish(ch.Collection, ch)
		}
	}
}
