//nolint:revive // exported
package rreorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/oklog/ulid/v2"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/pkg/cachettl"
	"github.com/the-dev-tools/folio/pkg/errmap"
	"github.com/the-dev-tools/folio/pkg/metrics"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/service/sorder"
)

const ServiceName = "folio.reorder.v1.ReorderService"

const DefaultSessionTTL = 30 * time.Minute

type (
	OpenRequest struct {
		Collection string `json:"collection"`
	}

	SessionRequest struct {
		SessionID string `json:"sessionId"`
	}

	MoveRequest struct {
		SessionID string `json:"sessionId"`
		From      int    `json:"from"`
		To        int    `json:"to"`
	}

	IndexRequest struct {
		SessionID string `json:"sessionId"`
		Index     int    `json:"index"`
	}

	// SessionResponse is the staged order. Items carry the sort order they get on commit.
	SessionResponse struct {
		SessionID  string             `json:"sessionId"`
		Collection movable.Collection `json:"collection"`
		Items      []movable.Entry    `json:"items"`
		HasChanges bool               `json:"hasChanges"`
		ExpiresIn  int64              `json:"expiresInSeconds"`
	}

	MoveResponse struct {
		// Moved is false for out of range indices and from == to.
		Moved   bool            `json:"moved"`
		Session SessionResponse `json:"session"`
	}

	CloseResponse struct{}
)

// ReorderServiceRPC keeps reorder sessions server side. A session lives until
// closed or idle for longer than the session TTL.
type ReorderServiceRPC struct {
	engines  *sorder.Engines
	sessions *cachettl.Cache[string, *movable.Session[movable.Entry]]
	ttl      time.Duration
	logger   *slog.Logger
}

func New(engines *sorder.Engines, ttl time.Duration, logger *slog.Logger) *ReorderServiceRPC {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &ReorderServiceRPC{
		engines:  engines,
		sessions: cachettl.New[string, *movable.Session[movable.Entry]](ttl, min(ttl, time.Minute)),
		ttl:      ttl,
		logger:   logger,
	}
	c.sessions.OnPurge(func(removed int) {
		c.logger.Debug("idle reorder sessions expired", "count", removed)
		c.trackSessions()
	})
	return c
}

func CreateService(srv *ReorderServiceRPC, options []connect.HandlerOption) (*api.Service, error) {
	mux := api.NewServiceMux(ServiceName, options)
	api.HandleUnary(mux, "Open", srv.Open)
	api.HandleUnary(mux, "Get", srv.Get)
	api.HandleUnary(mux, "Move", srv.Move)
	api.HandleUnary(mux, "MoveUp", srv.MoveUp)
	api.HandleUnary(mux, "MoveDown", srv.MoveDown)
	api.HandleUnary(mux, "Reset", srv.Reset)
	api.HandleUnary(mux, "Refresh", srv.Refresh)
	api.HandleUnary(mux, "Commit", srv.Commit)
	api.HandleUnary(mux, "Close", srv.Close)
	return mux.Service(), nil
}

// Shutdown drops every session and stops the expiry loop.
func (c *ReorderServiceRPC) Shutdown() {
	c.sessions.Clear()
	c.sessions.Close()
	metrics.ReorderSessions.Set(0)
}

func (c *ReorderServiceRPC) session(id string) (*movable.Session[movable.Entry], error) {
	if !c.sessions.Touch(id) {
		return nil, errmap.ToConnect(fmt.Errorf("%w: %q", movable.ErrSessionNotFound, id))
	}
	s, ok := c.sessions.Get(id)
	if !ok {
		return nil, errmap.ToConnect(fmt.Errorf("%w: %q", movable.ErrSessionNotFound, id))
	}
	return s, nil
}

func (c *ReorderServiceRPC) response(id string, s *movable.Session[movable.Entry]) *SessionResponse {
	return &SessionResponse{
		SessionID:  id,
		Collection: s.Collection(),
		Items:      s.Items(),
		HasChanges: s.HasChanges(),
		ExpiresIn:  int64(c.ttl.Seconds()),
	}
}

func (c *ReorderServiceRPC) trackSessions() {
	metrics.ReorderSessions.Set(float64(c.sessions.Len()))
}

func (c *ReorderServiceRPC) Open(ctx context.Context, req *connect.Request[OpenRequest]) (*connect.Response[SessionResponse], error) {
	engine, err := c.engines.Parse(req.Msg.Collection)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	s, err := engine.OpenSession(ctx)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	id := ulid.Make().String()
	c.sessions.Set(id, s)
	c.trackSessions()
	c.logger.InfoContext(ctx, "reorder session opened", "session_id", id, "collection", engine.Collection(), "records", s.Len())
	return connect.NewResponse(c.response(id, s)), nil
}

func (c *ReorderServiceRPC) Get(_ context.Context, req *connect.Request[SessionRequest]) (*connect.Response[SessionResponse], error) {
	s, err := c.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(c.response(req.Msg.SessionID, s)), nil
}

func (c *ReorderServiceRPC) move(id string, fn func(*movable.Session[movable.Entry]) bool) (*connect.Response[MoveResponse], error) {
	s, err := c.session(id)
	if err != nil {
		return nil, err
	}
	moved := fn(s)
	return connect.NewResponse(&MoveResponse{Moved: moved, Session: *c.response(id, s)}), nil
}

func (c *ReorderServiceRPC) Move(_ context.Context, req *connect.Request[MoveRequest]) (*connect.Response[MoveResponse], error) {
	return c.move(req.Msg.SessionID, func(s *movable.Session[movable.Entry]) bool {
		return s.Move(req.Msg.From, req.Msg.To)
	})
}

func (c *ReorderServiceRPC) MoveUp(_ context.Context, req *connect.Request[IndexRequest]) (*connect.Response[MoveResponse], error) {
	return c.move(req.Msg.SessionID, func(s *movable.Session[movable.Entry]) bool {
		return s.MoveUp(req.Msg.Index)
	})
}

func (c *ReorderServiceRPC) MoveDown(_ context.Context, req *connect.Request[IndexRequest]) (*connect.Response[MoveResponse], error) {
	return c.move(req.Msg.SessionID, func(s *movable.Session[movable.Entry]) bool {
		return s.MoveDown(req.Msg.Index)
	})
}

// Reset restores the last fetched or committed order without reading the store.
func (c *ReorderServiceRPC) Reset(_ context.Context, req *connect.Request[SessionRequest]) (*connect.Response[SessionResponse], error) {
	s, err := c.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	s.Reset()
	return connect.NewResponse(c.response(req.Msg.SessionID, s)), nil
}

// Refresh re-reads the collection, picking up records added or deleted since
// the session was opened. Staged moves are dropped.
func (c *ReorderServiceRPC) Refresh(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[SessionResponse], error) {
	s, err := c.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	engine, err := c.engines.Get(s.Collection())
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	if err := engine.Refresh(ctx, s); err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(c.response(req.Msg.SessionID, s)), nil
}

// Commit writes the staged order. On failure the session keeps its moves so
// the caller can retry or reset.
func (c *ReorderServiceRPC) Commit(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[SessionResponse], error) {
	s, err := c.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	engine, err := c.engines.Get(s.Collection())
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	if err := engine.Commit(ctx, s); err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(c.response(req.Msg.SessionID, s)), nil
}

func (c *ReorderServiceRPC) Close(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[CloseResponse], error) {
	if !c.sessions.Delete(req.Msg.SessionID) {
		return nil, errmap.ToConnect(fmt.Errorf("%w: %q", movable.ErrSessionNotFound, req.Msg.SessionID))
	}
	c.trackSessions()
	c.logger.InfoContext(ctx, "reorder session closed", "session_id", req.Msg.SessionID)
	return connect.NewResponse(&CloseResponse{}), nil
}
