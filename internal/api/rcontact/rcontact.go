//nolint:revive // exported
package rcontact

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"time"

	"connectrpc.com/connect"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/pkg/errmap"
	"github.com/the-dev-tools/folio/pkg/metrics"
	"github.com/the-dev-tools/folio/pkg/model/mcontact"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/service/scontact"
)

const (
	ServiceName      = "folio.contact.v1.ContactService"
	AdminServiceName = "folio.contact.v1.ContactAdminService"
)

var ErrRateLimited = errors.New("too many contact submissions")

type (
	SubmitRequest struct {
		mcontact.Submission
	}
	SubmitResponse struct {
		ID        int64     `json:"id"`
		CreatedAt time.Time `json:"createdAt"`
	}

	ListRequest struct {
		Status mcontact.Status `json:"status"`
	}
	ListResponse struct {
		Items []mcontact.Contact `json:"items"`
	}

	IDRequest struct {
		ID int64 `json:"id"`
	}
	ContactResponse struct {
		Contact mcontact.Contact `json:"contact"`
	}

	UpdateStatusRequest struct {
		ID       int64             `json:"id"`
		Status   mcontact.Status   `json:"status"`
		Priority mcontact.Priority `json:"priority"`
		// Notes is left untouched when absent.
		Notes *string `json:"notes"`
	}

	DeleteResponse struct{}
)

type ContactServiceRPC struct {
	cs      scontact.ContactService
	limiter *clientLimiter
	proxies []netip.Prefix
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*ContactServiceRPC)

// WithTrustedProxies lets peers inside prefixes name the client through
// X-Forwarded-For or X-Real-Ip. Without it the peer address is the client.
func WithTrustedProxies(prefixes []netip.Prefix) Option {
	return func(c *ContactServiceRPC) {
		c.proxies = prefixes
	}
}

// New limits public submissions to perMinute per client IP with the given burst.
func New(cs scontact.ContactService, perMinute float64, burst int, logger *slog.Logger, opts ...Option) *ContactServiceRPC {
	if logger == nil {
		logger = slog.Default()
	}
	c := &ContactServiceRPC{
		cs:      cs,
		limiter: newClientLimiter(perMinute, burst),
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateService registers the public submit endpoint.
func CreateService(srv *ContactServiceRPC, options []connect.HandlerOption) (*api.Service, error) {
	mux := api.NewServiceMux(ServiceName, options)
	api.HandleUnary(mux, "Submit", srv.Submit)
	return mux.Service(), nil
}

// CreateAdminService registers the triage endpoints; options must carry the auth interceptor.
func CreateAdminService(srv *ContactServiceRPC, options []connect.HandlerOption) (*api.Service, error) {
	mux := api.NewServiceMux(AdminServiceName, options)
	api.HandleUnary(mux, "List", srv.List)
	api.HandleUnary(mux, "Get", srv.Get)
	api.HandleUnary(mux, "MarkRead", srv.MarkRead)
	api.HandleUnary(mux, "UpdateStatus", srv.UpdateStatus)
	api.HandleUnary(mux, "Delete", srv.Delete)
	return mux.Service(), nil
}

func (c *ContactServiceRPC) Close() {
	c.limiter.close()
}

func (c *ContactServiceRPC) Submit(ctx context.Context, req *connect.Request[SubmitRequest]) (*connect.Response[SubmitResponse], error) {
	client := scontact.ClientInfo{
		IPAddress: clientIP(req.Header(), req.Peer().Addr, c.proxies),
		UserAgent: req.Header().Get("User-Agent"),
		Referrer:  req.Header().Get("Referer"),
	}
	if !c.limiter.allow(client.IPAddress, c.now()) {
		metrics.ContactSubmissions.WithLabelValues("limited").Inc()
		c.logger.WarnContext(ctx, "contact submission rate limited", "ip", client.IPAddress)
		return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
	}

	contact, err := c.cs.Submit(ctx, req.Msg.Submission, client)
	if err != nil {
		if errors.Is(err, movable.ErrValidation) {
			metrics.ContactSubmissions.WithLabelValues("rejected").Inc()
		} else {
			metrics.ContactSubmissions.WithLabelValues("error").Inc()
		}
		return nil, errmap.ToConnect(err)
	}
	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	return connect.NewResponse(&SubmitResponse{ID: contact.ID, CreatedAt: contact.CreatedAt}), nil
}

func (c *ContactServiceRPC) List(ctx context.Context, req *connect.Request[ListRequest]) (*connect.Response[ListResponse], error) {
	items, err := c.cs.List(ctx, req.Msg.Status)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ListResponse{Items: items}), nil
}

func (c *ContactServiceRPC) Get(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[ContactResponse], error) {
	contact, err := c.cs.Get(ctx, req.Msg.ID)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ContactResponse{Contact: contact}), nil
}

func (c *ContactServiceRPC) MarkRead(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[ContactResponse], error) {
	contact, err := c.cs.MarkRead(ctx, req.Msg.ID)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ContactResponse{Contact: contact}), nil
}

func (c *ContactServiceRPC) UpdateStatus(ctx context.Context, req *connect.Request[UpdateStatusRequest]) (*connect.Response[ContactResponse], error) {
	contact, err := c.cs.UpdateStatus(ctx, req.Msg.ID, req.Msg.Status, req.Msg.Priority, req.Msg.Notes)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ContactResponse{Contact: contact}), nil
}

func (c *ContactServiceRPC) Delete(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[DeleteResponse], error) {
	if err := c.cs.Delete(ctx, req.Msg.ID); err != nil {
		return nil, errmap.ToConnect(err)
	}
	c.logger.InfoContext(ctx, "contact deleted", "contact_id", req.Msg.ID)
	return connect.NewResponse(&DeleteResponse{}), nil
}
