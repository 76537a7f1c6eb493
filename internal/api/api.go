//nolint:revive // exported
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type Service struct {
	Handler http.Handler
	Path    string
}

type ServerStreamAdHoc[Res any] interface {
	Send(*Res) error
}

const shutdownTimeout = 10 * time.Second

// newCORS allows every origin when allowedOrigins is empty.
func newCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowOriginFunc: func(origin string) bool {
			return len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Accept",
			"Accept-Encoding",
			"Accept-Post",
			"Connect-Accept-Encoding",
			"Connect-Content-Encoding",
			"Content-Encoding",
			"Grpc-Accept-Encoding",
			"Grpc-Encoding",
			"Grpc-Message",
			"Grpc-Status",
			"Grpc-Status-Details-Bin",
			"X-Error-Code",
		},
		MaxAge: int(time.Second),
	})
}

// NewHandler mounts services on one mux behind CORS and h2c.
func NewHandler(services []Service, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	for _, service := range services {
		slog.Info("Registering service", "path", service.Path)
		mux.Handle(service.Path, service.Handler)
	}
	// INFO: Use h2c so we can serve HTTP/2 without TLS.
	return h2c.NewHandler(newCORS(allowedOrigins).Handler(mux), &http2.Server{
		IdleTimeout:          0,
		MaxConcurrentStreams: 100000,
		MaxHandlers:          0,
	})
}

func NewServer(addr string, services []Service, allowedOrigins []string) *http.Server {
	return &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler:           NewHandler(services, allowedOrigins),
	}
}

// ListenServices serves until ctx is done and then shuts down gracefully.
func ListenServices(ctx context.Context, services []Service, addr string, allowedOrigins []string) error {
	srv := NewServer(addr, services, allowedOrigins)

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	slog.Info("Server listening on TCP", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	// streams such as WatchChanges end with their request context
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ServiceMux collects the procedures of one RPC service. Messages are plain Go
// structs carried by the JSON codec, so handlers are registered by hand.
type ServiceMux struct {
	name    string
	mux     *http.ServeMux
	options []connect.HandlerOption
}

func NewServiceMux(name string, options []connect.HandlerOption) *ServiceMux {
	return &ServiceMux{name: name, mux: http.NewServeMux(), options: options}
}

func (m *ServiceMux) Name() string {
	return m.name
}

// Procedure returns the path of method, "/<service>/<method>".
func (m *ServiceMux) Procedure(method string) string {
	return Procedure(m.name, method)
}

func (m *ServiceMux) Service() *Service {
	return &Service{Path: "/" + m.name + "/", Handler: m.mux}
}

func Procedure(service, method string) string {
	return "/" + service + "/" + method
}

func HandleUnary[Req, Res any](m *ServiceMux, method string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error)) {
	procedure := m.Procedure(method)
	m.mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, m.options...))
}

func HandleServerStream[Req, Res any](m *ServiceMux, method string, fn func(context.Context, *connect.Request[Req], *connect.ServerStream[Res]) error) {
	procedure := m.Procedure(method)
	m.mux.Handle(procedure, connect.NewServerStreamHandler(procedure, fn, m.options...))
}

// ServiceManager accumulates services before the server starts.
type ServiceManager struct {
	s []Service
}

// size is not max size, but initial allocation size for the slice
func NewServiceManager(size int) *ServiceManager {
	return &ServiceManager{
		s: make([]Service, 0, size),
	}
}

func (sm *ServiceManager) AddService(s *Service, e error) error {
	if e != nil {
		return e
	}
	if s == nil {
		return errors.New("api: nil service")
	}
	sm.s = append(sm.s, *s)
	return nil
}

func (sm *ServiceManager) GetServices() []Service {
	return sm.s
}
