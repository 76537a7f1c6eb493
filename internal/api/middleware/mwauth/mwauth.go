//nolint:revive // exported
package mwauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/the-dev-tools/folio/pkg/stoken"
)

type ContextKey int

const (
	SubjectKeyCtx ContextKey = iota
)

const TokenHeaderKey = "Authorization"

var ErrNoSubject = errors.New("no authenticated subject in context")

type authInterceptor struct {
	secret []byte
	logger *slog.Logger
}

var _ connect.Interceptor = (*authInterceptor)(nil)

// NewAuthInterceptor guards admin services: every request must carry a valid
// admin bearer token.
func NewAuthInterceptor(secret []byte, logger *slog.Logger) connect.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &authInterceptor{secret: secret, logger: logger}
}

func (i *authInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return connect.UnaryFunc(func(
		ctx context.Context,
		req connect.AnyRequest,
	) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		authed, err := i.authenticate(ctx, req.Header())
		if err != nil {
			return nil, err
		}
		return next(authed, req)
	})
}

func (*authInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *authInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return connect.StreamingHandlerFunc(func(
		ctx context.Context,
		conn connect.StreamingHandlerConn,
	) error {
		authed, err := i.authenticate(ctx, conn.RequestHeader())
		if err != nil {
			return err
		}
		return next(authed, conn)
	})
}

func (i *authInterceptor) authenticate(ctx context.Context, header http.Header) (context.Context, error) {
	claims, err := ValidateHeader(header, i.secret)
	if err != nil {
		i.logger.WarnContext(ctx, "Rejected admin request", "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	return CreateAuthedContext(ctx, claims.Subject), nil
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(header http.Header) (string, error) {
	headerValue := header.Get(TokenHeaderKey)
	if headerValue == "" {
		return "", stoken.ErrMissingToken
	}
	token, ok := strings.CutPrefix(headerValue, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: malformed authorization header", stoken.ErrInvalidToken)
	}
	return strings.TrimSpace(token), nil
}

func ValidateHeader(header http.Header, secret []byte) (*stoken.DefaultClaims, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}
	return stoken.ValidateJWT(token, stoken.AdminToken, secret)
}

func CreateAuthedContext(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectKeyCtx, subject)
}

func GetContextSubject(ctx context.Context) (string, error) {
	subject, ok := ctx.Value(SubjectKeyCtx).(string)
	if !ok || subject == "" {
		return "", ErrNoSubject
	}
	return subject, nil
}

func CrashInterceptor(ctx context.Context, req connect.AnyRequest, next connect.UnaryFunc) (resp connect.AnyResponse, err error) {
	if req.Spec().IsClient {
		return next(ctx, req)
	}

	defer func() {
		// recover from panic if one occurred and return an error
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Handler panicked", "procedure", req.Spec().Procedure, "panic", r)
			err = connect.NewError(connect.CodeInternal, fmt.Errorf("panic: %v", r))
			resp = nil
		}
	}()
	return next(ctx, req)
}

func NewCrashInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return CrashInterceptor(ctx, req, next)
		}
	}
}
