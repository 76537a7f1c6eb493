//nolint:revive // exported
package rauth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwauth"
	"github.com/the-dev-tools/folio/pkg/stoken"
)

const ServiceName = "folio.auth.v1.AuthService"

// AdminSubject is the only subject a token is ever issued for.
const AdminSubject = "admin"

var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type VerifyRequest struct{}

type VerifyResponse struct {
	Valid            bool      `json:"valid"`
	Subject          string    `json:"subject,omitempty"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RemainingSeconds int64     `json:"remainingSeconds"`
}

type AuthServiceRPC struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

func New(passwordHash string, secret []byte, ttl time.Duration, logger *slog.Logger) *AuthServiceRPC {
	if ttl <= 0 {
		ttl = stoken.DefaultAdminTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceRPC{
		passwordHash: []byte(passwordHash),
		secret:       secret,
		ttl:          ttl,
		now:          time.Now,
		logger:       logger,
	}
}

func CreateService(srv *AuthServiceRPC, options []connect.HandlerOption) (*api.Service, error) {
	mux := api.NewServiceMux(ServiceName, options)
	api.HandleUnary(mux, "Login", srv.Login)
	api.HandleUnary(mux, "Verify", srv.Verify)
	return mux.Service(), nil
}

// HashPassword produces the value expected in the admin password hash setting.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *AuthServiceRPC) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	if req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("password is required"))
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(req.Msg.Password)); err != nil {
		c.logger.WarnContext(ctx, "Admin login failed")
		return nil, connect.NewError(connect.CodeUnauthenticated, ErrInvalidCredentials)
	}

	token, err := stoken.NewJWT(AdminSubject, stoken.AdminToken, c.ttl, c.secret)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	c.logger.InfoContext(ctx, "Admin logged in")
	return connect.NewResponse(&LoginResponse{
		Token:     token,
		ExpiresAt: c.now().Add(c.ttl).UTC(),
	}), nil
}

// Verify reports whether the bearer token of the request is still valid. An
// invalid token is a normal answer, not an error.
func (c *AuthServiceRPC) Verify(ctx context.Context, req *connect.Request[VerifyRequest]) (*connect.Response[VerifyResponse], error) {
	claims, err := mwauth.ValidateHeader(req.Header(), c.secret)
	if err != nil {
		c.logger.DebugContext(ctx, "Token verification failed", "error", err)
		return connect.NewResponse(&VerifyResponse{Valid: false}), nil
	}
	resp := &VerifyResponse{
		Valid:            true,
		Subject:          claims.Subject,
		RemainingSeconds: int64(stoken.Remaining(claims, c.now()).Seconds()),
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.UTC()
	}
	return connect.NewResponse(resp), nil
}
