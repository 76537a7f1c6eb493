package rauth

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/the-dev-tools/folio/internal/api/middleware/mwauth"
	"github.com/the-dev-tools/folio/pkg/stoken"
)

var secret = []byte("rauth-secret")

func newService(t *testing.T) *AuthServiceRPC {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	return New(string(hash), secret, time.Hour, nil)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	srv := newService(t)
	ctx := context.Background()

	resp, err := srv.Login(ctx, connect.NewRequest(&LoginRequest{Password: "hunter2"}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	require.WithinDuration(t, time.Now().Add(time.Hour), resp.Msg.ExpiresAt, time.Minute)

	claims, err := stoken.ValidateJWT(resp.Msg.Token, stoken.AdminToken, secret)
	require.NoError(t, err)
	require.Equal(t, AdminSubject, claims.Subject)

	_, err = srv.Login(ctx, connect.NewRequest(&LoginRequest{Password: "wrong"}))
	require.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = srv.Login(ctx, connect.NewRequest(&LoginRequest{}))
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestVerify(t *testing.T) {
	t.Parallel()
	srv := newService(t)
	ctx := context.Background()

	token, err := stoken.NewJWT(AdminSubject, stoken.AdminToken, 10*time.Minute, secret)
	require.NoError(t, err)

	req := connect.NewRequest(&VerifyRequest{})
	req.Header().Set(mwauth.TokenHeaderKey, "Bearer "+token)
	resp, err := srv.Verify(ctx, req)
	require.NoError(t, err)
	require.True(t, resp.Msg.Valid)
	require.InDelta(t, 600, resp.Msg.RemainingSeconds, 5)

	resp, err = srv.Verify(ctx, connect.NewRequest(&VerifyRequest{}))
	require.NoError(t, err)
	require.False(t, resp.Msg.Valid)
}

func TestHashPassword(t *testing.T) {
	t.Parallel()
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}
