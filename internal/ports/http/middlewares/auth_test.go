package middlewares_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redacok/redacok-backend/internal/application/access"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/ports/http/middlewares"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/tests/builders"
)

type stubClaims struct {
	session access.Session
	err     error
}

func (s *stubClaims) ParseAccessClaims(string) (access.Session, error) {
	return s.session, s.err
}

type stubProfiles struct {
	user *user.User
	err  error
}

func (s *stubProfiles) GetUserByID(context.Context, user.ID) (*user.User, error) {
	return s.user, s.err
}

func newMiddleware(t *testing.T, claims *stubClaims, profiles *stubProfiles) *middlewares.Middleware {
	t.Helper()
	return middlewares.NewMiddleware(middlewares.Args{
		Claims:   claims,
		Profiles: profiles,
	})
}

func nextHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func redirectPath(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Redirect
}

func requestWithCookie(path string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.AddCookie(&http.Cookie{Name: middlewares.AccessJWTCookie, Value: "token"})
	return r
}

func TestAuth(t *testing.T) {
	t.Parallel()

	t.Run("missing cookie redirects to sign-in", func(t *testing.T) {
		t.Parallel()

		m := newMiddleware(t, &stubClaims{}, &stubProfiles{})
		called := false
		rec := httptest.NewRecorder()

		m.Auth(nextHandler(&called)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/fees/quote", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/sign-in?callbackUrl=%2Fv1%2Ffees%2Fquote", redirectPath(t, rec))
	})

	t.Run("unparseable token redirects like a missing one", func(t *testing.T) {
		t.Parallel()

		m := newMiddleware(t, &stubClaims{err: errorx.NewInvalidCredentials()}, &stubProfiles{})
		called := false
		rec := httptest.NewRecorder()

		m.Auth(nextHandler(&called)).ServeHTTP(rec, requestWithCookie("/v1/users/me"))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/sign-in?callbackUrl=%2Fv1%2Fusers%2Fme", redirectPath(t, rec))
	})

	t.Run("valid token passes the session through", func(t *testing.T) {
		t.Parallel()

		u := builders.NewUserBuilder().Build()
		m := newMiddleware(t, &stubClaims{session: access.Session{UserID: u.ID(), Role: u.Role()}}, &stubProfiles{})
		called := false
		rec := httptest.NewRecorder()

		m.Auth(nextHandler(&called)).ServeHTTP(rec, requestWithCookie("/v1/users/me"))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireCompleteProfile(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, profiles *stubProfiles, u *user.User) (*httptest.ResponseRecorder, *bool) {
		t.Helper()

		claims := &stubClaims{session: access.Session{UserID: u.ID(), Role: u.Role()}}
		m := newMiddleware(t, claims, profiles)

		called := false
		rec := httptest.NewRecorder()
		m.Auth(m.RequireCompleteProfile(nextHandler(&called))).
			ServeHTTP(rec, requestWithCookie("/v1/fees/quote"))
		return rec, &called
	}

	t.Run("unset currency redirects to wizard", func(t *testing.T) {
		t.Parallel()

		u := builders.NewUserBuilder().WithCurrency("").Build()
		rec, called := serve(t, &stubProfiles{user: u}, u)

		assert.False(t, *called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, access.WizardPath, redirectPath(t, rec))
	})

	t.Run("missing profile redirects home", func(t *testing.T) {
		t.Parallel()

		u := builders.NewUserBuilder().Build()
		rec, called := serve(t, &stubProfiles{err: errorx.NewNotFound()}, u)

		assert.False(t, *called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, access.HomePath, redirectPath(t, rec))
	})

	t.Run("complete profile passes", func(t *testing.T) {
		t.Parallel()

		u := builders.NewUserBuilder().WithCurrency("XAF").Build()
		rec, called := serve(t, &stubProfiles{user: u}, u)

		assert.True(t, *called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("repo failure is an error, not a redirect", func(t *testing.T) {
		t.Parallel()

		u := builders.NewUserBuilder().Build()
		rec, called := serve(t, &stubProfiles{err: errors.New("connection refused")}, u)

		assert.False(t, *called)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
