package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/ARUMANDESU/validation"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/application/access"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/pkg/ctxs"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/httpx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

const AccessJWTCookie = "redacok_access"

var (
	tracer = otel.Tracer("redacok/internal/ports/http/middlewares")
	logger = otelslog.NewLogger("redacok/internal/ports/http/middlewares")
)

// ClaimsParser turns a raw access token into a session identity.
type ClaimsParser interface {
	ParseAccessClaims(tokenString string) (access.Session, error)
}

// ProfileGetter loads the full profile behind a session for guards that need
// more than the token claims.
type ProfileGetter interface {
	GetUserByID(ctx context.Context, id user.ID) (*user.User, error)
}

type Middleware struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	claims     ClaimsParser
	profiles   ProfileGetter
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Claims     ClaimsParser
	Profiles   ProfileGetter
	Errhandler *httpx.ErrorHandler
}

func NewMiddleware(args Args) *Middleware {
	m := &Middleware{
		tracer:     args.Tracer,
		logger:     args.Logger,
		claims:     args.Claims,
		profiles:   args.Profiles,
		errhandler: args.Errhandler,
	}

	if m.tracer == nil {
		m.tracer = tracer
	}
	if m.logger == nil {
		m.logger = logger
	}
	if m.claims == nil {
		panic("claims parser is required for auth middleware")
	}
	if m.errhandler == nil {
		m.errhandler = httpx.NewErrorHandler()
	}
	return m
}

// Auth authenticates the request from the access token cookie and puts the
// session identity on the context. Without a valid token the request is
// redirected to sign-in with the requested path as callbackUrl.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "AuthMiddleware")
		defer span.End()

		accessCookie, err := r.Cookie(AccessJWTCookie)
		if err != nil {
			m.redirect(w, r, span, access.CheckAccess(access.CheckArgs{RequestedPath: r.URL.Path}))
			return
		}

		// A malformed or expired token is the same as no session: the client
		// gets the sign-in redirect, not an error body.
		err = validation.Validate(accessCookie.Value, validation.Required, validation.Length(1, 1000))
		if err != nil {
			otelx.RecordSpanError(span, err, "invalid access token cookie")
			m.redirect(w, r, span, access.CheckAccess(access.CheckArgs{RequestedPath: r.URL.Path}))
			return
		}

		session, err := m.claims.ParseAccessClaims(accessCookie.Value)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to parse access token")
			m.redirect(w, r, span, access.CheckAccess(access.CheckArgs{RequestedPath: r.URL.Path}))
			return
		}

		ctx = ctxs.WithUser(ctx, &ctxs.User{
			ID:   session.UserID,
			Role: session.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only the listed roles past. Must run after Auth.
func (m *Middleware) RequireRole(roles ...role.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "RequireRoleMiddleware")
			defer span.End()

			ctxUser, ok := ctxs.UserFromCtx(ctx)
			if !ok {
				err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
				m.errhandler.HandleError(w, r, span, err, "missing session")
				return
			}

			if !slices.Contains(roles, ctxUser.Role) {
				required := roles[0]
				decision := access.CheckAccess(access.CheckArgs{
					Session:       &access.Session{UserID: ctxUser.ID, Role: ctxUser.Role},
					RequiredRole:  &required,
					RequestedPath: r.URL.Path,
				})
				m.redirect(w, r, span, decision)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCompleteProfile gates dashboard routes: the profile must exist and
// have a currency configured, otherwise the client is sent to the onboarding
// wizard. Must run after Auth.
func (m *Middleware) RequireCompleteProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "RequireCompleteProfileMiddleware")
		defer span.End()

		ctxUser, ok := ctxs.UserFromCtx(ctx)
		if !ok {
			err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
			m.errhandler.HandleError(w, r, span, err, "missing session")
			return
		}

		profile, err := m.profiles.GetUserByID(ctx, ctxUser.ID)
		if err != nil && !errorx.IsNotFound(err) {
			m.errhandler.HandleError(w, r, span, err, "failed to load profile")
			return
		}

		decision := access.CheckAccess(access.CheckArgs{
			Session:       &access.Session{UserID: ctxUser.ID, Role: ctxUser.Role},
			Profile:       profile,
			Area:          access.AreaDashboard,
			RequestedPath: r.URL.Path,
		})
		if !decision.Allowed {
			m.redirect(w, r, span, decision)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// redirect reports a denied access decision. API clients get the target path
// in the body instead of a 3xx so SPAs can route on it.
func (m *Middleware) redirect(w http.ResponseWriter, r *http.Request, span trace.Span, decision access.Decision) {
	if decision.Allowed {
		return
	}
	span.AddEvent("access denied")

	status := http.StatusForbidden
	if strings.HasPrefix(decision.RedirectPath, access.SignInPath) {
		status = http.StatusUnauthorized
	}

	err := httpx.WriteJSON(w, status, httpx.Envelope{"redirect": decision.RedirectPath}, nil)
	if err != nil {
		m.logger.ErrorContext(r.Context(), "failed to write redirect response", slog.String("error", err.Error()))
	}
}
