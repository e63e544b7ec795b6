package accesshttp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/application/access"
	"github.com/redacok/redacok-backend/internal/ports/http/middlewares"
	"github.com/redacok/redacok-backend/pkg/ctxs"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/httpx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("redacok/internal/ports/http/access")
	logger = otelslog.NewLogger("redacok/internal/ports/http/access")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	middleware *middlewares.Middleware
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Middleware *middlewares.Middleware
	Errhandler *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		middleware: args.Middleware,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/access", func(r chi.Router) {
		r.Use(h.middleware.Auth)
		r.Use(h.middleware.RequireCompleteProfile)

		r.Get("/landing", h.Landing)
	})
}

// Landing resolves the dashboard entry path for the session's role, so the
// client routes freshly signed-in users without hardcoding the role map.
func (h *HTTP) Landing(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Landing")
	defer span.End()

	ctxUser, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	otelx.SetSpanAttrs(span, map[string]any{
		"user_id": ctxUser.ID.String(),
		"role":    ctxUser.Role.String(),
	})

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{
		"landing_path": access.ResolveRoleLanding(ctxUser.Role),
	})
}
