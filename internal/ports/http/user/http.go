package userhttp

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	userapp "github.com/redacok/redacok-backend/internal/application/user"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/ports/http/middlewares"
	"github.com/redacok/redacok-backend/pkg/ctxs"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/httpx"
	"github.com/redacok/redacok-backend/pkg/otelx"
	"github.com/redacok/redacok-backend/pkg/sanitizex"
	"github.com/redacok/redacok-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("redacok/internal/ports/http/user")
	logger = otelslog.NewLogger("redacok/internal/ports/http/user")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	app        *userapp.App
	middleware *middlewares.Middleware
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *userapp.App
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
		app:        args.App,
		middleware: args.Middleware,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/users", func(r chi.Router) {
		r.Use(h.middleware.Auth)

		r.Get("/me", h.GetMe)
		r.Get("/me/settings", h.GetSettings)
		r.Patch("/me/settings", h.UpdateSettings)
	})
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Currency  string    `json:"currency,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID().String(),
		Name:      u.Name(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		Currency:  u.Currency(),
		CreatedAt: u.CreatedAt(),
	}
}

func (h *HTTP) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetMe")
	defer span.End()

	ctxUser, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	otelx.SetSpanAttrs(span, map[string]any{"user_id": ctxUser.ID.String()})

	u, err := h.app.GetMe(ctx, ctxUser.ID)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"user": NewUserResponse(u)})
}

func (h *HTTP) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetSettings")
	defer span.End()

	ctxUser, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	otelx.SetSpanAttrs(span, map[string]any{"user_id": ctxUser.ID.String()})

	settings, err := h.app.GetSettings(ctx, ctxUser.ID)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user settings")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"settings": settings})
}

type UpdateSettingsRequest struct {
	Currency string `json:"currency"`
}

func (r *UpdateSettingsRequest) Sanitized() {
	r.Currency = strings.ToUpper(sanitizex.CleanSingleLine(r.Currency))
}

func (r *UpdateSettingsRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"currency": r.Currency})
}

func (r *UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Currency, validationx.CurrencyRules...),
	)
}

func (h *HTTP) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateSettings")
	defer span.End()

	ctxUser, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}

	var req UpdateSettingsRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	settings, err := h.app.UpdateSettingsHandle(ctx, userapp.UpdateSettings{
		UserID:   ctxUser.ID,
		Currency: req.Currency,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to update user settings")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"settings": settings})
}
