package authhttp

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	authapp "github.com/redacok/redacok-backend/internal/application/auth"
	"github.com/redacok/redacok-backend/internal/ports/http/middlewares"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/httpx"
	"github.com/redacok/redacok-backend/pkg/logging"
	"github.com/redacok/redacok-backend/pkg/otelx"
	"github.com/redacok/redacok-backend/pkg/sanitizex"
	"github.com/redacok/redacok-backend/pkg/validationx"
)

const (
	AccessJWTCookie   = middlewares.AccessJWTCookie
	RefreshJWTCookie  = "redacok_refresh"
	RefreshCookiePath = "/v1/auth/refresh"
)

var (
	tracer = otel.Tracer("redacok/internal/ports/http/auth")
	logger = otelslog.NewLogger("redacok/internal/ports/http/auth")
)

type HTTP struct {
	tracer       trace.Tracer
	logger       *slog.Logger
	app          *authapp.App
	errhandler   *httpx.ErrorHandler
	cookiedomain string
}

type Args struct {
	Tracer       trace.Tracer
	Logger       *slog.Logger
	App          *authapp.App
	Errhandler   *httpx.ErrorHandler
	CookieDomain string
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}
	if args.Errhandler == nil {
		args.Errhandler = httpx.NewErrorHandler()
	}

	return &HTTP{
		tracer:       args.Tracer,
		logger:       args.Logger,
		app:          args.App,
		errhandler:   args.Errhandler,
		cookiedomain: args.CookieDomain,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
	})
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Sanitized() {
	r.Name = sanitizex.CleanSingleLine(r.Name)
	r.Email = strings.ToLower(sanitizex.CleanSingleLine(r.Email))
	r.Phone = sanitizex.CleanPhone(r.Phone)
	r.Password = strings.TrimSpace(r.Password)
}

func (r *RegisterRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"email": logging.RedactEmail(r.Email),
		"phone": logging.RedactPhone(r.Phone),
	})
}

func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validationx.NameRules...),
		validation.Field(&r.Email,
			validation.Required.When(r.Phone == "").Error("email or phone is required"),
			validation.When(r.Email != "", is.Email, validation.Length(5, 255)),
		),
		validation.Field(&r.Phone,
			validation.When(r.Phone != "", validation.Length(8, 16), validationx.IsPhone),
		),
		validation.Field(&r.Password, validationx.PasswordRules...),
	)
}

func (h *HTTP) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Register")
	defer span.End()

	var req RegisterRequest
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

	res, err := h.app.RegisterHandle(ctx, authapp.Register{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to register user")
		return
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{"user_id": res.UserID})
}

type LoginRequest struct {
	EmailOrPhone string `json:"email_or_phone"`
	Password     string `json:"password"`
}

func (r *LoginRequest) Sanitized() {
	r.EmailOrPhone = sanitizex.CleanSingleLine(r.EmailOrPhone)
	if r.IsEmail() {
		r.EmailOrPhone = strings.ToLower(r.EmailOrPhone)
	} else {
		r.EmailOrPhone = sanitizex.CleanPhone(r.EmailOrPhone)
	}
	r.Password = strings.TrimSpace(r.Password)
}

func (r *LoginRequest) IsEmail() bool {
	return strings.Contains(r.EmailOrPhone, "@")
}

func (r *LoginRequest) SetSpanAttrs(span trace.Span) {
	if r.IsEmail() {
		otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.EmailOrPhone)})
	} else {
		otelx.SetSpanAttrs(span, map[string]any{"phone": logging.RedactPhone(r.EmailOrPhone)})
	}
}

func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EmailOrPhone, validation.Required, validation.Length(5, 255)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
	)
}

func (h *HTTP) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Login")
	defer span.End()

	var req LoginRequest
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

	res, err := h.app.LoginHandle(ctx, authapp.Login{
		EmailOrPhone: req.EmailOrPhone,
		IsEmail:      req.IsEmail(),
		Password:     req.Password,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to login")
		return
	}

	h.setTokenCookies(w, res)

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"landing_path": res.LandingPath})
}

func (h *HTTP) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Refresh")
	defer span.End()

	refreshCookie, err := r.Cookie(RefreshJWTCookie)
	if err != nil {
		err = errorx.NewInvalidCredentials().WithCause(err)
		h.errhandler.HandleError(w, r, span, err, "failed to get refresh token cookie")
		return
	}

	res, err := h.app.RefreshHandle(ctx, authapp.Refresh{RefreshToken: refreshCookie.Value})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to refresh tokens")
		return
	}

	h.setTokenCookies(w, res)

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"landing_path": res.LandingPath})
}

func (h *HTTP) Logout(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "Logout")
	defer span.End()

	http.SetCookie(w, &http.Cookie{
		Name:   AccessJWTCookie,
		Path:   "/",
		Domain: h.cookiedomain,
		MaxAge: -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:   RefreshJWTCookie,
		Path:   RefreshCookiePath,
		Domain: h.cookiedomain,
		MaxAge: -1,
	})
	span.AddEvent("User logged out", trace.WithAttributes(
		attribute.String("cookie_domain", h.cookiedomain),
	))

	httpx.Success(w, r, http.StatusOK, nil)
}

func (h *HTTP) setTokenCookies(w http.ResponseWriter, res authapp.LoginResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessJWTCookie,
		Value:    res.AccessToken,
		Path:     "/",
		Domain:   h.cookiedomain,
		Expires:  time.Now().Add(res.AccessTokenExp).UTC(),
		MaxAge:   int(res.AccessTokenExp.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshJWTCookie,
		Value:    res.RefreshToken,
		Path:     RefreshCookiePath,
		Domain:   h.cookiedomain,
		Expires:  time.Now().Add(res.RefreshTokenExp).UTC(),
		MaxAge:   int(res.RefreshTokenExp.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
