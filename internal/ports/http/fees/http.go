package feeshttp

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	feesapp "github.com/redacok/redacok-backend/internal/application/fees"
	"github.com/redacok/redacok-backend/internal/domain/fee"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/internal/ports/http/middlewares"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/httpx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("redacok/internal/ports/http/fees")
	logger = otelslog.NewLogger("redacok/internal/ports/http/fees")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	app        *feesapp.App
	middleware *middlewares.Middleware
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *feesapp.App
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
	r.Route("/v1/fees", func(r chi.Router) {
		r.Use(h.middleware.Auth)
		r.Use(h.middleware.RequireCompleteProfile)

		r.Get("/quote", h.Quote)
	})

	r.Route("/v1/admin/fee-ranges", func(r chi.Router) {
		r.Use(h.middleware.Auth)
		r.Use(h.middleware.RequireRole(role.Admin))

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
	})
}

type RangeResponse struct {
	ID            string    `json:"id"`
	MinAmount     float64   `json:"min_amount"`
	MaxAmount     float64   `json:"max_amount"`
	FeePercentage float64   `json:"fee_percentage"`
	FixedFee      float64   `json:"fixed_fee"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewRangeResponse(r *fee.Range) RangeResponse {
	return RangeResponse{
		ID:            r.ID().String(),
		MinAmount:     r.MinAmount(),
		MaxAmount:     r.MaxAmount(),
		FeePercentage: r.FeePercentage(),
		FixedFee:      r.FixedFee(),
		IsActive:      r.IsActive(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
}

func (h *HTTP) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Quote")
	defer span.End()

	raw := r.URL.Query().Get("amount")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		err = errorx.NewValidationFieldFailed("amount").WithCause(err)
		h.errhandler.HandleError(w, r, span, err, "invalid amount")
		return
	}
	// ParseFloat accepts "NaN" and "Inf", which slip past the sign check.
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		err = errorx.NewValidationFieldFailed("amount").WithCause(errors.New("amount is not a finite non-negative number"))
		h.errhandler.HandleError(w, r, span, err, "invalid amount")
		return
	}
	otelx.SetSpanAttrs(span, map[string]any{"amount": amount})

	feeAmount, err := h.app.CalculateFee(ctx, amount)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to calculate fee")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{
		"amount": amount,
		"fee":    feeAmount,
		"total":  amount + feeAmount,
	})
}

func (h *HTTP) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "List")
	defer span.End()

	ranges, err := h.app.ListRanges(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to list fee ranges")
		return
	}

	responses := make([]RangeResponse, 0, len(ranges))
	for _, rng := range ranges {
		responses = append(responses, NewRangeResponse(rng))
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"fee_ranges": responses})
}

type CreateRangeRequest struct {
	MinAmount     float64 `json:"min_amount"`
	MaxAmount     float64 `json:"max_amount"`
	FeePercentage float64 `json:"fee_percentage"`
	FixedFee      float64 `json:"fixed_fee"`
	IsActive      *bool   `json:"is_active"`
}

func (r *CreateRangeRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"min_amount": r.MinAmount,
		"max_amount": r.MaxAmount,
	})
}

func (r *CreateRangeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.MinAmount, validation.Min(0.0)),
		validation.Field(&r.MaxAmount, validation.Min(0.0)),
		validation.Field(&r.FeePercentage, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&r.FixedFee, validation.Min(0.0)),
	)
}

func (h *HTTP) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Create")
	defer span.End()

	var req CreateRangeRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rng, err := h.app.CreateRangeHandle(ctx, feesapp.CreateRange{
		MinAmount:     req.MinAmount,
		MaxAmount:     req.MaxAmount,
		FeePercentage: req.FeePercentage,
		FixedFee:      req.FixedFee,
		IsActive:      isActive,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to create fee range")
		return
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{"fee_range": NewRangeResponse(rng)})
}

type UpdateRangeRequest struct {
	MinAmount     *float64 `json:"min_amount"`
	MaxAmount     *float64 `json:"max_amount"`
	FeePercentage *float64 `json:"fee_percentage"`
	FixedFee      *float64 `json:"fixed_fee"`
	IsActive      *bool    `json:"is_active"`
}

func (r *UpdateRangeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.MinAmount, validation.Min(0.0)),
		validation.Field(&r.MaxAmount, validation.Min(0.0)),
		validation.Field(&r.FeePercentage, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&r.FixedFee, validation.Min(0.0)),
	)
}

func (h *HTTP) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Update")
	defer span.End()

	raw := chi.URLParam(r, "id")
	if err := validation.Validate(raw, validation.Required, is.UUIDv4); err != nil {
		err = errorx.NewValidationFieldFailed("id").WithCause(err)
		h.errhandler.HandleError(w, r, span, err, "invalid fee range id")
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		err = errorx.NewValidationFieldFailed("id").WithCause(err)
		h.errhandler.HandleError(w, r, span, err, "invalid fee range id")
		return
	}
	otelx.SetSpanAttrs(span, map[string]any{"fee_range_id": raw})

	var req UpdateRangeRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	rng, err := h.app.UpdateRangeHandle(ctx, feesapp.UpdateRange{
		ID:            fee.ID(id),
		MinAmount:     req.MinAmount,
		MaxAmount:     req.MaxAmount,
		FeePercentage: req.FeePercentage,
		FixedFee:      req.FixedFee,
		IsActive:      req.IsActive,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to update fee range")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"fee_range": NewRangeResponse(rng)})
}
