package kychttp

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	kycapp "github.com/redacok/redacok-backend/internal/application/kyc"
	kyccmd "github.com/redacok/redacok-backend/internal/application/kyc/cmd"
	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/internal/ports/http/middlewares"
	"github.com/redacok/redacok-backend/pkg/ctxs"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/httpx"
	"github.com/redacok/redacok-backend/pkg/otelx"
	"github.com/redacok/redacok-backend/pkg/sanitizex"
)

// MaxSubmissionSize bounds the whole multipart body: scans plus form fields.
const MaxSubmissionSize = int64(kyccmd.MaxScanSize)*kyc.MaxDocumentScans + 1<<20

var (
	tracer = otel.Tracer("redacok/internal/ports/http/kyc")
	logger = otelslog.NewLogger("redacok/internal/ports/http/kyc")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *kycapp.Command
	query      *kycapp.Query
	middleware *middlewares.Middleware
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *kycapp.App
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
		cmd:        &args.App.CMD,
		query:      &args.App.Query,
		middleware: args.Middleware,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/kyc", func(r chi.Router) {
		r.Use(h.middleware.Auth)

		r.Post("/", h.Submit)
		r.Get("/mine", h.Mine)
	})

	r.Route("/v1/admin/kyc", func(r chi.Router) {
		r.Use(h.middleware.Auth)
		r.Use(h.middleware.RequireRole(role.Admin))

		r.Get("/", h.List)
		r.Post("/{id}/approve", h.Approve)
		r.Post("/{id}/reject", h.Reject)
	})
}

type RequestResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DocumentType    string    `json:"document_type"`
	DocumentNumber  string    `json:"document_number"`
	Status          string    `json:"status"`
	ReviewerID      string    `json:"reviewer_id,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewRequestResponse(req *kyc.Request) RequestResponse {
	res := RequestResponse{
		ID:              req.ID().String(),
		UserID:          req.UserID().String(),
		DocumentType:    string(req.DocumentType()),
		DocumentNumber:  req.DocumentNumber(),
		Status:          string(req.Status()),
		RejectionReason: req.RejectionReason(),
		CreatedAt:       req.CreatedAt(),
		UpdatedAt:       req.UpdatedAt(),
	}
	if !req.ReviewerID().IsZero() {
		res.ReviewerID = req.ReviewerID().String()
	}
	return res
}

func (h *HTTP) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "kyc.HTTP.Submit"
	ctx, span := h.tracer.Start(r.Context(), "Submit")
	defer span.End()

	ctxUser, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	otelx.SetSpanAttrs(span, map[string]any{"user_id": ctxUser.ID.String()})

	if err := r.ParseMultipartForm(MaxSubmissionSize); err != nil {
		err = errorx.NewInvalidRequest().WithCause(err)
		h.errhandler.HandleError(w, r, span, err, "failed to parse multipart form")
		return
	}

	documentType := sanitizex.CleanSingleLine(r.FormValue("document_type"))
	documentNumber := sanitizex.CleanSingleLine(r.FormValue("document_number"))
	otelx.SetSpanAttrs(span, map[string]any{"document_type": documentType})

	err := validation.Errors{
		"document_type": validation.Validate(documentType, validation.Required),
		"document_number": validation.Validate(documentNumber,
			validation.Required,
			validation.Length(kyc.MinDocumentNumberLen, kyc.MaxDocumentNumberLen),
		),
	}.Filter()
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate form fields")
		return
	}

	files := r.MultipartForm.File["scans"]
	if len(files) == 0 {
		err := errorx.NewValidationFieldFailed("scans").WithCause(errors.New("no scan files in form"))
		h.errhandler.HandleError(w, r, span, err, "no scan files in form")
		return
	}

	scans := make([]kyccmd.ScanFile, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			err = errorx.NewInvalidRequest().WithCause(err)
			h.errhandler.HandleError(w, r, span, err, "failed to open scan file")
			return
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				h.logger.Warn("failed to close scan file", slog.String("error", cerr.Error()))
			}
		}()

		scans = append(scans, kyccmd.ScanFile{
			File:        file,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		})
	}

	req, err := h.cmd.Submit.Handle(ctx, &kyccmd.Submit{
		UserID:         ctxUser.ID,
		DocumentType:   kyc.DocumentType(documentType),
		DocumentNumber: documentNumber,
		Scans:          scans,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to submit kyc request")
		return
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{"request": NewRequestResponse(req)})
}

func (h *HTTP) Mine(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Mine")
	defer span.End()

	ctxUser, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	otelx.SetSpanAttrs(span, map[string]any{"user_id": ctxUser.ID.String()})

	req, err := h.query.Get.Mine(ctx, ctxUser.ID)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get own kyc request")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"request": NewRequestResponse(req)})
}

func (h *HTTP) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "List")
	defer span.End()

	var status *kyc.Status
	if raw := sanitizex.CleanSingleLine(r.URL.Query().Get("status")); raw != "" {
		s := kyc.Status(raw)
		if !s.IsValid() {
			err := errorx.NewValidationFieldFailed("status").WithCause(errors.New("unknown status " + raw))
			h.errhandler.HandleError(w, r, span, err, "invalid status filter")
			return
		}
		status = &s
		otelx.SetSpanAttrs(span, map[string]any{"status": raw})
	}

	reqs, err := h.query.Get.List(ctx, status)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to list kyc requests")
		return
	}

	responses := make([]RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		responses = append(responses, NewRequestResponse(req))
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"requests": responses})
}

func (h *HTTP) Approve(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Approve")
	defer span.End()

	ctxUser, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}

	requestID, err := h.requestIDParam(r, span)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid request id")
		return
	}

	err = h.cmd.Approve.Handle(ctx, &kyccmd.Approve{
		RequestID:  requestID,
		ReviewerID: ctxUser.ID,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to approve kyc request")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequest) Sanitized() {
	r.Reason = sanitizex.CleanSingleLine(r.Reason)
}

func (r *RejectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Reason, validation.Required, validation.RuneLength(1, 500)),
	)
}

func (h *HTTP) Reject(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Reject")
	defer span.End()

	ctxUser, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		err := errorx.NewUnauthorized().WithCause(errors.New("no session on context"))
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}

	requestID, err := h.requestIDParam(r, span)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid request id")
		return
	}

	var req RejectRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	err = h.cmd.Reject.Handle(ctx, &kyccmd.Reject{
		RequestID:  requestID,
		ReviewerID: ctxUser.ID,
		Reason:     req.Reason,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to reject kyc request")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

func (h *HTTP) requestIDParam(r *http.Request, span trace.Span) (kyc.ID, error) {
	raw := chi.URLParam(r, "id")
	if err := validation.Validate(raw, validation.Required, is.UUIDv4); err != nil {
		return kyc.ID{}, errorx.NewValidationFieldFailed("id").WithCause(err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return kyc.ID{}, errorx.NewValidationFieldFailed("id").WithCause(err)
	}

	otelx.SetSpanAttrs(span, map[string]any{"request_id": raw})
	return kyc.ID(id), nil
}
