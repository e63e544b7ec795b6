package kycquery

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

var tracer = otel.Tracer("redacok/internal/application/kyc/query")

type Repo interface {
	GetLatestRequestByUserID(ctx context.Context, userID user.ID) (*kyc.Request, error)
	ListRequests(ctx context.Context, status *kyc.Status) ([]*kyc.Request, error)
}

type GetHandler struct {
	tracer trace.Tracer
	repo   Repo
}

type GetHandlerArgs struct {
	Tracer trace.Tracer
	Repo   Repo
}

func NewGetHandler(args GetHandlerArgs) *GetHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	return &GetHandler{
		tracer: args.Tracer,
		repo:   args.Repo,
	}
}

// Mine returns the caller's most recent request.
func (h *GetHandler) Mine(ctx context.Context, userID user.ID) (*kyc.Request, error) {
	const op = "kycquery.GetHandler.Mine"
	ctx, span := h.tracer.Start(ctx, "GetHandler.Mine", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	req, err := h.repo.GetLatestRequestByUserID(ctx, userID)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get kyc request")
		return nil, errorx.Wrap(err, op)
	}
	return req, nil
}

// List returns requests for review, optionally filtered by status.
func (h *GetHandler) List(ctx context.Context, status *kyc.Status) ([]*kyc.Request, error) {
	const op = "kycquery.GetHandler.List"
	ctx, span := h.tracer.Start(ctx, "GetHandler.List")
	defer span.End()

	if status != nil {
		span.SetAttributes(attribute.String("kyc.status", string(*status)))
	}

	reqs, err := h.repo.ListRequests(ctx, status)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to list kyc requests")
		return nil, errorx.Wrap(err, op)
	}
	return reqs, nil
}
