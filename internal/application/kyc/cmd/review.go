package kyccmd

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

type Approve struct {
	RequestID  kyc.ID
	ReviewerID user.ID
}

type ApproveHandler struct {
	tracer   trace.Tracer
	repo     Repo
	userRepo UserRepo
}

type ApproveHandlerArgs struct {
	Tracer   trace.Tracer
	Repo     Repo
	UserRepo UserRepo
}

func NewApproveHandler(args ApproveHandlerArgs) *ApproveHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	return &ApproveHandler{
		tracer:   args.Tracer,
		repo:     args.Repo,
		userRepo: args.UserRepo,
	}
}

// Handle approves a pending request and upgrades the applicant's role to the
// one implied by the document type.
func (h *ApproveHandler) Handle(ctx context.Context, cmd *Approve) error {
	const op = "kyccmd.ApproveHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ApproveHandler.Handle", trace.WithAttributes(
		attribute.String("kyc.request_id", cmd.RequestID.String()),
		attribute.String("kyc.reviewer_id", cmd.ReviewerID.String()),
	))
	defer span.End()

	var applicantID user.ID
	var targetRole = kyc.DocumentNationalID.TargetRole()

	err := h.repo.UpdateRequest(ctx, cmd.RequestID, func(ctx context.Context, req *kyc.Request) error {
		if err := req.Approve(cmd.ReviewerID); err != nil {
			return err
		}
		applicantID = req.UserID()
		targetRole = req.DocumentType().TargetRole()
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to approve kyc request")
		if errors.Is(err, kyc.ErrAlreadyReviewed) {
			return ErrAlreadyReviewed.WithCause(err)
		}
		return errorx.Wrap(err, op)
	}

	err = h.userRepo.UpdateUser(ctx, applicantID, func(ctx context.Context, u *user.User) error {
		return u.ChangeRole(targetRole, cmd.ReviewerID)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to upgrade applicant role")
		return errorx.Wrap(err, op)
	}
	span.AddEvent("applicant role upgraded", trace.WithAttributes(
		attribute.String("user.id", applicantID.String()),
		attribute.String("user.role", targetRole.String()),
	))

	return nil
}

type Reject struct {
	RequestID  kyc.ID
	ReviewerID user.ID
	Reason     string
}

type RejectHandler struct {
	tracer trace.Tracer
	repo   Repo
}

type RejectHandlerArgs struct {
	Tracer trace.Tracer
	Repo   Repo
}

func NewRejectHandler(args RejectHandlerArgs) *RejectHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	return &RejectHandler{
		tracer: args.Tracer,
		repo:   args.Repo,
	}
}

func (h *RejectHandler) Handle(ctx context.Context, cmd *Reject) error {
	const op = "kyccmd.RejectHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "RejectHandler.Handle", trace.WithAttributes(
		attribute.String("kyc.request_id", cmd.RequestID.String()),
		attribute.String("kyc.reviewer_id", cmd.ReviewerID.String()),
	))
	defer span.End()

	err := h.repo.UpdateRequest(ctx, cmd.RequestID, func(ctx context.Context, req *kyc.Request) error {
		return req.Reject(cmd.ReviewerID, cmd.Reason)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to reject kyc request")
		if errors.Is(err, kyc.ErrAlreadyReviewed) {
			return ErrAlreadyReviewed.WithCause(err)
		}
		return errorx.Wrap(err, op)
	}

	return nil
}
