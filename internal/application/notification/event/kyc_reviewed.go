package notifevent

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/mail"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/sms"
)

// HandleKycApproved notifies the applicant on every channel they have.
func (h *Handler) HandleKycApproved(ctx context.Context, e *kyc.KycApproved) error {
	if e == nil {
		return nil
	}

	l := h.logger.With(
		slog.String("event", "KycApproved"),
		slog.String("user.id", e.UserID.String()),
		slog.String("kyc.request_id", e.RequestID.String()))

	ctx, span := h.tracer.Start(
		ctx,
		"Handler.HandleKycApproved",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("user.id", e.UserID.String()),
			attribute.String("kyc.request_id", e.RequestID.String()),
			attribute.String("kyc.new_role", e.NewRole.String())),
	)
	defer span.End()

	subject := "Your identity verification was approved"
	body := fmt.Sprintf(
		"Good news!\n\nYour identity verification has been approved and your "+
			"account has been upgraded to %s.\n\nThe Redacok Team",
		e.NewRole,
	)
	smsBody := fmt.Sprintf("Redacok: your identity verification was approved. Your account is now %s.", e.NewRole)

	return h.notifyApplicant(ctx, l, span, e.UserID, subject, body, smsBody)
}

// HandleKycRejected notifies the applicant with the rejection reason.
func (h *Handler) HandleKycRejected(ctx context.Context, e *kyc.KycRejected) error {
	if e == nil {
		return nil
	}

	l := h.logger.With(
		slog.String("event", "KycRejected"),
		slog.String("user.id", e.UserID.String()),
		slog.String("kyc.request_id", e.RequestID.String()))

	ctx, span := h.tracer.Start(
		ctx,
		"Handler.HandleKycRejected",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("user.id", e.UserID.String()),
			attribute.String("kyc.request_id", e.RequestID.String())),
	)
	defer span.End()

	subject := "Your identity verification was rejected"
	body := fmt.Sprintf(
		"Unfortunately your identity verification was rejected.\n\nReason: %s\n\n"+
			"You can submit a new request with corrected documents.\n\nThe Redacok Team",
		e.Reason,
	)
	smsBody := fmt.Sprintf("Redacok: your identity verification was rejected. Reason: %s", e.Reason)

	return h.notifyApplicant(ctx, l, span, e.UserID, subject, body, smsBody)
}

func (h *Handler) notifyApplicant(
	ctx context.Context,
	l *slog.Logger,
	span trace.Span,
	userID user.ID,
	subject, body, smsBody string,
) error {
	u, err := h.usergetter.GetUserByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get applicant")
		l.ErrorContext(ctx, "failed to get applicant", slog.Any("error", err))
		return err
	}

	if u.Email() != "" {
		payload := mail.Payload{To: u.Email(), Subject: subject, Body: body}
		if err := h.mailsender.SendMail(ctx, payload); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to send review email")
			l.ErrorContext(ctx, "failed to send review email", slog.Any("error", err))
			return err
		}
	}

	if u.Phone() != "" {
		msg := sms.Message{To: u.Phone(), Body: smsBody}
		if err := h.smssender.SendSMS(ctx, msg); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to send review sms")
			l.ErrorContext(ctx, "failed to send review sms", slog.Any("error", err))
			return err
		}
	}

	return nil
}
