package notifevent

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/mail"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/sms"
	"github.com/redacok/redacok-backend/pkg/logging"
)

// HandleUserRegistered sends the welcome message: email when the account was
// registered with one, SMS otherwise.
func (h *Handler) HandleUserRegistered(ctx context.Context, e *user.UserRegistered) error {
	if e == nil {
		return nil
	}

	l := h.logger.With(
		slog.String("event", "UserRegistered"),
		slog.String("user.id", e.UserID.String()),
		slog.String("user.email", logging.RedactEmail(e.Email)),
		slog.String("user.phone", logging.RedactPhone(e.Phone)))

	ctx, span := h.tracer.Start(
		ctx,
		"Handler.HandleUserRegistered",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("user.id", e.UserID.String()),
			attribute.String("user.email", logging.RedactEmail(e.Email)),
			attribute.String("user.phone", logging.RedactPhone(e.Phone))),
	)
	defer span.End()

	switch {
	case e.Email != "":
		payload := mail.Payload{
			To:      e.Email,
			Subject: "Welcome to Redacok",
			Body: fmt.Sprintf(
				"Hello %s,\n\nWelcome to Redacok! Your account is ready. "+
					"Complete your profile to start saving.\n\nThe Redacok Team",
				e.Name,
			),
		}
		if err := h.mailsender.SendMail(ctx, payload); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to send welcome email")
			l.ErrorContext(ctx, "failed to send welcome email", slog.Any("error", err))
			return err
		}
	case e.Phone != "":
		msg := sms.Message{
			To:   e.Phone,
			Body: fmt.Sprintf("Welcome to Redacok, %s! Your account is ready.", e.Name),
		}
		if err := h.smssender.SendSMS(ctx, msg); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to send welcome sms")
			l.ErrorContext(ctx, "failed to send welcome sms", slog.Any("error", err))
			return err
		}
	default:
		l.WarnContext(ctx, "registered user has no contact channel")
	}

	return nil
}
