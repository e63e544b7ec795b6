package notifevent

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/mail"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/sms"
)

var (
	tracer = otel.Tracer("redacok/application/notification/event")
	logger = otelslog.NewLogger("redacok/application/notification/event")
)

type MailSender interface {
	SendMail(ctx context.Context, payload mail.Payload) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, msg sms.Message) error
}

type UserGetter interface {
	GetUserByID(ctx context.Context, id user.ID) (*user.User, error)
}

// Handler dispatches email and SMS notifications for domain events.
type Handler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	mailsender MailSender
	smssender  SMSSender
	usergetter UserGetter
}

type HandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	MailSender MailSender
	SMSSender  SMSSender
	UserGetter UserGetter
}

func NewHandler(args HandlerArgs) *Handler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &Handler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		mailsender: args.MailSender,
		smssender:  args.SMSSender,
		usergetter: args.UserGetter,
	}
}
