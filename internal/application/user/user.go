package userapp

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("redacok/internal/application/user")
	logger = otelslog.NewLogger("redacok/internal/application/user")
)

type UserRepo interface {
	GetUserByID(ctx context.Context, id user.ID) (*user.User, error)
	UpdateUser(ctx context.Context, id user.ID, fn func(context.Context, *user.User) error) error
}

type App struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   UserRepo
}

type Args struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   UserRepo
}

func NewApp(args Args) *App {
	app := &App{
		tracer: tracer,
		logger: logger,
		repo:   args.Repo,
	}
	if args.Tracer != nil {
		app.tracer = args.Tracer
	}
	if args.Logger != nil {
		app.logger = args.Logger
	}
	return app
}

// GetMe returns the profile for the session user.
func (a *App) GetMe(ctx context.Context, id user.ID) (*user.User, error) {
	const op = "userapp.App.GetMe"
	ctx, span := a.tracer.Start(ctx, "App.GetMe", trace.WithAttributes(
		attribute.String("user.id", id.String()),
	))
	defer span.End()

	u, err := a.repo.GetUserByID(ctx, id)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user")
		return nil, errorx.Wrap(err, op)
	}
	return u, nil
}

type Settings struct {
	Currency string `json:"currency"`
}

// GetSettings returns the user's settings, creating them with the default
// currency on first read. The write happens at most once per missing profile;
// a concurrent writer winning the race is fine since both write the same
// default.
func (a *App) GetSettings(ctx context.Context, id user.ID) (Settings, error) {
	const op = "userapp.App.GetSettings"
	ctx, span := a.tracer.Start(ctx, "App.GetSettings", trace.WithAttributes(
		attribute.String("user.id", id.String()),
	))
	defer span.End()

	u, err := a.repo.GetUserByID(ctx, id)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user")
		return Settings{}, errorx.Wrap(err, op)
	}

	if u.Currency() != "" {
		return Settings{Currency: u.Currency()}, nil
	}

	span.AddEvent("initializing settings with default currency")
	err = a.repo.UpdateUser(ctx, id, func(ctx context.Context, u *user.User) error {
		if u.Currency() != "" {
			return nil
		}
		return u.SetCurrency(user.DefaultCurrency)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to initialize settings")
		return Settings{}, errorx.Wrap(err, op)
	}

	return Settings{Currency: user.DefaultCurrency}, nil
}

type UpdateSettings struct {
	UserID   user.ID
	Currency string
}

func (a *App) UpdateSettingsHandle(ctx context.Context, cmd UpdateSettings) (Settings, error) {
	const op = "userapp.App.UpdateSettingsHandle"
	ctx, span := a.tracer.Start(ctx, "App.UpdateSettingsHandle", trace.WithAttributes(
		attribute.String("user.id", cmd.UserID.String()),
		attribute.String("user.currency", cmd.Currency),
	))
	defer span.End()

	err := a.repo.UpdateUser(ctx, cmd.UserID, func(ctx context.Context, u *user.User) error {
		return u.SetCurrency(cmd.Currency)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to update settings")
		return Settings{}, errorx.Wrap(err, op)
	}

	return Settings{Currency: cmd.Currency}, nil
}
