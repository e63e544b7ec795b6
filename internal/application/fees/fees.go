package feesapp

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/fee"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("redacok/internal/application/fees")
	logger = otelslog.NewLogger("redacok/internal/application/fees")
)

type FeeRangeRepo interface {
	GetActiveRangeForAmount(ctx context.Context, amount float64) (*fee.Range, error)
	ListRanges(ctx context.Context) ([]*fee.Range, error)
	GetRangeByID(ctx context.Context, id fee.ID) (*fee.Range, error)
	SaveRange(ctx context.Context, fr *fee.Range) error
	UpdateRange(ctx context.Context, id fee.ID, fn func(context.Context, *fee.Range) error) error
}

type App struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   FeeRangeRepo
}

type Args struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   FeeRangeRepo
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

// CalculateFee computes the charge for an amount from the first matching
// active range. No matching range means no fee. Persistence errors propagate
// untouched.
func (a *App) CalculateFee(ctx context.Context, amount float64) (float64, error) {
	ctx, span := a.tracer.Start(ctx, "App.CalculateFee", trace.WithAttributes(
		attribute.Float64("fee.amount", amount),
	))
	defer span.End()

	r, err := a.repo.GetActiveRangeForAmount(ctx, amount)
	if err != nil {
		if errorx.IsNotFound(err) {
			span.AddEvent("no matching fee range")
			return 0, nil
		}
		otelx.RecordSpanError(span, err, "failed to query fee range")
		return 0, err
	}

	charge := r.Fee(amount)
	span.SetAttributes(attribute.Float64("fee.charge", charge))
	return charge, nil
}

func (a *App) ListRanges(ctx context.Context) ([]*fee.Range, error) {
	const op = "feesapp.App.ListRanges"
	ctx, span := a.tracer.Start(ctx, "App.ListRanges")
	defer span.End()

	ranges, err := a.repo.ListRanges(ctx)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to list fee ranges")
		return nil, errorx.Wrap(err, op)
	}
	return ranges, nil
}

type CreateRange struct {
	MinAmount     float64
	MaxAmount     float64
	FeePercentage float64
	FixedFee      float64
	IsActive      bool
}

func (a *App) CreateRangeHandle(ctx context.Context, cmd CreateRange) (*fee.Range, error) {
	const op = "feesapp.App.CreateRangeHandle"
	ctx, span := a.tracer.Start(ctx, "App.CreateRangeHandle", trace.WithAttributes(
		attribute.Float64("fee.min_amount", cmd.MinAmount),
		attribute.Float64("fee.max_amount", cmd.MaxAmount),
	))
	defer span.End()

	r, err := fee.NewRange(fee.NewRangeArgs{
		MinAmount:     cmd.MinAmount,
		MaxAmount:     cmd.MaxAmount,
		FeePercentage: cmd.FeePercentage,
		FixedFee:      cmd.FixedFee,
		IsActive:      cmd.IsActive,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "invalid fee range")
		return nil, err
	}

	if err := a.repo.SaveRange(ctx, r); err != nil {
		otelx.RecordSpanError(span, err, "failed to save fee range")
		return nil, errorx.Wrap(err, op)
	}
	return r, nil
}

type UpdateRange struct {
	ID            fee.ID
	MinAmount     *float64
	MaxAmount     *float64
	FeePercentage *float64
	FixedFee      *float64
	IsActive      *bool
}

func (a *App) UpdateRangeHandle(ctx context.Context, cmd UpdateRange) (*fee.Range, error) {
	const op = "feesapp.App.UpdateRangeHandle"
	ctx, span := a.tracer.Start(ctx, "App.UpdateRangeHandle", trace.WithAttributes(
		attribute.String("fee.range_id", cmd.ID.String()),
	))
	defer span.End()

	var updated *fee.Range
	err := a.repo.UpdateRange(ctx, cmd.ID, func(ctx context.Context, r *fee.Range) error {
		if err := r.Update(fee.UpdateArgs{
			MinAmount:     cmd.MinAmount,
			MaxAmount:     cmd.MaxAmount,
			FeePercentage: cmd.FeePercentage,
			FixedFee:      cmd.FixedFee,
			IsActive:      cmd.IsActive,
		}); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to update fee range")
		return nil, errorx.Wrap(err, op)
	}
	return updated, nil
}
