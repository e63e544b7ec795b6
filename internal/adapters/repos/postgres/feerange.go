package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/fee"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
	"github.com/redacok/redacok-backend/pkg/postgres"
)

const selectFeeRangeQuery = `
    SELECT id, min_amount, max_amount, fee_percentage, fixed_fee, is_active, created_at, updated_at
    FROM fee_ranges
`

type FeeRangeRepo struct {
	tracer trace.Tracer
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// NewFeeRangeRepo creates a new instance of FeeRangeRepo.
//
// WARNING: panics if pool is nil
func NewFeeRangeRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *FeeRangeRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &FeeRangeRepo{
		tracer: t,
		logger: l,
		pool:   pool,
	}
}

// GetActiveRangeForAmount returns the first active range containing the
// amount. Overlaps resolve deterministically: narrowest range first, then
// earliest created.
func (r *FeeRangeRepo) GetActiveRangeForAmount(ctx context.Context, amount float64) (*fee.Range, error) {
	const op = "postgres.FeeRangeRepo.GetActiveRangeForAmount"
	ctx, span := r.tracer.Start(ctx, "FeeRangeRepo.GetActiveRangeForAmount")
	defer span.End()

	query := selectFeeRangeQuery + `
    WHERE is_active AND min_amount <= $1 AND max_amount >= $1
    ORDER BY (max_amount - min_amount), created_at
    LIMIT 1;`

	var dto FeeRangeDTO
	err := r.pool.QueryRow(ctx, query, amount).
		Scan(&dto.ID, &dto.MinAmount, &dto.MaxAmount, &dto.FeePercentage, &dto.FixedFee, &dto.IsActive, &dto.CreatedAt, &dto.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		otelx.RecordSpanError(span, err, "failed to get fee range for amount")
		return nil, errorx.Wrap(err, op)
	}

	return FeeRangeToDomain(dto), nil
}

func (r *FeeRangeRepo) GetRangeByID(ctx context.Context, id fee.ID) (*fee.Range, error) {
	const op = "postgres.FeeRangeRepo.GetRangeByID"
	ctx, span := r.tracer.Start(ctx, "FeeRangeRepo.GetRangeByID")
	defer span.End()

	var dto FeeRangeDTO
	err := r.pool.QueryRow(ctx, selectFeeRangeQuery+"WHERE id = $1;", id.UUID()).
		Scan(&dto.ID, &dto.MinAmount, &dto.MaxAmount, &dto.FeePercentage, &dto.FixedFee, &dto.IsActive, &dto.CreatedAt, &dto.UpdatedAt)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get fee range by id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, errorx.Wrap(err, op)
	}

	return FeeRangeToDomain(dto), nil
}

func (r *FeeRangeRepo) ListRanges(ctx context.Context) ([]*fee.Range, error) {
	const op = "postgres.FeeRangeRepo.ListRanges"
	ctx, span := r.tracer.Start(ctx, "FeeRangeRepo.ListRanges")
	defer span.End()

	rows, err := r.pool.Query(ctx, selectFeeRangeQuery+"ORDER BY min_amount, created_at;")
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to list fee ranges")
		return nil, errorx.Wrap(err, op)
	}
	defer rows.Close()

	var out []*fee.Range
	for rows.Next() {
		var dto FeeRangeDTO
		err := rows.Scan(&dto.ID, &dto.MinAmount, &dto.MaxAmount, &dto.FeePercentage, &dto.FixedFee, &dto.IsActive, &dto.CreatedAt, &dto.UpdatedAt)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to scan fee range row")
			return nil, errorx.Wrap(err, op)
		}
		out = append(out, FeeRangeToDomain(dto))
	}
	if err := rows.Err(); err != nil {
		otelx.RecordSpanError(span, err, "failed to iterate fee range rows")
		return nil, errorx.Wrap(err, op)
	}

	return out, nil
}

func (r *FeeRangeRepo) SaveRange(ctx context.Context, fr *fee.Range) error {
	const op = "postgres.FeeRangeRepo.SaveRange"
	ctx, span := r.tracer.Start(ctx, "FeeRangeRepo.SaveRange")
	defer span.End()

	dto := DomainToFeeRangeDTO(fr)
	query := `
    INSERT INTO fee_ranges (id, min_amount, max_amount, fee_percentage, fixed_fee, is_active, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	res, err := r.pool.Exec(ctx, query,
		dto.ID, dto.MinAmount, dto.MaxAmount, dto.FeePercentage, dto.FixedFee, dto.IsActive, dto.CreatedAt, dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to insert fee range")
		return mapInsertError(err)
	}
	if res.RowsAffected() == 0 {
		otelx.RecordSpanError(span, err, "no rows affected while inserting fee range")
		return errorx.Wrap(ErrNoRowsAffected, op)
	}

	return nil
}

func (r *FeeRangeRepo) UpdateRange(
	ctx context.Context,
	id fee.ID,
	fn func(ctx context.Context, fr *fee.Range) error,
) error {
	const op = "postgres.FeeRangeRepo.UpdateRange"
	ctx, span := r.tracer.Start(ctx, "FeeRangeRepo.UpdateRange")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var dto FeeRangeDTO
		err := tx.QueryRow(ctx, selectFeeRangeQuery+"WHERE id = $1 FOR UPDATE;", id.UUID()).
			Scan(&dto.ID, &dto.MinAmount, &dto.MaxAmount, &dto.FeePercentage, &dto.FixedFee, &dto.IsActive, &dto.CreatedAt, &dto.UpdatedAt)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get fee range by id")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewNotFound().WithCause(err)
			}
			return errorx.Wrap(err, op)
		}

		fr := FeeRangeToDomain(dto)

		if fnerr := fn(ctx, fr); fnerr != nil {
			otelx.RecordSpanError(span, fnerr, "update function returned an error")
			return fnerr
		}

		dto = DomainToFeeRangeDTO(fr)

		updateQuery := `
        UPDATE fee_ranges
        SET min_amount = $2, max_amount = $3, fee_percentage = $4, fixed_fee = $5, is_active = $6, updated_at = $7
        WHERE id = $1;`

		res, err := tx.Exec(ctx, updateQuery,
			dto.ID, dto.MinAmount, dto.MaxAmount, dto.FeePercentage, dto.FixedFee, dto.IsActive, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update fee range")
			return errorx.Wrap(err, op)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, err, "no rows affected while updating fee range")
			return errorx.Wrap(ErrNoRowsAffected, op)
		}

		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "transaction to update fee range failed")
		return err
	}

	return nil
}
