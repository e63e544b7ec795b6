package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
	"github.com/redacok/redacok-backend/pkg/postgres"
	"github.com/redacok/redacok-backend/pkg/watermillx"
)

const selectKycQuery = `
    SELECT id, user_id, document_type, document_number, document_keys,
           status, reviewer_id, rejection_reason, created_at, updated_at
    FROM kyc_requests
`

type KycRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewKycRepo creates a new instance of KycRepo.
//
// WARNING: panics if pool is nil
func NewKycRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *KycRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &KycRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermillx.NewSlogAdapter(l, slog.LevelInfo),
	}
}

func (r *KycRepo) SaveRequest(ctx context.Context, req *kyc.Request) error {
	const op = "postgres.KycRepo.SaveRequest"
	ctx, span := r.tracer.Start(ctx, "KycRepo.SaveRequest")
	defer span.End()

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		dto := DomainToKycRequestDTO(req)
		query := `
        INSERT INTO kyc_requests (id, user_id, document_type, document_number, document_keys, status, reviewer_id, rejection_reason, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

		res, err := tx.Exec(ctx, query,
			dto.ID,
			dto.UserID,
			dto.DocumentType,
			dto.DocumentNumber,
			dto.DocumentKeys,
			dto.Status,
			dto.ReviewerID,
			dto.RejectionReason,
			dto.CreatedAt,
			dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert kyc request")
			return mapInsertError(err)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, err, "no rows affected while inserting kyc request")
			return errorx.Wrap(ErrNoRowsAffected, op)
		}

		events := req.GetUncommittedEvents()
		if len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return errorx.Wrap(err, op)
			}
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to execute transaction")
		return err
	}

	return nil
}

func (r *KycRepo) UpdateRequest(
	ctx context.Context,
	id kyc.ID,
	fn func(ctx context.Context, req *kyc.Request) error,
) error {
	const op = "postgres.KycRepo.UpdateRequest"
	ctx, span := r.tracer.Start(ctx, "KycRepo.UpdateRequest")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var dto KycRequestDTO
		err := tx.QueryRow(ctx, selectKycQuery+"WHERE id = $1 FOR UPDATE;", id.UUID()).
			Scan(
				&dto.ID, &dto.UserID, &dto.DocumentType, &dto.DocumentNumber, &dto.DocumentKeys,
				&dto.Status, &dto.ReviewerID, &dto.RejectionReason, &dto.CreatedAt, &dto.UpdatedAt,
			)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get kyc request by id")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewNotFound().WithCause(err)
			}
			return errorx.Wrap(err, op)
		}

		req := KycRequestToDomain(dto)

		if fnerr := fn(ctx, req); fnerr != nil {
			otelx.RecordSpanError(span, fnerr, "update function returned an error")
			return fnerr
		}

		dto = DomainToKycRequestDTO(req)

		updateQuery := `
        UPDATE kyc_requests
        SET status = $2, reviewer_id = $3, rejection_reason = $4, updated_at = $5
        WHERE id = $1;`

		res, err := tx.Exec(ctx, updateQuery,
			dto.ID,
			dto.Status,
			dto.ReviewerID,
			dto.RejectionReason,
			dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update kyc request")
			return errorx.Wrap(err, op)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, err, "no rows affected while updating kyc request")
			return errorx.Wrap(ErrNoRowsAffected, op)
		}

		events := req.GetUncommittedEvents()
		if len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return errorx.Wrap(err, op)
			}
		}

		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "transaction to update kyc request failed")
		return err
	}

	return nil
}

func (r *KycRepo) GetRequestByID(ctx context.Context, id kyc.ID) (*kyc.Request, error) {
	const op = "postgres.KycRepo.GetRequestByID"
	ctx, span := r.tracer.Start(ctx, "KycRepo.GetRequestByID")
	defer span.End()

	return r.getRequest(ctx, span, op, "WHERE id = $1;", id.UUID())
}

func (r *KycRepo) GetPendingRequestByUserID(ctx context.Context, userID user.ID) (*kyc.Request, error) {
	const op = "postgres.KycRepo.GetPendingRequestByUserID"
	ctx, span := r.tracer.Start(ctx, "KycRepo.GetPendingRequestByUserID")
	defer span.End()

	return r.getRequest(ctx, span, op, "WHERE user_id = $1 AND status = 'PENDING' ORDER BY created_at DESC LIMIT 1;", userID.UUID())
}

func (r *KycRepo) GetLatestRequestByUserID(ctx context.Context, userID user.ID) (*kyc.Request, error) {
	const op = "postgres.KycRepo.GetLatestRequestByUserID"
	ctx, span := r.tracer.Start(ctx, "KycRepo.GetLatestRequestByUserID")
	defer span.End()

	return r.getRequest(ctx, span, op, "WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1;", userID.UUID())
}

func (r *KycRepo) getRequest(ctx context.Context, span trace.Span, op, where string, arg any) (*kyc.Request, error) {
	var dto KycRequestDTO
	err := r.pool.QueryRow(ctx, selectKycQuery+where, arg).
		Scan(
			&dto.ID, &dto.UserID, &dto.DocumentType, &dto.DocumentNumber, &dto.DocumentKeys,
			&dto.Status, &dto.ReviewerID, &dto.RejectionReason, &dto.CreatedAt, &dto.UpdatedAt,
		)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get kyc request")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, errorx.Wrap(err, op)
	}

	return KycRequestToDomain(dto), nil
}

func (r *KycRepo) ListRequests(ctx context.Context, status *kyc.Status) ([]*kyc.Request, error) {
	const op = "postgres.KycRepo.ListRequests"
	ctx, span := r.tracer.Start(ctx, "KycRepo.ListRequests")
	defer span.End()

	query := selectKycQuery + "WHERE ($1::text IS NULL OR status = $1) ORDER BY created_at;"

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.pool.Query(ctx, query, statusArg)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to list kyc requests")
		return nil, errorx.Wrap(err, op)
	}
	defer rows.Close()

	var out []*kyc.Request
	for rows.Next() {
		var dto KycRequestDTO
		err := rows.Scan(
			&dto.ID, &dto.UserID, &dto.DocumentType, &dto.DocumentNumber, &dto.DocumentKeys,
			&dto.Status, &dto.ReviewerID, &dto.RejectionReason, &dto.CreatedAt, &dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to scan kyc request row")
			return nil, errorx.Wrap(err, op)
		}
		out = append(out, KycRequestToDomain(dto))
	}
	if err := rows.Err(); err != nil {
		otelx.RecordSpanError(span, err, "failed to iterate kyc request rows")
		return nil, errorx.Wrap(err, op)
	}

	return out, nil
}
