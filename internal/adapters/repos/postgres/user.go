package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
	"github.com/redacok/redacok-backend/pkg/postgres"
	"github.com/redacok/redacok-backend/pkg/watermillx"
)

const insertUserQuery = `
    INSERT INTO users (id, name, email, phone, role_id, currency, pass_hash, email_verified, phone_verified, created_at, updated_at)
    VALUES ($1, $2, $3, $4, (SELECT id FROM global_roles WHERE name = $5), $6, $7, $8, $9, $10, $11);`

const selectUserQuery = `
    SELECT  u.id, u.name, u.email, u.phone,
            u.currency, u.pass_hash, u.email_verified, u.phone_verified,
            u.created_at, u.updated_at,
            gr.id, gr.name
    FROM users u JOIN global_roles gr ON u.role_id = gr.id
`

type UserRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewUserRepo creates a new instance of UserRepo.
//
// WARNING: panics if pool is nil
func NewUserRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *UserRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &UserRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermillx.NewSlogAdapter(l, slog.LevelInfo),
	}
}

func (r *UserRepo) SaveUser(ctx context.Context, u *user.User) error {
	const op = "postgres.UserRepo.SaveUser"
	ctx, span := r.tracer.Start(ctx, "UserRepo.SaveUser")
	defer span.End()

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		dto := DomainToUserDTO(u)
		res, err := tx.Exec(ctx, insertUserQuery,
			dto.ID,
			dto.Name,
			dto.Email,
			dto.Phone,
			u.Role().String(),
			dto.Currency,
			dto.Passhash,
			dto.EmailVerified,
			dto.PhoneVerified,
			dto.CreatedAt,
			dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert user")
			return mapInsertError(err)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, err, "no rows affected while inserting user")
			return errorx.Wrap(ErrNoRowsAffected, op)
		}

		events := u.GetUncommittedEvents()
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

func (r *UserRepo) UpdateUser(
	ctx context.Context,
	id user.ID,
	fn func(ctx context.Context, u *user.User) error,
) error {
	const op = "postgres.UserRepo.UpdateUser"
	ctx, span := r.tracer.Start(ctx, "UserRepo.UpdateUser")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var dto UserDTO
		var roleDTO GlobalRoleDTO
		err := tx.QueryRow(ctx, selectUserQuery+"WHERE u.id = $1 FOR UPDATE OF u;", id.UUID()).
			Scan(
				&dto.ID, &dto.Name, &dto.Email, &dto.Phone,
				&dto.Currency, &dto.Passhash, &dto.EmailVerified, &dto.PhoneVerified,
				&dto.CreatedAt, &dto.UpdatedAt,
				&roleDTO.ID, &roleDTO.Name,
			)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get user by id")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewNotFound().WithCause(err)
			}
			return errorx.Wrap(err, op)
		}

		u := UserToDomain(dto, roleDTO)

		fnerr := fn(ctx, u)
		if fnerr != nil && !errorx.IsPersistable(fnerr) {
			otelx.RecordSpanError(span, fnerr, "update function returned an error and cannot continue")
			return fnerr
		}

		dto = DomainToUserDTO(u)

		updateQuery := `
        UPDATE users
        SET name = $2, email = $3, phone = $4,
            role_id = (SELECT id FROM global_roles WHERE name = $5),
            currency = $6, pass_hash = $7,
            email_verified = $8, phone_verified = $9, updated_at = $10
        WHERE id = $1;
        `

		res, err := tx.Exec(ctx, updateQuery,
			dto.ID,
			dto.Name,
			dto.Email,
			dto.Phone,
			u.Role().String(),
			dto.Currency,
			dto.Passhash,
			dto.EmailVerified,
			dto.PhoneVerified,
			dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update user")
			return errorx.Wrap(err, op)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, err, "no rows affected while updating user")
			return errorx.Wrap(ErrNoRowsAffected, op)
		}

		events := u.GetUncommittedEvents()
		if len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return errorx.Wrap(err, op)
			}
		}

		if fnerr != nil && errorx.IsPersistable(fnerr) {
			otelx.RecordSpanError(span, fnerr, "update function returned an error but is allowed to continue")
			return fnerr
		}

		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "transaction to update user failed")
		return err
	}

	return nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	const op = "postgres.UserRepo.GetUserByID"
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByID")
	defer span.End()

	return r.getUser(ctx, span, op, "WHERE u.id = $1;", id.UUID())
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	const op = "postgres.UserRepo.GetUserByEmail"
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByEmail")
	defer span.End()

	return r.getUser(ctx, span, op, "WHERE u.email = $1;", email)
}

func (r *UserRepo) GetUserByPhone(ctx context.Context, phone string) (*user.User, error) {
	const op = "postgres.UserRepo.GetUserByPhone"
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByPhone")
	defer span.End()

	return r.getUser(ctx, span, op, "WHERE u.phone = $1;", phone)
}

func (r *UserRepo) getUser(ctx context.Context, span trace.Span, op, where string, arg any) (*user.User, error) {
	var dto UserDTO
	var roleDTO GlobalRoleDTO
	err := r.pool.QueryRow(ctx, selectUserQuery+where, arg).
		Scan(
			&dto.ID, &dto.Name, &dto.Email, &dto.Phone,
			&dto.Currency, &dto.Passhash, &dto.EmailVerified, &dto.PhoneVerified,
			&dto.CreatedAt, &dto.UpdatedAt,
			&roleDTO.ID, &roleDTO.Name,
		)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, errorx.Wrap(err, op)
	}

	return UserToDomain(dto, roleDTO), nil
}

// IsUserExists reports which of the contact identifiers are already taken.
func (r *UserRepo) IsUserExists(ctx context.Context, email, phone string) (emailExists, phoneExists bool, err error) {
	const op = "postgres.UserRepo.IsUserExists"
	ctx, span := r.tracer.Start(ctx, "UserRepo.IsUserExists")
	defer span.End()

	query := `
        SELECT  EXISTS(SELECT 1 FROM users WHERE email = $1),
                EXISTS(SELECT 1 FROM users WHERE phone = $2);
    `

	err = r.pool.QueryRow(ctx, query, email, phone).Scan(&emailExists, &phoneExists)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to check if user exists")
		return false, false, errorx.Wrap(err, op)
	}

	return emailExists, phoneExists, nil
}
