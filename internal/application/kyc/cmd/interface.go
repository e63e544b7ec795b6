package kyccmd

import (
	"context"
	"io"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
)

type Repo interface {
	SaveRequest(ctx context.Context, req *kyc.Request) error
	GetRequestByID(ctx context.Context, id kyc.ID) (*kyc.Request, error)
	GetPendingRequestByUserID(ctx context.Context, userID user.ID) (*kyc.Request, error)
	UpdateRequest(ctx context.Context, id kyc.ID, fn func(context.Context, *kyc.Request) error) error
}

type UserRepo interface {
	UpdateUser(ctx context.Context, id user.ID, fn func(context.Context, *user.User) error) error
}

type FileStorage interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error
	DeleteFile(ctx context.Context, key string) error
}
