package mocks

import (
	"context"
	"sync"
	"testing"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
)

type UserRepo struct {
	mu        sync.Mutex
	dbbyID    map[user.ID]*user.User
	dbbyEmail map[string]*user.User
	dbbyPhone map[string]*user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		dbbyID:    make(map[user.ID]*user.User),
		dbbyEmail: make(map[string]*user.User),
		dbbyPhone: make(map[string]*user.User),
	}
}

func (r *UserRepo) GetUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.dbbyID[id]; ok {
		return u, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.dbbyEmail[email]; ok {
		return u, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *UserRepo) GetUserByPhone(ctx context.Context, phone string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.dbbyPhone[phone]; ok {
		return u, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *UserRepo) SaveUser(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyID[u.ID()]; exists {
		return errorx.NewDuplicateEntry()
	}
	if u.Email() != "" {
		if _, exists := r.dbbyEmail[u.Email()]; exists {
			return errorx.NewDuplicateEntry()
		}
	}
	if u.Phone() != "" {
		if _, exists := r.dbbyPhone[u.Phone()]; exists {
			return errorx.NewDuplicateEntry()
		}
	}

	r.index(u)
	u.MarkEventsAsCommitted()
	return nil
}

func (r *UserRepo) UpdateUser(ctx context.Context, id user.ID, fn func(context.Context, *user.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.dbbyID[id]
	if !ok {
		return errorx.NewNotFound()
	}
	if err := fn(ctx, u); err != nil {
		return err
	}

	r.index(u)
	u.MarkEventsAsCommitted()
	return nil
}

func (r *UserRepo) index(u *user.User) {
	r.dbbyID[u.ID()] = u
	if u.Email() != "" {
		r.dbbyEmail[u.Email()] = u
	}
	if u.Phone() != "" {
		r.dbbyPhone[u.Phone()] = u
	}
}

func (r *UserRepo) SeedUser(t *testing.T, u *user.User) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyID[u.ID()]; exists {
		t.Fatalf("user with ID %s already exists", u.ID())
	}
	r.index(u)
}
