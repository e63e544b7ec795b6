package mocks

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
)

type KycRepo struct {
	mu sync.Mutex
	db map[kyc.ID]*kyc.Request
}

func NewKycRepo() *KycRepo {
	return &KycRepo{db: make(map[kyc.ID]*kyc.Request)}
}

func (r *KycRepo) SaveRequest(ctx context.Context, req *kyc.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.db[req.ID()]; exists {
		return errorx.NewDuplicateEntry()
	}
	r.db[req.ID()] = req
	req.MarkEventsAsCommitted()
	return nil
}

func (r *KycRepo) GetRequestByID(ctx context.Context, id kyc.ID) (*kyc.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req, ok := r.db[id]; ok {
		return req, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *KycRepo) GetPendingRequestByUserID(ctx context.Context, userID user.ID) (*kyc.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.db {
		if req.UserID() == userID && req.Status() == kyc.StatusPending {
			return req, nil
		}
	}
	return nil, errorx.NewNotFound()
}

func (r *KycRepo) GetLatestRequestByUserID(ctx context.Context, userID user.ID) (*kyc.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *kyc.Request
	for _, req := range r.db {
		if req.UserID() != userID {
			continue
		}
		if latest == nil || req.CreatedAt().After(latest.CreatedAt()) {
			latest = req
		}
	}
	if latest == nil {
		return nil, errorx.NewNotFound()
	}
	return latest, nil
}

func (r *KycRepo) ListRequests(ctx context.Context, status *kyc.Status) ([]*kyc.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*kyc.Request
	for _, req := range r.db {
		if status != nil && req.Status() != *status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (r *KycRepo) UpdateRequest(ctx context.Context, id kyc.ID, fn func(context.Context, *kyc.Request) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.db[id]
	if !ok {
		return errorx.NewNotFound()
	}
	if err := fn(ctx, req); err != nil {
		return err
	}
	req.MarkEventsAsCommitted()
	return nil
}

func (r *KycRepo) SeedRequest(t *testing.T, req *kyc.Request) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.db[req.ID()]; exists {
		t.Fatalf("kyc request with ID %s already exists", req.ID())
	}
	r.db[req.ID()] = req
}
