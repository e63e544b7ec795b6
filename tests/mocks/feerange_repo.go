package mocks

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/redacok/redacok-backend/internal/domain/fee"
	"github.com/redacok/redacok-backend/pkg/errorx"
)

type FeeRangeRepo struct {
	mu sync.Mutex
	db map[fee.ID]*fee.Range
}

func NewFeeRangeRepo() *FeeRangeRepo {
	return &FeeRangeRepo{db: make(map[fee.ID]*fee.Range)}
}

// GetActiveRangeForAmount mirrors the production selection order: narrowest
// matching active range first, ties broken by creation time.
func (r *FeeRangeRepo) GetActiveRangeForAmount(ctx context.Context, amount float64) (*fee.Range, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*fee.Range
	for _, fr := range r.db {
		if fr.IsActive() && fr.Contains(amount) {
			matches = append(matches, fr)
		}
	}
	if len(matches) == 0 {
		return nil, errorx.NewNotFound()
	}
	sort.Slice(matches, func(i, j int) bool {
		wi := matches[i].MaxAmount() - matches[i].MinAmount()
		wj := matches[j].MaxAmount() - matches[j].MinAmount()
		if wi != wj {
			return wi < wj
		}
		return matches[i].CreatedAt().Before(matches[j].CreatedAt())
	})
	return matches[0], nil
}

func (r *FeeRangeRepo) ListRanges(ctx context.Context) ([]*fee.Range, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*fee.Range, 0, len(r.db))
	for _, fr := range r.db {
		out = append(out, fr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MinAmount() != out[j].MinAmount() {
			return out[i].MinAmount() < out[j].MinAmount()
		}
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (r *FeeRangeRepo) GetRangeByID(ctx context.Context, id fee.ID) (*fee.Range, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fr, ok := r.db[id]; ok {
		return fr, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *FeeRangeRepo) SaveRange(ctx context.Context, fr *fee.Range) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.db[fr.ID()]; exists {
		return errorx.NewDuplicateEntry()
	}
	r.db[fr.ID()] = fr
	return nil
}

func (r *FeeRangeRepo) UpdateRange(ctx context.Context, id fee.ID, fn func(context.Context, *fee.Range) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fr, ok := r.db[id]
	if !ok {
		return errorx.NewNotFound()
	}
	return fn(ctx, fr)
}

func (r *FeeRangeRepo) SeedRange(t *testing.T, fr *fee.Range) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.db[fr.ID()]; exists {
		t.Fatalf("fee range with ID %s already exists", fr.ID())
	}
	r.db[fr.ID()] = fr
}
