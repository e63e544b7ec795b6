package builders

import (
	"time"

	"github.com/redacok/redacok-backend/internal/domain/fee"
)

type FeeRangeBuilder struct {
	id            fee.ID
	minAmount     float64
	maxAmount     float64
	feePercentage float64
	fixedFee      float64
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewFeeRangeBuilder() *FeeRangeBuilder {
	now := time.Now()
	return &FeeRangeBuilder{
		id:            fee.NewID(),
		minAmount:     0,
		maxAmount:     1000,
		feePercentage: 5,
		fixedFee:      10,
		isActive:      true,
		createdAt:     now,
		updatedAt:     now,
	}
}

func (b *FeeRangeBuilder) WithBounds(minAmount, maxAmount float64) *FeeRangeBuilder {
	b.minAmount = minAmount
	b.maxAmount = maxAmount
	return b
}

func (b *FeeRangeBuilder) WithFee(percentage, fixed float64) *FeeRangeBuilder {
	b.feePercentage = percentage
	b.fixedFee = fixed
	return b
}

func (b *FeeRangeBuilder) Inactive() *FeeRangeBuilder {
	b.isActive = false
	return b
}

func (b *FeeRangeBuilder) WithCreatedAt(t time.Time) *FeeRangeBuilder {
	b.createdAt = t
	return b
}

func (b *FeeRangeBuilder) Build() *fee.Range {
	return fee.Rehydrate(fee.RehydrateArgs{
		ID:            b.id,
		MinAmount:     b.minAmount,
		MaxAmount:     b.maxAmount,
		FeePercentage: b.feePercentage,
		FixedFee:      b.fixedFee,
		IsActive:      b.isActive,
		CreatedAt:     b.createdAt,
		UpdatedAt:     b.updatedAt,
	})
}
