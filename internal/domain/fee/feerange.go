package fee

import (
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(id), nil
}

func (id ID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ID(parsed)
	return nil
}

// Range is one administratively configured fee tier. Bounds are inclusive.
type Range struct {
	id            ID
	minAmount     float64
	maxAmount     float64
	feePercentage float64
	fixedFee      float64
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

type NewRangeArgs struct {
	MinAmount     float64
	MaxAmount     float64
	FeePercentage float64
	FixedFee      float64
	IsActive      bool
}

func NewRange(args NewRangeArgs) (*Range, error) {
	err := validation.Errors{
		"min_amount":     validation.Validate(args.MinAmount, validation.Min(0.0)),
		"fee_percentage": validation.Validate(args.FeePercentage, validation.Min(0.0), validation.Max(100.0)),
		"fixed_fee":      validation.Validate(args.FixedFee, validation.Min(0.0)),
	}.Filter()
	if err != nil {
		return nil, err
	}
	if args.MaxAmount < args.MinAmount {
		return nil, ErrInvertedBounds
	}

	now := time.Now().UTC()
	return &Range{
		id:            NewID(),
		minAmount:     args.MinAmount,
		maxAmount:     args.MaxAmount,
		feePercentage: args.FeePercentage,
		fixedFee:      args.FixedFee,
		isActive:      args.IsActive,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type RehydrateArgs struct {
	ID            ID
	MinAmount     float64
	MaxAmount     float64
	FeePercentage float64
	FixedFee      float64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func Rehydrate(p RehydrateArgs) *Range {
	return &Range{
		id:            p.ID,
		minAmount:     p.MinAmount,
		maxAmount:     p.MaxAmount,
		feePercentage: p.FeePercentage,
		fixedFee:      p.FixedFee,
		isActive:      p.IsActive,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}

type UpdateArgs struct {
	MinAmount     *float64
	MaxAmount     *float64
	FeePercentage *float64
	FixedFee      *float64
	IsActive      *bool
}

// Update applies a partial change, validating the resulting state.
func (r *Range) Update(args UpdateArgs) error {
	next := *r
	if args.MinAmount != nil {
		next.minAmount = *args.MinAmount
	}
	if args.MaxAmount != nil {
		next.maxAmount = *args.MaxAmount
	}
	if args.FeePercentage != nil {
		next.feePercentage = *args.FeePercentage
	}
	if args.FixedFee != nil {
		next.fixedFee = *args.FixedFee
	}
	if args.IsActive != nil {
		next.isActive = *args.IsActive
	}

	err := validation.Errors{
		"min_amount":     validation.Validate(next.minAmount, validation.Min(0.0)),
		"fee_percentage": validation.Validate(next.feePercentage, validation.Min(0.0), validation.Max(100.0)),
		"fixed_fee":      validation.Validate(next.fixedFee, validation.Min(0.0)),
	}.Filter()
	if err != nil {
		return err
	}
	if next.maxAmount < next.minAmount {
		return ErrInvertedBounds
	}

	next.updatedAt = time.Now().UTC()
	*r = next
	return nil
}

// Contains reports whether amount falls inside the inclusive bounds.
func (r *Range) Contains(amount float64) bool {
	return amount >= r.minAmount && amount <= r.maxAmount
}

// Fee computes the charge for an amount inside this range:
// amount * feePercentage / 100 + fixedFee.
func (r *Range) Fee(amount float64) float64 {
	return amount*r.feePercentage/100 + r.fixedFee
}

func (r *Range) ID() ID {
	if r == nil {
		return ID{}
	}
	return r.id
}

func (r *Range) MinAmount() float64 {
	if r == nil {
		return 0
	}
	return r.minAmount
}

func (r *Range) MaxAmount() float64 {
	if r == nil {
		return 0
	}
	return r.maxAmount
}

func (r *Range) FeePercentage() float64 {
	if r == nil {
		return 0
	}
	return r.feePercentage
}

func (r *Range) FixedFee() float64 {
	if r == nil {
		return 0
	}
	return r.fixedFee
}

func (r *Range) IsActive() bool {
	if r == nil {
		return false
	}
	return r.isActive
}

func (r *Range) CreatedAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	return r.createdAt
}

func (r *Range) UpdatedAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	return r.updatedAt
}
