package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/redacok/redacok-backend/internal/domain/fee"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/tests/builders"
)

type FeeRangeRepoSuite struct {
	TestSuite
}

func TestFeeRangeRepoSuite(t *testing.T) {
	suite.Run(t, new(FeeRangeRepoSuite))
}

func (s *FeeRangeRepoSuite) seed(ranges ...*fee.Range) {
	for _, fr := range ranges {
		s.Require().NoError(s.App().FeeRangeRepo.SaveRange(context.Background(), fr))
	}
}

func (s *FeeRangeRepoSuite) TestNarrowestRangeWins() {
	wide := builders.NewFeeRangeBuilder().WithBounds(0, 10000).WithFee(2, 0).Build()
	narrow := builders.NewFeeRangeBuilder().WithBounds(400, 600).WithFee(5, 10).Build()
	s.seed(wide, narrow)

	got, err := s.App().FeeRangeRepo.GetActiveRangeForAmount(context.Background(), 500)
	s.Require().NoError(err)
	s.Equal(narrow.ID(), got.ID(), "the narrower overlapping range must be selected")
}

func (s *FeeRangeRepoSuite) TestEqualWidthEarliestCreatedWins() {
	now := time.Now()
	older := builders.NewFeeRangeBuilder().WithBounds(0, 1000).WithFee(5, 10).
		WithCreatedAt(now.Add(-time.Hour)).Build()
	newer := builders.NewFeeRangeBuilder().WithBounds(100, 1100).WithFee(7, 0).
		WithCreatedAt(now).Build()
	s.seed(newer, older)

	got, err := s.App().FeeRangeRepo.GetActiveRangeForAmount(context.Background(), 500)
	s.Require().NoError(err)
	s.Equal(older.ID(), got.ID(), "equal-width overlap must resolve to the earliest created range")
}

func (s *FeeRangeRepoSuite) TestInactiveRangesAreSkipped() {
	inactive := builders.NewFeeRangeBuilder().WithBounds(400, 600).Inactive().Build()
	active := builders.NewFeeRangeBuilder().WithBounds(0, 10000).WithFee(2, 0).Build()
	s.seed(inactive, active)

	got, err := s.App().FeeRangeRepo.GetActiveRangeForAmount(context.Background(), 500)
	s.Require().NoError(err)
	s.Equal(active.ID(), got.ID())
}

func (s *FeeRangeRepoSuite) TestNoMatchIsNotFound() {
	s.seed(builders.NewFeeRangeBuilder().WithBounds(0, 100).Build())

	_, err := s.App().FeeRangeRepo.GetActiveRangeForAmount(context.Background(), 500)
	s.Require().Error(err)
	s.True(errorx.IsNotFound(err))
}

func (s *FeeRangeRepoSuite) TestBoundsAreInclusive() {
	fr := builders.NewFeeRangeBuilder().WithBounds(100, 200).Build()
	s.seed(fr)

	for _, amount := range []float64{100, 200} {
		got, err := s.App().FeeRangeRepo.GetActiveRangeForAmount(context.Background(), amount)
		s.Require().NoError(err)
		s.Equal(fr.ID(), got.ID())
	}
}

func (s *FeeRangeRepoSuite) TestUpdateRangePersists() {
	fr := builders.NewFeeRangeBuilder().WithBounds(0, 1000).Build()
	s.seed(fr)

	active := false
	err := s.App().FeeRangeRepo.UpdateRange(context.Background(), fr.ID(),
		func(ctx context.Context, r *fee.Range) error {
			return r.Update(fee.UpdateArgs{IsActive: &active})
		})
	s.Require().NoError(err)

	got, err := s.App().FeeRangeRepo.GetRangeByID(context.Background(), fr.ID())
	s.Require().NoError(err)
	s.False(got.IsActive())
}
