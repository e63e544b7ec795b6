package feesapp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feesapp "github.com/redacok/redacok-backend/internal/application/fees"
	"github.com/redacok/redacok-backend/internal/domain/fee"
	"github.com/redacok/redacok-backend/tests/builders"
	"github.com/redacok/redacok-backend/tests/mocks"
)

func newApp(t *testing.T) (*feesapp.App, *mocks.FeeRangeRepo) {
	t.Helper()
	repo := mocks.NewFeeRangeRepo()
	return feesapp.NewApp(feesapp.Args{Repo: repo}), repo
}

func TestCalculateFee(t *testing.T) {
	t.Parallel()

	t.Run("percentage plus fixed", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		repo.SeedRange(t, builders.NewFeeRangeBuilder().
			WithBounds(0, 1000).
			WithFee(5, 10).
			Build())

		charge, err := app.CalculateFee(t.Context(), 500)
		require.NoError(t, err)
		assert.InDelta(t, 35, charge, 1e-9)
	})

	t.Run("no matching range means no fee", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		repo.SeedRange(t, builders.NewFeeRangeBuilder().WithBounds(0, 100).Build())

		charge, err := app.CalculateFee(t.Context(), 5000)
		require.NoError(t, err)
		assert.Zero(t, charge)
	})

	t.Run("empty table means no fee", func(t *testing.T) {
		t.Parallel()

		app, _ := newApp(t)
		charge, err := app.CalculateFee(t.Context(), 500)
		require.NoError(t, err)
		assert.Zero(t, charge)
	})

	t.Run("inactive ranges are never selected", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		repo.SeedRange(t, builders.NewFeeRangeBuilder().
			WithBounds(0, 1000).
			WithFee(50, 100).
			Inactive().
			Build())

		charge, err := app.CalculateFee(t.Context(), 500)
		require.NoError(t, err)
		assert.Zero(t, charge)
	})

	t.Run("narrowest overlapping range wins", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		now := time.Now()
		repo.SeedRange(t, builders.NewFeeRangeBuilder().
			WithBounds(0, 10000).
			WithFee(10, 0).
			WithCreatedAt(now.Add(-time.Hour)).
			Build())
		repo.SeedRange(t, builders.NewFeeRangeBuilder().
			WithBounds(400, 600).
			WithFee(1, 0).
			WithCreatedAt(now).
			Build())

		charge, err := app.CalculateFee(t.Context(), 500)
		require.NoError(t, err)
		assert.InDelta(t, 5, charge, 1e-9, "narrow range should win over wide range")
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		repo.SeedRange(t, builders.NewFeeRangeBuilder().
			WithBounds(100, 1000).
			WithFee(0, 7).
			Build())

		for _, amount := range []float64{100, 1000} {
			charge, err := app.CalculateFee(t.Context(), amount)
			require.NoError(t, err)
			assert.InDelta(t, 7, charge, 1e-9)
		}
	})
}

func TestCreateRangeHandle(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		r, err := app.CreateRangeHandle(t.Context(), feesapp.CreateRange{
			MinAmount:     0,
			MaxAmount:     1000,
			FeePercentage: 5,
			FixedFee:      10,
			IsActive:      true,
		})
		require.NoError(t, err)
		require.NotNil(t, r)

		stored, err := repo.GetRangeByID(t.Context(), r.ID())
		require.NoError(t, err)
		assert.InDelta(t, 5, stored.FeePercentage(), 1e-9)
	})

	t.Run("invalid bounds", func(t *testing.T) {
		t.Parallel()

		app, _ := newApp(t)
		_, err := app.CreateRangeHandle(t.Context(), feesapp.CreateRange{
			MinAmount: 1000,
			MaxAmount: 100,
		})
		require.ErrorIs(t, err, fee.ErrInvertedBounds)
	})
}

func TestUpdateRangeHandle(t *testing.T) {
	t.Parallel()

	t.Run("deactivate", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		existing := builders.NewFeeRangeBuilder().Build()
		repo.SeedRange(t, existing)

		inactive := false
		r, err := app.UpdateRangeHandle(t.Context(), feesapp.UpdateRange{
			ID:       existing.ID(),
			IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.False(t, r.IsActive())

		charge, err := app.CalculateFee(t.Context(), 500)
		require.NoError(t, err)
		assert.Zero(t, charge)
	})

	t.Run("unknown range", func(t *testing.T) {
		t.Parallel()

		app, _ := newApp(t)
		_, err := app.UpdateRangeHandle(t.Context(), feesapp.UpdateRange{ID: fee.NewID()})
		require.Error(t, err)
	})
}
