package userapp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/redacok/redacok-backend/internal/application/user"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/tests/builders"
	"github.com/redacok/redacok-backend/tests/mocks"
)

func newApp(t *testing.T) (*userapp.App, *mocks.UserRepo) {
	t.Helper()
	repo := mocks.NewUserRepo()
	return userapp.NewApp(userapp.Args{Repo: repo}), repo
}

func TestGetSettings(t *testing.T) {
	t.Parallel()

	t.Run("lazy-creates with default currency", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		u := builders.NewUserBuilder().Build()
		repo.SeedUser(t, u)
		require.Empty(t, u.Currency())

		settings, err := app.GetSettings(t.Context(), u.ID())
		require.NoError(t, err)
		assert.Equal(t, user.DefaultCurrency, settings.Currency)

		stored, err := repo.GetUserByID(t.Context(), u.ID())
		require.NoError(t, err)
		assert.Equal(t, user.DefaultCurrency, stored.Currency())
	})

	t.Run("returns existing currency untouched", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		u := builders.NewUserBuilder().WithCurrency("EUR").Build()
		repo.SeedUser(t, u)

		settings, err := app.GetSettings(t.Context(), u.ID())
		require.NoError(t, err)
		assert.Equal(t, "EUR", settings.Currency)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		app, _ := newApp(t)
		_, err := app.GetSettings(t.Context(), user.NewID())
		require.Error(t, err)
		assert.True(t, errorx.IsNotFound(err), "expected not found error, got: %v", err)
	})
}

func TestUpdateSettingsHandle(t *testing.T) {
	t.Parallel()

	t.Run("updates currency", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		u := builders.NewUserBuilder().WithCurrency("XAF").Build()
		repo.SeedUser(t, u)

		settings, err := app.UpdateSettingsHandle(t.Context(), userapp.UpdateSettings{
			UserID:   u.ID(),
			Currency: "USD",
		})
		require.NoError(t, err)
		assert.Equal(t, "USD", settings.Currency)

		stored, err := repo.GetUserByID(t.Context(), u.ID())
		require.NoError(t, err)
		assert.Equal(t, "USD", stored.Currency())
	})

	t.Run("rejects invalid code", func(t *testing.T) {
		t.Parallel()

		app, repo := newApp(t)
		u := builders.NewUserBuilder().WithCurrency("XAF").Build()
		repo.SeedUser(t, u)

		_, err := app.UpdateSettingsHandle(t.Context(), userapp.UpdateSettings{
			UserID:   u.ID(),
			Currency: "francs",
		})
		require.Error(t, err)

		stored, err := repo.GetUserByID(t.Context(), u.ID())
		require.NoError(t, err)
		assert.Equal(t, "XAF", stored.Currency())
	})
}

func TestGetMe(t *testing.T) {
	t.Parallel()

	app, repo := newApp(t)
	u := builders.NewUserBuilder().Build()
	repo.SeedUser(t, u)

	got, err := app.GetMe(t.Context(), u.ID())
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())

	_, err = app.GetMe(t.Context(), user.NewID())
	require.Error(t, err)
}
