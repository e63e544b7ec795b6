package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("with email", func(t *testing.T) {
		t.Parallel()

		u, err := Register(RegisterArgs{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "Str0ngP@ss",
		})
		require.NoError(t, err)

		assert.False(t, u.ID().IsZero())
		assert.Equal(t, "John Doe", u.Name())
		assert.Equal(t, "john@example.com", u.Email())
		assert.Equal(t, role.User, u.Role())
		assert.Empty(t, u.Currency())
		assert.False(t, u.HasCompleteProfile())
		assert.NoError(t, u.ComparePassword("Str0ngP@ss"))
		assert.Error(t, u.ComparePassword("wrong"))

		events := u.GetUncommittedEvents()
		require.Len(t, events, 1)
		registered, ok := events[0].(*UserRegistered)
		require.True(t, ok, "expected *UserRegistered, got %T", events[0])
		assert.Equal(t, u.ID(), registered.UserID)
		assert.Equal(t, u.Email(), registered.Email)
	})

	t.Run("with phone", func(t *testing.T) {
		t.Parallel()

		u, err := Register(RegisterArgs{
			Name:     "Jane Doe",
			Phone:    "+237650123456",
			Password: "Str0ngP@ss",
		})
		require.NoError(t, err)
		assert.Equal(t, "+237650123456", u.Phone())
		assert.Empty(t, u.Email())
	})

	t.Run("neither email nor phone", func(t *testing.T) {
		t.Parallel()

		_, err := Register(RegisterArgs{
			Name:     "John Doe",
			Password: "Str0ngP@ss",
		})
		require.ErrorIs(t, err, ErrNoContact)
	})

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()

		_, err := Register(RegisterArgs{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "password",
		})
		require.Error(t, err)
	})

	t.Run("invalid phone", func(t *testing.T) {
		t.Parallel()

		_, err := Register(RegisterArgs{
			Name:     "John Doe",
			Phone:    "not-a-phone",
			Password: "Str0ngP@ss",
		})
		require.Error(t, err)
	})
}

func TestUser_SetCurrency(t *testing.T) {
	t.Parallel()

	newUser := func(t *testing.T) *User {
		t.Helper()
		u, err := Register(RegisterArgs{Name: "John Doe", Email: "john@example.com", Password: "Str0ngP@ss"})
		require.NoError(t, err)
		u.MarkEventsAsCommitted()
		return u
	}

	t.Run("sets and records event", func(t *testing.T) {
		t.Parallel()

		u := newUser(t)
		require.NoError(t, u.SetCurrency("XAF"))
		assert.Equal(t, "XAF", u.Currency())
		assert.True(t, u.HasCompleteProfile())

		events := u.GetUncommittedEvents()
		require.Len(t, events, 1)
		set, ok := events[0].(*CurrencySet)
		require.True(t, ok)
		assert.Equal(t, "XAF", set.Currency)
	})

	t.Run("same currency is a no-op", func(t *testing.T) {
		t.Parallel()

		u := newUser(t)
		require.NoError(t, u.SetCurrency("XAF"))
		u.MarkEventsAsCommitted()

		require.NoError(t, u.SetCurrency("XAF"))
		assert.Empty(t, u.GetUncommittedEvents())
	})

	t.Run("rejects invalid code", func(t *testing.T) {
		t.Parallel()

		u := newUser(t)
		assert.Error(t, u.SetCurrency("xaf"))
		assert.Error(t, u.SetCurrency(""))
		assert.Error(t, u.SetCurrency("FRANCS"))
	})
}

func TestUser_ChangeRole(t *testing.T) {
	t.Parallel()

	admin := NewID()

	u, err := Register(RegisterArgs{Name: "John Doe", Email: "john@example.com", Password: "Str0ngP@ss"})
	require.NoError(t, err)
	u.MarkEventsAsCommitted()

	require.NoError(t, u.ChangeRole(role.Personal, admin))
	assert.Equal(t, role.Personal, u.Role())

	events := u.GetUncommittedEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*RoleChanged)
	require.True(t, ok)
	assert.Equal(t, role.User, changed.OldRole)
	assert.Equal(t, role.Personal, changed.NewRole)
	assert.Equal(t, admin, changed.ChangedBy)

	u.MarkEventsAsCommitted()

	// same role again records nothing
	require.NoError(t, u.ChangeRole(role.Personal, admin))
	assert.Empty(t, u.GetUncommittedEvents())

	require.ErrorIs(t, u.ChangeRole("SUPERADMIN", admin), ErrInvalidRole)
}
