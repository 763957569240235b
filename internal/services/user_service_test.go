package services

import (
	"context"
	"testing"

	"github.com/niley1nov/LMS/internal/dto"
	"github.com/stretchr/testify/require"
)

func TestGetUserSelfAndAdminAccess(t *testing.T) {
	db := testDB(t)
	svc := NewUserService(db, testConfig())
	ctx := context.Background()
	alice := seedUser(t, db, "sub-a", "alice@example.com", "Alice")
	bob := seedUser(t, db, "sub-b", "bob@example.com", "Bob")
	admin := seedUser(t, db, "sub-adm", "admin@example.com", "Admin")

	got, err := svc.GetUser(ctx, alice.ID, alice)
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)

	_, err = svc.GetUser(ctx, alice.ID, bob)
	require.ErrorIs(t, err, ErrForbidden)

	got, err = svc.GetUser(ctx, alice.ID, admin)
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)

	_, err = svc.GetUser(ctx, 9999, alice)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserPartialFields(t *testing.T) {
	db := testDB(t)
	svc := NewUserService(db, testConfig())
	ctx := context.Background()
	alice := seedUser(t, db, "sub-a", "alice@example.com", "Alice")

	name := "Alice Smith"
	updated, err := svc.UpdateUser(ctx, alice.ID, &dto.UpdateUserRequest{Name: &name}, alice)
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", updated.Name)
	require.Equal(t, "alice@example.com", updated.Email)

	// Empty patch is a no-op, not an error.
	same, err := svc.UpdateUser(ctx, alice.ID, &dto.UpdateUserRequest{}, alice)
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", same.Name)
}

func TestListAndDeleteRequireElevation(t *testing.T) {
	db := testDB(t)
	svc := NewUserService(db, testConfig())
	ctx := context.Background()
	alice := seedUser(t, db, "sub-a", "alice@example.com", "Alice")
	admin := seedUser(t, db, "sub-adm", "admin@example.com", "Admin")

	_, err := svc.ListUsers(ctx, alice, 0, 100)
	require.ErrorIs(t, err, ErrForbidden)

	users, err := svc.ListUsers(ctx, admin, 0, 100)
	require.NoError(t, err)
	require.Len(t, users, 2)

	_, err = svc.DeleteUser(ctx, alice.ID, alice)
	require.ErrorIs(t, err, ErrForbidden)

	removed, err := svc.DeleteUser(ctx, alice.ID, admin)
	require.NoError(t, err)
	require.Equal(t, alice.ID, removed.ID)

	_, err = svc.DeleteUser(ctx, alice.ID, admin)
	require.ErrorIs(t, err, ErrUserNotFound)
}
