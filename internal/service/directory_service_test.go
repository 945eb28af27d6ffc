package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
)

func TestDirectoryListScopedToRole(t *testing.T) {
	users := newMemoryUserRepo()
	ctx := context.Background()

	seedUser(t, users, "Alice", "alice@example.com")
	require.NoError(t, users.Create(ctx, &models.User{Name: "Carol", Email: "carol@example.com", Role: models.RoleStudent, IsVerified: true}))

	svc := NewDirectoryService(users, zerolog.Nop())

	alumni, err := svc.ListByRole(ctx, models.RoleAlumni, dto.DirectoryListRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, alumni.Items, 1)
	require.Equal(t, "Alice", alumni.Items[0].Name)
	require.Equal(t, int64(1), alumni.Pagination.TotalItems)

	students, err := svc.ListByRole(ctx, models.RoleStudent, dto.DirectoryListRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, students.Items, 1)
	require.Equal(t, "Carol", students.Items[0].Name)
}

func TestDirectoryGetRejectsRoleMismatch(t *testing.T) {
	users := newMemoryUserRepo()
	ctx := context.Background()

	alice := seedUser(t, users, "Alice", "alice@example.com")
	svc := NewDirectoryService(users, zerolog.Nop())

	detail, err := svc.GetByRole(ctx, models.RoleAlumni, alice.ID)
	require.NoError(t, err)
	require.Equal(t, alice.Email, detail.Email)

	// An alumni record is invisible through the student route.
	_, err = svc.GetByRole(ctx, models.RoleStudent, alice.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetByRole(ctx, models.RoleAlumni, 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
