package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
)

func newAdminFixture(t *testing.T) (AdminService, *memoryUserRepo, *memoryConnectionRepo, *memoryPostRepo) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	users := newMemoryUserRepo()
	connections := &memoryConnectionRepo{}
	posts := &memoryPostRepo{}
	svc := NewAdminService(users, connections, posts, client, 5*time.Minute, zerolog.Nop())
	return svc, users, connections, posts
}

func TestDashboardStatsAggregates(t *testing.T) {
	svc, users, edges, posts := newAdminFixture(t)
	ctx := context.Background()

	alice := seedUser(t, users, "Alice", "alice@example.com")
	bob := seedUser(t, users, "Bob", "bob@example.com")
	require.NoError(t, users.Create(ctx, &models.User{Name: "Pending", Email: "pending@example.com", Role: models.RoleStudent}))

	require.NoError(t, edges.Create(ctx, &models.Connection{
		RequesterID: alice.ID,
		TargetID:    bob.ID,
		Status:      models.ConnectionStatusAccepted,
	}))
	require.NoError(t, posts.Create(ctx, &models.CommunityPost{CommunityID: 1, AuthorID: alice.ID, Content: "hi"}))

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalUsers)
	require.Equal(t, int64(2), stats.VerifiedUsers)
	require.Equal(t, int64(2), stats.UsersByRole[models.RoleAlumni])
	require.Equal(t, int64(1), stats.UsersByRole[models.RoleStudent])
	require.Equal(t, int64(1), stats.TotalConnections)
	require.Equal(t, int64(1), stats.TotalPosts)
}

func TestDashboardStatsServedFromCache(t *testing.T) {
	svc, users, _, _ := newAdminFixture(t)
	ctx := context.Background()

	seedUser(t, users, "Alice", "alice@example.com")

	first, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), first.TotalUsers)

	// Growth after the first call is invisible until the cache expires.
	seedUser(t, users, "Bob", "bob@example.com")

	second, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), second.TotalUsers)
}

func TestAdminListUsersFiltersAndPaginates(t *testing.T) {
	svc, users, _, _ := newAdminFixture(t)
	ctx := context.Background()

	seedUser(t, users, "Alice", "alice@example.com")
	seedUser(t, users, "Bob", "bob@example.com")
	require.NoError(t, users.Create(ctx, &models.User{Name: "Carol", Email: "carol@example.com", Role: models.RoleStudent}))

	byRole, err := svc.ListUsers(ctx, dto.AdminUserListRequest{Page: 1, PageSize: 10, Role: models.RoleStudent})
	require.NoError(t, err)
	require.Len(t, byRole.Items, 1)
	require.Equal(t, "Carol", byRole.Items[0].Name)
	require.Equal(t, int64(1), byRole.Pagination.TotalItems)
	require.Equal(t, 1, byRole.Pagination.TotalPages)

	bySearch, err := svc.ListUsers(ctx, dto.AdminUserListRequest{Page: 1, PageSize: 2, Search: "example.com"})
	require.NoError(t, err)
	require.Equal(t, int64(3), bySearch.Pagination.TotalItems)
	require.Equal(t, 2, bySearch.Pagination.TotalPages)
}
