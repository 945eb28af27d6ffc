package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

func TestConnectionRepositoryFindPairIsSymmetric(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	edge := models.Connection{RequesterID: 1, TargetID: 2, Status: models.ConnectionStatusPending}
	require.NoError(t, repo.Create(ctx, &edge))

	found, err := repo.FindPair(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, edge.ID, found.ID)

	reversed, err := repo.FindPair(ctx, 2, 1)
	require.NoError(t, err)
	require.Equal(t, edge.ID, reversed.ID)
}

func TestConnectionRepositoryListForUserFiltersStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	accepted := models.Connection{RequesterID: 1, TargetID: 2, Status: models.ConnectionStatusAccepted}
	pending := models.Connection{RequesterID: 3, TargetID: 1, Status: models.ConnectionStatusPending}
	require.NoError(t, repo.Create(ctx, &accepted))
	require.NoError(t, repo.Create(ctx, &pending))

	connections, err := repo.ListForUser(ctx, 1, models.ConnectionStatusAccepted)
	require.NoError(t, err)
	require.Len(t, connections, 1)
	require.Equal(t, accepted.ID, connections[0].ID)

	incoming, err := repo.ListIncomingPending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	require.Equal(t, pending.ID, incoming[0].ID)
}

func TestConnectionRepositoryDeleteForUserGuardsMembership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	edge := models.Connection{RequesterID: 1, TargetID: 2, Status: models.ConnectionStatusAccepted}
	require.NoError(t, repo.Create(ctx, &edge))

	rows, err := repo.DeleteForUser(ctx, edge.ID, 99)
	require.NoError(t, err)
	require.Zero(t, rows, "a stranger must not delete the edge")

	rows, err = repo.DeleteForUser(ctx, edge.ID, 2)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	rows, err = repo.DeleteForUser(ctx, edge.ID, 2)
	require.NoError(t, err)
	require.Zero(t, rows, "second delete affects nothing")
}

func TestConnectionRepositoryCountAcceptedOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Connection{RequesterID: 1, TargetID: 2, Status: models.ConnectionStatusAccepted}))
	require.NoError(t, repo.Create(ctx, &models.Connection{RequesterID: 1, TargetID: 3, Status: models.ConnectionStatusPending}))

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
