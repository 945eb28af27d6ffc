package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
)

func newEnrollmentFixture(t *testing.T) (EnrollmentService, *memoryEnrollmentRepo, *recorderStub) {
	t.Helper()
	repo := &memoryEnrollmentRepo{}
	recorder := &recorderStub{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewEnrollmentService(repo, recorder, validate, zerolog.Nop()), repo, recorder
}

func adminActor() Actor {
	return Actor{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
}

func TestEnrollmentCreateRejectsDuplicatePair(t *testing.T) {
	svc, _, recorder := newEnrollmentFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor(), dto.EnrollmentCreateRequest{EnrollmentID: "EN-1", Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminActor(), dto.EnrollmentCreateRequest{EnrollmentID: "EN-1", Role: models.RoleStudent})
	require.ErrorIs(t, err, ErrEnrollmentExists)

	// The same ID under a different role is a distinct record.
	_, err = svc.Create(ctx, adminActor(), dto.EnrollmentCreateRequest{EnrollmentID: "EN-1", Role: models.RoleAlumni})
	require.NoError(t, err)

	require.Len(t, recorder.entries, 2)
	require.Equal(t, models.ActionCreate, recorder.entries[0].Action)
}

func TestEnrollmentDeleteAudits(t *testing.T) {
	svc, _, recorder := newEnrollmentFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), dto.EnrollmentCreateRequest{EnrollmentID: "EN-9", Role: models.RoleFaculty})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, adminActor(), created.ID))
	require.ErrorIs(t, svc.Delete(ctx, adminActor(), created.ID), ErrEnrollmentMissing)

	require.Len(t, recorder.entries, 2)
	last := recorder.entries[1]
	require.Equal(t, models.ActionDelete, last.Action)
	require.Equal(t, "enrollment", last.Metadata["entity"])
	require.Equal(t, "EN-9", last.Metadata["enrollment_id"])
}
