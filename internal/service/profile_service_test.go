package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
)

type uploaderStub struct {
	uploads []string
}

func (u *uploaderStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	u.uploads = append(u.uploads, name)
	return fmt.Sprintf("https://cdn.example.com/%s", name), nil
}

// Shortest valid PNG signature plus IHDR header, enough for type detection.
var pngBytes = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
}

func newProfileFixture(t *testing.T) (ProfileService, *memoryUserRepo, *uploaderStub, *recorderStub) {
	t.Helper()
	users := newMemoryUserRepo()
	uploader := &uploaderStub{}
	recorder := &recorderStub{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewProfileService(users, uploader, recorder, validate, zerolog.Nop()), users, uploader, recorder
}

func strPtr(s string) *string { return &s }

func TestProfileUpdateRequiresOwnershipOrAdmin(t *testing.T) {
	svc, users, _, _ := newProfileFixture(t)
	ctx := context.Background()

	owner := seedUser(t, users, "Owner", "owner@example.com")
	stranger := seedUser(t, users, "Stranger", "stranger@example.com")

	_, err := svc.Update(ctx, Actor{ID: stranger.ID, Role: models.RoleAlumni}, owner.ID, dto.ProfileUpdateRequest{
		Company: strPtr("Acme"),
	})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, Actor{ID: owner.ID, Role: models.RoleAlumni}, owner.ID, dto.ProfileUpdateRequest{
		Company:     strPtr("Acme"),
		Designation: strPtr("Engineer"),
		Skills:      []string{"go", "sql"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Profile)
	require.Equal(t, "Acme", updated.Profile.Company)
	require.Equal(t, []string{"go", "sql"}, updated.Profile.Skills)
}

func TestProfileAdminEditIsAudited(t *testing.T) {
	svc, users, _, recorder := newProfileFixture(t)
	ctx := context.Background()

	owner := seedUser(t, users, "Owner", "owner@example.com")

	_, err := svc.Update(ctx, Actor{ID: 99, Email: "admin@example.com", Role: models.RoleAdmin}, owner.ID, dto.ProfileUpdateRequest{
		Course: strPtr("CS"),
	})
	require.NoError(t, err)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	require.Equal(t, models.ActionUpdate, entry.Action)
	require.Equal(t, "profile", entry.Metadata["entity"])
	require.Equal(t, owner.ID, entry.Metadata["target_user_id"])

	// Self edits stay out of the audit trail.
	_, err = svc.Update(ctx, Actor{ID: owner.ID, Role: models.RoleAlumni}, owner.ID, dto.ProfileUpdateRequest{
		Course: strPtr("EE"),
	})
	require.NoError(t, err)
	require.Len(t, recorder.entries, 1)
}

func TestProfileUploadRejectsNonImages(t *testing.T) {
	svc, users, uploader, _ := newProfileFixture(t)
	ctx := context.Background()

	owner := seedUser(t, users, "Owner", "owner@example.com")
	actor := Actor{ID: owner.ID, Role: models.RoleAlumni}

	_, err := svc.UploadPicture(ctx, actor, owner.ID, "resume.pdf", []byte("%PDF-1.7 not a picture"))
	require.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = svc.UploadPicture(ctx, actor, owner.ID, "empty.png", nil)
	require.ErrorIs(t, err, ErrUnsupportedImage)
	require.Empty(t, uploader.uploads)
}

func TestProfileUploadStoresPictureURL(t *testing.T) {
	svc, users, uploader, _ := newProfileFixture(t)
	ctx := context.Background()

	owner := seedUser(t, users, "Owner", "owner@example.com")

	response, err := svc.UploadPicture(ctx, Actor{ID: owner.ID, Role: models.RoleAlumni}, owner.ID, "avatar.png", pngBytes)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/avatar.png", response.PictureURL)
	require.Equal(t, []string{"avatar.png"}, uploader.uploads)

	profile, err := users.GetProfile(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, response.PictureURL, profile.PictureURL)
}
