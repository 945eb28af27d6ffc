package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/handler"
	"github.com/noah-isme/alumnet-go-api/internal/service"
)

type mockProfileService struct {
	lastActor    service.Actor
	lastUserID   uint
	lastFilename string
	lastData     []byte
	updateErr    error
	uploadErr    error
}

func (m *mockProfileService) Update(_ context.Context, actor service.Actor, userID uint, req dto.ProfileUpdateRequest) (dto.UserDetailResponse, error) {
	m.lastActor = actor
	m.lastUserID = userID
	if m.updateErr != nil {
		return dto.UserDetailResponse{}, m.updateErr
	}
	return dto.UserDetailResponse{ID: userID}, nil
}

func (m *mockProfileService) UploadPicture(_ context.Context, actor service.Actor, userID uint, filename string, data []byte) (dto.UploadImageResponse, error) {
	m.lastActor = actor
	m.lastUserID = userID
	m.lastFilename = filename
	m.lastData = data
	if m.uploadErr != nil {
		return dto.UploadImageResponse{}, m.uploadErr
	}
	return dto.UploadImageResponse{PictureURL: "https://cdn.example.com/" + filename}, nil
}

func newProfileApp(svc service.ProfileService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/students", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		c.Locals("user_role", "student")
		return c.Next()
	})
	handler.NewProfileHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func uploadImage(t *testing.T, app *fiber.App, path, filename string, data []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestProfileHandlerUpdateForwardsActor(t *testing.T) {
	svc := &mockProfileService{}
	app := newProfileApp(svc)

	resp := postJSONMethod(t, app, http.MethodPut, "/api/v1/students/profile/7", map[string]string{"company": "Acme"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(7), svc.lastActor.ID)
	require.Equal(t, "student", svc.lastActor.Role)
	require.Equal(t, uint(7), svc.lastUserID)
}

func TestProfileHandlerUpdateForbidden(t *testing.T) {
	app := newProfileApp(&mockProfileService{updateErr: service.ErrForbidden})

	resp := postJSONMethod(t, app, http.MethodPut, "/api/v1/students/profile/8", map[string]string{"company": "Acme"})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProfileHandlerUploadPicture(t *testing.T) {
	svc := &mockProfileService{}
	app := newProfileApp(svc)

	resp := uploadImage(t, app, "/api/v1/students/profile/7/image", "avatar.png", []byte("fake image bytes"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "avatar.png", svc.lastFilename)
	require.Equal(t, []byte("fake image bytes"), svc.lastData)
}

func TestProfileHandlerUploadRequiresFile(t *testing.T) {
	app := newProfileApp(&mockProfileService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/profile/7/image", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProfileHandlerUploadUnsupportedType(t *testing.T) {
	app := newProfileApp(&mockProfileService{uploadErr: service.ErrUnsupportedImage})

	resp := uploadImage(t, app, "/api/v1/students/profile/7/image", "resume.pdf", []byte("%PDF-1.7"))
	require.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}
