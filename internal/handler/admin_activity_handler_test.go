package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/handler"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/service"
)

type mockActivityService struct {
	lastListRequest dto.ActivityListRequest
	purgeErr        error
	purged          []string
}

func (m *mockActivityService) Record(_ context.Context, entry service.ActivityEntry) error {
	return nil
}

func (m *mockActivityService) List(_ context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	m.lastListRequest = req
	return dto.ActivityListResponse{}, nil
}

func (m *mockActivityService) IssuePurgeToken(_ context.Context) (dto.PurgeTokenResponse, error) {
	return dto.PurgeTokenResponse{Token: "purge-token", ExpiresIn: 300}, nil
}

func (m *mockActivityService) Purge(_ context.Context, confirmationToken string) (dto.PurgeResponse, error) {
	if m.purgeErr != nil {
		return dto.PurgeResponse{}, m.purgeErr
	}
	m.purged = append(m.purged, confirmationToken)
	return dto.PurgeResponse{Deleted: 12}, nil
}

func newActivityApp(svc service.ActivityService) *fiber.App {
	app := fiber.New()
	handler.NewAdminActivityHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/admin"))
	return app
}

func TestActivityHandlerLoginLogsForceActionFilter(t *testing.T) {
	svc := &mockActivityService{}
	app := newActivityApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/login-logs?action=UPDATE&user_id=3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Empty(t, svc.lastListRequest.Action, "free-form action filter is ignored on the login view")
	require.Equal(t, []string{models.ActionLogin, models.ActionLogout}, svc.lastListRequest.Actions)
	require.Equal(t, uint(3), svc.lastListRequest.UserID)
}

func TestActivityHandlerAuditLogsRejectBadQuery(t *testing.T) {
	app := newActivityApp(&mockActivityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit-logs?page=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestActivityHandlerPurgeFlow(t *testing.T) {
	svc := &mockActivityService{}
	app := newActivityApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/logs/purge-token", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tokenResponse struct {
		Status string                 `json:"status"`
		Data   dto.PurgeTokenResponse `json:"data"`
	}
	decodeResponse(t, resp, &tokenResponse)
	require.Equal(t, "purge-token", tokenResponse.Data.Token)

	resp = postJSONMethod(t, app, http.MethodDelete, "/api/v1/admin/logs", dto.PurgeRequest{ConfirmationToken: tokenResponse.Data.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"purge-token"}, svc.purged)

	svc.purgeErr = service.ErrPurgeTokenInvalid
	resp = postJSONMethod(t, app, http.MethodDelete, "/api/v1/admin/logs", dto.PurgeRequest{ConfirmationToken: "stale"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	svc.purgeErr = service.ErrPurgeUnavailable
	resp = postJSONMethod(t, app, http.MethodDelete, "/api/v1/admin/logs", dto.PurgeRequest{ConfirmationToken: "any"})
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
