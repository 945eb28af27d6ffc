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
	"github.com/noah-isme/alumnet-go-api/internal/service"
)

type mockConnectionService struct {
	requestErr error
	acceptErr  error
	requested  [][2]uint
	accepted   [][2]uint
	removed    [][2]uint
}

func (m *mockConnectionService) Request(_ context.Context, requesterID, targetID uint) (dto.ConnectionResponse, error) {
	if m.requestErr != nil {
		return dto.ConnectionResponse{}, m.requestErr
	}
	m.requested = append(m.requested, [2]uint{requesterID, targetID})
	return dto.ConnectionResponse{ID: 1, Status: "pending"}, nil
}

func (m *mockConnectionService) Accept(_ context.Context, userID, connectionID uint) (dto.ConnectionResponse, error) {
	if m.acceptErr != nil {
		return dto.ConnectionResponse{}, m.acceptErr
	}
	m.accepted = append(m.accepted, [2]uint{userID, connectionID})
	return dto.ConnectionResponse{ID: connectionID, Status: "accepted"}, nil
}

func (m *mockConnectionService) List(_ context.Context, userID uint) (dto.ConnectionListResponse, error) {
	return dto.ConnectionListResponse{}, nil
}

func (m *mockConnectionService) ListRequests(_ context.Context, userID uint) (dto.ConnectionListResponse, error) {
	return dto.ConnectionListResponse{}, nil
}

func (m *mockConnectionService) Remove(_ context.Context, userID, connectionID uint) error {
	m.removed = append(m.removed, [2]uint{userID, connectionID})
	return nil
}

func newConnectionApp(svc service.ConnectionService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/notifications", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(5))
		return c.Next()
	})
	handler.NewConnectionHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestConnectionHandlerRequest(t *testing.T) {
	svc := &mockConnectionService{}
	app := newConnectionApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/connect/9", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, [][2]uint{{5, 9}}, svc.requested)
}

func TestConnectionHandlerRequestErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "self", err: service.ErrSelfConnection, statusCode: fiber.StatusBadRequest},
		{name: "missing target", err: service.ErrUserNotFound, statusCode: fiber.StatusNotFound},
		{name: "duplicate", err: service.ErrConnectionExists, statusCode: fiber.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newConnectionApp(&mockConnectionService{requestErr: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/connect/9", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestConnectionHandlerAcceptForbidden(t *testing.T) {
	app := newConnectionApp(&mockConnectionService{acceptErr: service.ErrNotRequestTarget})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/requests/4/accept", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestConnectionHandlerRemove(t *testing.T) {
	svc := &mockConnectionService{}
	app := newConnectionApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/notifications/connections/4", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, [][2]uint{{5, 4}}, svc.removed)
}
