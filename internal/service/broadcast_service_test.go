package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
)

type flakyMail struct {
	failFor map[string]bool
	sent    []string
}

func (f *flakyMail) Send(ctx context.Context, to, subject, body string) error {
	if f.failFor[to] {
		return errors.New("delivery refused")
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestBroadcastReportsPartialFailure(t *testing.T) {
	users := newMemoryUserRepo()
	ctx := context.Background()

	ok := seedUser(t, users, "Ok", "ok@example.com")
	bad := seedUser(t, users, "Bad", "bad@example.com")

	mail := &flakyMail{failFor: map[string]bool{"bad@example.com": true}}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewBroadcastService(users, mail, validate, zerolog.Nop())

	response, err := svc.Send(ctx, dto.BroadcastRequest{
		UserIDs: []uint{ok.ID, bad.ID, 999},
		Subject: "Reunion",
		Message: "Save the date.",
	})
	require.NoError(t, err)
	require.Equal(t, 1, response.EmailsSent)
	require.Equal(t, 2, response.EmailsFailed, "failed delivery and missing user both count")
	require.Equal(t, []string{"ok@example.com"}, mail.sent)
}

func TestBroadcastValidatesPayload(t *testing.T) {
	users := newMemoryUserRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewBroadcastService(users, &flakyMail{}, validate, zerolog.Nop())

	_, err := svc.Send(context.Background(), dto.BroadcastRequest{Subject: "No recipients", Message: "hi"})
	require.Error(t, err)
}
