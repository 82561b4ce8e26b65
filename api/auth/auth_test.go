package auth

import (
	"context"
	"net/http"
	"testing"

	"backoffice/api/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyOTP(t *testing.T) {
	srv := apitest.NewServer(t, map[string]string{"access_token": "A", "refresh_token": "B"})
	a := New(srv.Client())

	tokens, err := a.VerifyOTP(context.Background(), "9999999999", "1234")
	require.NoError(t, err)
	assert.Equal(t, "A", tokens.AccessToken)
	assert.Equal(t, "B", tokens.RefreshToken)

	req := srv.Last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/auth/verify", req.Path)
	assert.Equal(t, map[string]any{"phone_number": "9999999999", "otp_code": "1234"}, req.JSON(t))
}

func TestSendOTP(t *testing.T) {
	srv := apitest.NewServer(t, nil)
	require.NoError(t, New(srv.Client()).SendOTP(context.Background(), "9999999999"))

	req := srv.Last(t)
	assert.Equal(t, "/auth/otp", req.Path)
	assert.Equal(t, map[string]any{"phone_number": "9999999999"}, req.JSON(t))
}

func TestSendOTPFailureNotRetried(t *testing.T) {
	srv := apitest.NewServer(t, nil)
	srv.Reply(http.StatusInternalServerError, map[string]any{"success": false, "message": "sms gateway down"})

	err := New(srv.Client()).SendOTP(context.Background(), "9999999999")
	assert.EqualError(t, err, "SERVER_ERROR: sms gateway down")
	assert.Len(t, srv.Requests(), 1)
}
