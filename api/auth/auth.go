// Package auth wraps the OTP login endpoints.
package auth

import (
	"context"
	"net/http"

	"backoffice/api"
	domain "backoffice/domain/auth"
)

const (
	otpPath    = "/auth/otp"
	verifyPath = "/auth/verify"
)

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

// SendOTP asks the backend to text a one-time code to phone.
func (a *API) SendOTP(ctx context.Context, phone string) error {
	_, err := api.One[any](ctx, a.c, http.MethodPost, otpPath, domain.OTPRequest{PhoneNumber: phone})
	return err
}

// VerifyOTP exchanges the code for tokens. Persisting them is the caller's job.
func (a *API) VerifyOTP(ctx context.Context, phone, code string) (domain.Tokens, error) {
	return api.One[domain.Tokens](ctx, a.c, http.MethodPost, verifyPath, domain.VerifyRequest{PhoneNumber: phone, OTPCode: code})
}
