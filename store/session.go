package store

import (
	"context"

	"backoffice/domain/auth"
)

type AuthAPI interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (auth.Tokens, error)
}

// Session drives the OTP login and keeps the tokens in a TokenStore, which
// is also the HTTP client's token provider.
type Session struct {
	api    AuthAPI
	tokens auth.TokenStore
	reporter
}

func NewSession(a AuthAPI, tokens auth.TokenStore, notifier Notifier) *Session {
	return &Session{api: a, tokens: tokens, reporter: reporter{notifier: notifier}}
}

func (s *Session) RequestOTP(ctx context.Context, phone string) error {
	req := auth.OTPRequest{PhoneNumber: phone}
	if err := req.Validate(); err != nil {
		return err
	}
	return s.done(s.api.SendOTP(ctx, phone), "OTP sent")
}

// Verify exchanges the code and stores the tokens for every later request.
func (s *Session) Verify(ctx context.Context, phone, code string) error {
	req := auth.VerifyRequest{PhoneNumber: phone, OTPCode: code}
	if err := req.Validate(); err != nil {
		return err
	}
	tokens, err := s.api.VerifyOTP(ctx, phone, code)
	if err != nil {
		return s.failure(err)
	}
	if err := s.tokens.Save(tokens); err != nil {
		return s.failure(err)
	}
	s.success("Signed in")
	return nil
}

func (s *Session) SignedIn() bool {
	return s.tokens.AccessToken() != ""
}

func (s *Session) Logout() error {
	return s.done(s.tokens.Clear(), "Signed out")
}
