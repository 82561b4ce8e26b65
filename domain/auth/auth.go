// Package auth defines the credentials the API client needs and where they live.
package auth

import (
	"strings"

	"backoffice/pkg/validation"
)

// Tokens returned by POST /auth/verify
type Tokens struct {
	AccessToken  string `json:"access_token" yaml:"access_token"`
	RefreshToken string `json:"refresh_token" yaml:"refresh_token"`
}

// Empty reports whether no access token is present.
func (t Tokens) Empty() bool { return strings.TrimSpace(t.AccessToken) == "" }

// TokenProvider is read on every outgoing request, never cached by the client.
type TokenProvider interface {
	// AccessToken returns the current bearer token, or "" when signed out.
	AccessToken() string
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func() string

func (f TokenProviderFunc) AccessToken() string { return f() }

// TokenStore persists tokens between the login flow and later requests.
type TokenStore interface {
	TokenProvider
	RefreshToken() string
	Save(Tokens) error
	Clear() error
}

// OTPRequest Body of POST /auth/otp
type OTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
}

func (r OTPRequest) Validate() error { return validation.Struct(r) }

// VerifyRequest Body of POST /auth/verify
type VerifyRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	OTPCode     string `json:"otp_code" validate:"required,numeric,min=4,max=8"`
}

func (r VerifyRequest) Validate() error { return validation.Struct(r) }
