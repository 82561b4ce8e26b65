package mockserver

import (
	"backoffice/domain/auth"
	"backoffice/mockserver/response"
	"backoffice/pkg/errors"
	"backoffice/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bind decodes the JSON body into dst or answers 400.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, err, "Invalid request body")
		return false
	}
	return true
}

// POST /auth/otp
func (s *Server) sendOTP(c *gin.Context) {
	var req auth.OTPRequest
	if !bind(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	s.data.mu.Lock()
	s.data.pendingOTP[req.PhoneNumber] = s.otp
	s.data.mu.Unlock()

	logger.FromContext(c.Request.Context()).Info("OTP issued", zap.String("phone_number", req.PhoneNumber))
	response.OK(c, nil, "OTP sent successfully")
}

// POST /auth/verify
func (s *Server) verifyOTP(c *gin.Context) {
	var req auth.VerifyRequest
	if !bind(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.Fail(c, err)
		return
	}

	tokens, err := s.data.verify(req.PhoneNumber, req.OTPCode)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, tokens, "Logged in successfully")
}

func (d *Data) verify(phone, code string) (auth.Tokens, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	expected, ok := d.pendingOTP[phone]
	if !ok {
		return auth.Tokens{}, errors.Logical("no OTP was requested for this phone number")
	}
	if expected != code {
		return auth.Tokens{}, errors.Validation(map[string]string{"otp_code": "is incorrect"})
	}
	delete(d.pendingOTP, phone)

	tokens := auth.Tokens{AccessToken: uuid.NewString(), RefreshToken: uuid.NewString()}
	d.sessions[tokens.AccessToken] = phone
	return tokens, nil
}

// ValidToken satisfies middleware.TokenVerifier.
func (d *Data) ValidToken(token string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.sessions[token]
	return ok
}

// IssueToken opens a session without the OTP round trip. Used by tests and
// by cmd/mockapi to print a ready-made token.
func (d *Data) IssueToken(phone string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	token := uuid.NewString()
	d.sessions[token] = phone
	return token
}
