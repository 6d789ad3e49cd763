package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/InSantoshMahto/login-system/domain"
	"github.com/InSantoshMahto/login-system/internal/services"
)

// clientTypeHeader marks that the call originates from a recognized client
// surface; every password operation requires it
const clientTypeHeader = "Client-Type"

// Field-presence messages, aggregated into a single 412 response
const (
	msgClientTypeRequired   = "Client-Type header is required."
	msgUserNameRequired     = "userName is required."
	msgUserIDRequired       = "user_id is required."
	msgOTPRequired          = "otp is required."
	msgPasswordRequired     = "password is required."
	msgOldPasswordRequired  = "oldPassword is required."
	msgSessionTokenRequired = "sessionToken is required."
)

// PasswordHandlers handles the password recovery and change HTTP requests
type PasswordHandlers struct {
	recoverySvc domain.RecoveryService
	policy      *services.PasswordPolicy
}

// NewPasswordHandlers creates new password handlers
func NewPasswordHandlers(recoverySvc domain.RecoveryService, policy *services.PasswordPolicy) *PasswordHandlers {
	return &PasswordHandlers{
		recoverySvc: recoverySvc,
		policy:      policy,
	}
}

// ForgetRequest represents a forgot-password request
type ForgetRequest struct {
	UserName string `json:"userName"`
}

// VerifyRequest represents a one-time code verification request
type VerifyRequest struct {
	UserID uint   `json:"user_id"`
	OTP    string `json:"otp"`
}

// UpdateRequest represents a password commit request for the forgot-password
// flow; SessionToken carries the proof token obtained from verification
type UpdateRequest struct {
	UserID       uint   `json:"user_id"`
	Password     string `json:"password"`
	SessionToken string `json:"sessionToken"`
}

// ChangeRequest represents an authenticated in-session password change
type ChangeRequest struct {
	Password    string `json:"password"`
	OldPassword string `json:"oldPassword"`
}

// bindBody decodes the JSON body, tolerating an absent body so that
// field-presence checks can report every missing field at once
func bindBody(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && err != io.EOF {
		respondError(c, http.StatusBadRequest, "invalid request body.")
		return false
	}
	return true
}

// Forget handles a forgot-password request: it issues a one-time code and
// dispatches it to the user's registered email address
func (h *PasswordHandlers) Forget(c *gin.Context) {
	var req ForgetRequest
	if !bindBody(c, &req) {
		return
	}

	var reasons []string
	if c.GetHeader(clientTypeHeader) == "" {
		reasons = append(reasons, msgClientTypeRequired)
	}
	if req.UserName == "" {
		reasons = append(reasons, msgUserNameRequired)
	}
	if len(reasons) > 0 {
		respondError(c, http.StatusPreconditionFailed, strings.Join(reasons, " "))
		return
	}

	record, err := h.recoverySvc.RequestReset(c.Request.Context(), req.UserName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(c, http.StatusBadRequest, "user don't exist.")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to process request.")
		return
	}

	respondOK(c, gin.H{
		"user_id":  record.UserID,
		"userName": req.UserName,
		"type":     record.Type,
		"message":  "otp successfully send to your registered email address.",
	})
}

// Verify handles one-time code verification: a matching code is consumed
// and exchanged for a proof token scoped to the forget-password purpose
func (h *PasswordHandlers) Verify(c *gin.Context) {
	var req VerifyRequest
	if !bindBody(c, &req) {
		return
	}

	var reasons []string
	if c.GetHeader(clientTypeHeader) == "" {
		reasons = append(reasons, msgClientTypeRequired)
	}
	if req.UserID == 0 {
		reasons = append(reasons, msgUserIDRequired)
	}
	if req.OTP == "" {
		reasons = append(reasons, msgOTPRequired)
	}
	if len(reasons) > 0 {
		respondError(c, http.StatusPreconditionFailed, strings.Join(reasons, " "))
		return
	}

	token, err := h.recoverySvc.VerifyReset(c.Request.Context(), req.UserID, req.OTP)
	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) || errors.Is(err, domain.ErrCodeInvalid) {
			respondError(c, http.StatusUnauthorized, "invalid otp.")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to verify otp.")
		return
	}

	respondOK(c, gin.H{
		"user_id":      req.UserID,
		"sessionToken": token,
		"message":      "otp verified successfully.",
	})
}

// Update handles the password commit of the forgot-password flow. All
// missing-field and password-policy violations are collected into one 412
// before the proof token is even looked at.
func (h *PasswordHandlers) Update(c *gin.Context) {
	var req UpdateRequest
	if !bindBody(c, &req) {
		return
	}

	var reasons []string
	if c.GetHeader(clientTypeHeader) == "" {
		reasons = append(reasons, msgClientTypeRequired)
	}
	if req.UserID == 0 {
		reasons = append(reasons, msgUserIDRequired)
	}
	if req.SessionToken == "" {
		reasons = append(reasons, msgSessionTokenRequired)
	}
	if req.Password == "" {
		reasons = append(reasons, msgPasswordRequired)
	} else {
		reasons = append(reasons, h.policy.Validate(req.Password)...)
	}
	if len(reasons) > 0 {
		respondError(c, http.StatusPreconditionFailed, strings.Join(reasons, " "))
		return
	}

	err := h.recoverySvc.CommitReset(c.Request.Context(), req.UserID, req.Password, req.SessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) || errors.Is(err, domain.ErrTokenExpired) {
			respondError(c, http.StatusUnauthorized, "Invalid sessionToken")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update password.")
		return
	}

	respondOK(c, gin.H{
		"user_id": req.UserID,
		"message": "your password changed Successfully",
	})
}

// Change handles the authenticated in-session password change. Policy
// violations are reported ahead of the old-password check, so a weak new
// password with a wrong old password still yields the policy error.
func (h *PasswordHandlers) Change(c *gin.Context) {
	userValue, exists := c.Get("userDetails")
	if !exists {
		respondError(c, http.StatusUnauthorized, "invalid session token")
		return
	}
	user := userValue.(*domain.User)

	var req ChangeRequest
	if !bindBody(c, &req) {
		return
	}

	var reasons []string
	if c.GetHeader(clientTypeHeader) == "" {
		reasons = append(reasons, msgClientTypeRequired)
	}
	if req.Password == "" {
		reasons = append(reasons, msgPasswordRequired)
	} else {
		reasons = append(reasons, h.policy.Validate(req.Password)...)
	}
	if req.OldPassword == "" {
		reasons = append(reasons, msgOldPasswordRequired)
	}
	if len(reasons) > 0 {
		respondError(c, http.StatusPreconditionFailed, strings.Join(reasons, " "))
		return
	}

	err := h.recoverySvc.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOldPasswordMismatch):
			respondError(c, http.StatusBadRequest, "Password Not Matched with oldPassword")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(c, http.StatusBadRequest, "user don't exist.")
		default:
			respondError(c, http.StatusInternalServerError, "failed to change password.")
		}
		return
	}

	respondOK(c, gin.H{
		"user_id": user.ID,
		"message": "your password changed Successfully",
	})
}
