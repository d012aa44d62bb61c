package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymsuite/backend/internal/middleware"
	"github.com/gymsuite/backend/internal/policy"
	"github.com/gymsuite/backend/internal/resources"
	"github.com/gymsuite/backend/internal/services"
	"github.com/gymsuite/backend/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Register creates a new trainee account and mails a verification link
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email to verify your account.",
		"data":    resources.NewUser(user, nil),
	})
}

// Login authenticates and returns a bearer token with role abilities
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     result.Token,
		"expire_at": result.ExpireAt,
		"user":      resources.NewUser(result.User, nil),
		"abilities": policy.AbilitiesFor(result.User.Role),
	})
}

// Logout revokes the presented token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(middleware.GetToken(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Logged out successfully")
}

// CurrentUser returns the authenticated account
// GET /api/auth/user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.userService.GetByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      resources.NewUser(user, resources.With("gym", "primary_location", "locations", "subscriptions")),
		"abilities": policy.AbilitiesFor(user.Role),
	})
}

// ForgotPassword mails a reset link when the address exists
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	if err := h.authService.ForgotPassword(&req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "If the email exists, a password reset link has been sent.")
}

// ResetPassword consumes a reset token and sets a new password
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Your password has been reset.")
}

// VerifyEmail marks the account verified
// GET /api/auth/verify-email?token=
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.BadRequest(c, "missing verification token")
		return
	}

	if _, err := h.authService.VerifyEmail(token); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Your email has been verified.")
}

// ResendVerification mails a fresh verification link, rate limited
// POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req services.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "If the email exists and is unverified, a new verification link has been sent.")
}
