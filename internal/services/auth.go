package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gymsuite/backend/internal/cache"
	"github.com/gymsuite/backend/internal/config"
	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/utils"
	"github.com/gymsuite/backend/pkg/logger"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

const (
	verificationTokenTTL = 24 * time.Hour
	passwordResetTTL     = time.Hour
	resendWindow         = time.Hour
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
	email     *EmailService
	cache     cache.Store
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig, email *EmailService, store cache.Store) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg, email: email, cache: store}
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8"`
	Mobile    string `json:"mobile" binding:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token    string
	ExpireAt time.Time
	User     *models.User
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Register creates a trainee account and mails a verification link.
// The account stays unverified until the link is followed.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewValidationError("email", "The email has already been taken.")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		Mobile:    req.Mobile,
		Role:      models.RoleTrainee,
		Status:    "active",
	}

	var token string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		var err error
		token, err = s.issueVerificationToken(tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.email.SendVerificationEmail(&user, token); err != nil {
		logger.Warnf("auth: verification email for %s failed: %v", user.Email, err)
	}

	return &user, nil
}

// Login verifies credentials and issues a bearer token. The token is
// also recorded server-side so logout can revoke exactly this one.
// Wrong email and wrong password get the same answer.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("Invalid email or password")
	}

	if !user.HasVerifiedEmail() {
		return nil, response.NewForbidden("Your email address is not verified")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	expireAt := time.Now().Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour)
	record := models.AccessToken{
		UserID:    user.ID,
		Name:      "api",
		TokenHash: hashToken(token),
		ExpiresAt: expireAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Model(&user).Update("last_login", now)

	return &LoginResult{Token: token, ExpireAt: expireAt, User: &user}, nil
}

// ValidateAccessToken checks the JWT signature and the server-side
// token record, then loads the account. Used by the auth middleware.
func (s *AuthService) ValidateAccessToken(token string) (*models.User, *utils.Claims, error) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, nil, response.NewUnauthorized("Invalid or expired token")
	}

	var record models.AccessToken
	if err := s.db.Where("token_hash = ?", hashToken(token)).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewUnauthorized("Invalid or expired token")
		}
		return nil, nil, err
	}
	if record.RevokedAt != nil || time.Now().After(record.ExpiresAt) {
		return nil, nil, response.NewUnauthorized("Invalid or expired token")
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewUnauthorized("Invalid or expired token")
		}
		return nil, nil, err
	}

	return &user, claims, nil
}

// Logout revokes the presented token only. Other sessions stay alive.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	now := time.Now()
	return s.db.Model(&models.AccessToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hashToken(token)).
		Update("revoked_at", now).Error
}

// ForgotPassword issues a reset token when the account exists. The
// caller gets the same answer either way so addresses cannot be probed.
func (s *AuthService) ForgotPassword(req *ForgotPasswordRequest) error {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, tokenHash, err := generateToken()
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", req.Email).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.PasswordResetToken{
			Email:     req.Email,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(passwordResetTTL),
		}).Error
	})
	if err != nil {
		return err
	}

	if err := s.email.SendPasswordResetEmail(req.Email, token); err != nil {
		logger.Warnf("auth: password reset email for %s failed: %v", req.Email, err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets the new password. All
// existing sessions of the account are revoked.
func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	var stored models.PasswordResetToken
	err := s.db.Where("token_hash = ? AND email = ?", hashToken(req.Token), req.Email).First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewValidationError("token", "This password reset token is invalid.")
		}
		return err
	}
	if stored.UsedAt != nil || time.Now().After(stored.ExpiresAt) {
		return response.NewValidationError("token", "This password reset token is invalid.")
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewValidationError("token", "This password reset token is invalid.")
		}
		return err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password", hashed).Error; err != nil {
			return err
		}
		if err := tx.Model(&stored).Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&models.AccessToken{}).
			Where("user_id = ? AND revoked_at IS NULL", user.ID).
			Update("revoked_at", now).Error
	})
}

// VerifyEmail consumes a verification token and marks the account
// verified.
func (s *AuthService) VerifyEmail(token string) (*models.User, error) {
	var stored models.VerificationToken
	err := s.db.Where("token_hash = ?", hashToken(token)).First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidationError("token", "This verification token is invalid.")
		}
		return nil, err
	}
	if stored.UsedAt != nil || time.Now().After(stored.ExpiresAt) {
		return nil, response.NewValidationError("token", "This verification token is invalid.")
	}

	var user models.User
	if err := s.db.First(&user, stored.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidationError("token", "This verification token is invalid.")
		}
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("email_verified_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&stored).Update("used_at", now).Error
	})
	if err != nil {
		return nil, err
	}

	user.EmailVerifiedAt = &now
	return &user, nil
}

// ResendVerification mails a fresh verification link, at most once per
// hour per address. Unknown and already-verified addresses get the
// same answer as a successful resend.
func (s *AuthService) ResendVerification(ctx context.Context, req *ResendVerificationRequest) error {
	key := "verification:resend:" + req.Email
	if _, found, err := s.cache.Get(ctx, key); err != nil {
		return err
	} else if found {
		return response.NewTooManyRequests("A verification email was sent recently. Please try again later.")
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if user.HasVerifiedEmail() {
		return nil
	}

	var token string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		token, err = s.issueVerificationToken(tx, user.ID)
		return err
	})
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, key, "1", resendWindow); err != nil {
		logger.Warnf("auth: resend marker for %s failed: %v", req.Email, err)
	}

	if err := s.email.SendVerificationEmail(&user, token); err != nil {
		logger.Warnf("auth: verification email for %s failed: %v", user.Email, err)
	}

	return nil
}

// issueVerificationToken replaces any outstanding verification tokens
// for the user with a fresh one and returns the raw token.
func (s *AuthService) issueVerificationToken(tx *gorm.DB, userID uint) (string, error) {
	token, tokenHash, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.VerificationToken{}).Error; err != nil {
		return "", err
	}
	err = tx.Create(&models.VerificationToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}).Error
	if err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (token string, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err = rand.Read(randomBytes); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(randomBytes)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
