package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kishlayk/pitchside/config"
	"github.com/kishlayk/pitchside/internal/middleware"
	"github.com/kishlayk/pitchside/internal/user"
	"github.com/kishlayk/pitchside/pkg/responses"
	"github.com/kishlayk/pitchside/pkg/token"
	"github.com/kishlayk/pitchside/pkg/utils"
)

const (
	otpExpiryMinutes   = 5
	otpCooldownMinutes = 1
	maxOTPAttempts     = 5
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(userID uint) (string, string, error) {
	accessToken, err := token.GenerateJWT(userID, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(userID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    userID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// sendOTPToPhone simulates sending an OTP. Replace with an SMS provider.
func (ac *AuthController) sendOTPToPhone(phone, otpCode string) error {
	logrus.WithFields(logrus.Fields{"phone": phone, "code": otpCode}).Info("simulating OTP delivery")
	return nil
}

// @Summary      Register a new user
// @Description  Create a new scorer account with username, email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201   {object} AuthResponse
// @Failure      400   {object} map[string]string
// @Failure      409   {object} map[string]string
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if _, err := ac.repo.GetUserByEmail(strings.ToLower(req.Email)); !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.ErrorResponse(c, http.StatusConflict, "User with this email already exists")
		return
	}
	if _, err := ac.repo.GetUserByUsername(req.Username); !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.ErrorResponse(c, http.StatusConflict, "User with this username already exists")
		return
	}
	if req.Phone != "" {
		if _, err := ac.repo.GetUserByPhone(req.Phone); !errors.Is(err, gorm.ErrRecordNotFound) {
			responses.ErrorResponse(c, http.StatusConflict, "User with this phone number already exists")
			return
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Error hashing password")
		return
	}

	newUser := &user.User{
		Name:       req.Name,
		Username:   req.Username,
		Email:      strings.ToLower(req.Email),
		Password:   hashedPassword,
		Phone:      req.Phone,
		LastActive: time.Now(),
	}

	if err := ac.repo.CreateUser(newUser); err != nil {
		logrus.WithError(err).Error("user creation failed")
		responses.ErrorResponse(c, http.StatusInternalServerError, "User creation failed")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser.ID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser),
	})
}

// @Summary      Login
// @Description  Authenticate with email or username and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} AuthResponse
// @Failure      401   {object} map[string]string
// @Failure      404   {object} map[string]string
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	foundUser, err := ac.repo.GetUserByEmail(strings.ToLower(req.LoginIdentifier))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		foundUser, err = ac.repo.GetUserByUsername(req.LoginIdentifier)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.ErrorResponse(c, http.StatusNotFound, "User not found")
			return
		}
	}
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Database error")
		return
	}

	if !utils.CheckPassword(foundUser.Password, req.Password) {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	foundUser.LastActive = time.Now()
	if err := ac.repo.UpdateUser(foundUser); err != nil {
		logrus.WithError(err).Warn("failed to update last active timestamp")
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser.ID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(foundUser),
	})
}

// @Summary      Refresh access token
// @Description  Exchange a valid refresh token for a new token pair. The used
// @Description  refresh token is rotated out.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  RefreshTokenRequest  true  "Refresh token"
// @Success      200   {object} AuthResponse
// @Failure      401   {object} map[string]string
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	claims, err := token.ValidateJWT(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid refresh token: "+err.Error())
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Refresh token is revoked or expired")
		return
	}
	if stored.UserID != claims.UserID {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Refresh token does not belong to this user")
		return
	}

	foundUser, err := ac.repo.GetUserByID(claims.UserID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "User no longer exists")
		return
	}

	if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
		logrus.WithError(err).Warn("failed to rotate refresh token")
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser.ID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(foundUser),
	})
}

// @Summary      Logout
// @Description  Invalidate the given refresh token, or all sessions for the user.
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  LogoutRequest  true  "Logout options"
// @Success      200   {object} map[string]string
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if req.InvalidateAllSessions {
		if err := ac.repo.InvalidateAllRefreshTokensForUser(userID); err != nil {
			responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to invalidate sessions")
			return
		}
	} else if req.RefreshToken != "" {
		if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
			responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to invalidate refresh token")
			return
		}
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// @Summary      Current user profile
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200   {object} UserResponse
// @Failure      401   {object} map[string]string
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	foundUser, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusNotFound, "User not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, FilterUserRecord(foundUser))
}

// @Summary      Request a phone OTP
// @Description  Send a 6-digit verification code to the given phone number.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  OTPRequest  true  "Phone number"
// @Success      200   {object} map[string]string
// @Failure      429   {object} map[string]string
// @Router       /auth/request-otp [post]
func (ac *AuthController) RequestOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if latest, err := ac.repo.GetLatestOTP(req.Phone); err == nil {
		if time.Since(latest.CreatedAt) < otpCooldownMinutes*time.Minute {
			responses.ErrorResponse(c, http.StatusTooManyRequests, "Please wait before requesting another code")
			return
		}
	}

	code := utils.GenerateOTPCode(6)
	if code == "" {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate code")
		return
	}

	otp := &OTP{
		Phone:     req.Phone,
		Code:      code,
		ExpiresAt: time.Now().Add(otpExpiryMinutes * time.Minute),
	}
	if err := ac.repo.SaveOTP(otp); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to save code")
		return
	}

	if err := ac.sendOTPToPhone(req.Phone, code); err != nil {
		logrus.WithError(err).Error("failed to send OTP")
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Verification code sent"})
}

// @Summary      Verify a phone OTP
// @Description  Confirm the code sent to the phone; marks the phone verified on
// @Description  the matching account.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  VerifyOTPRequest  true  "Phone and code"
// @Success      200   {object} map[string]string
// @Failure      400   {object} map[string]string
// @Router       /auth/verify-otp [post]
func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	otp, err := ac.repo.GetOTP(req.Phone, req.Code)
	if err != nil {
		if latest, lerr := ac.repo.GetLatestOTP(req.Phone); lerr == nil {
			latest.Attempt++
			if latest.Attempt >= maxOTPAttempts {
				latest.ExpiresAt = time.Now()
			}
			if uerr := ac.repo.UpdateOTP(latest); uerr != nil {
				logrus.WithError(uerr).Warn("failed to record OTP attempt")
			}
		}
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid or expired verification code")
		return
	}

	otp.Verified = true
	if err := ac.repo.UpdateOTP(otp); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to update code")
		return
	}

	if foundUser, err := ac.repo.GetUserByPhone(req.Phone); err == nil {
		foundUser.PhoneVerified = true
		if err := ac.repo.UpdateUser(foundUser); err != nil {
			logrus.WithError(err).Warn("failed to mark phone verified")
		}
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Phone verified successfully"})
}
