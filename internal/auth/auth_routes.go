package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kishlayk/pitchside/config"
	"github.com/kishlayk/pitchside/internal/middleware"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
		authPublic.POST("/refresh-token", authController.RefreshToken)

		authPublic.POST("/request-otp", authController.RequestOTP)
		authPublic.POST("/verify-otp", authController.VerifyOTP)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authProtected.GET("/me", authController.GetProfile)
		authProtected.POST("/logout", authController.Logout)
	}
}
