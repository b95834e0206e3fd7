package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kishlayk/pitchside/config"
	mw "github.com/kishlayk/pitchside/internal/middleware"
)

// MatchRoutes sets up match creation and retrieval routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	matchRepo := NewGormMatchRepository(db)
	matchController := NewMatchController(matchRepo, appConfig)

	authRoutes := router.Group("/matches")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("", matchController.CreateMatch)
		authRoutes.GET("", matchController.GetUserMatches)
		authRoutes.GET("/:id", matchController.GetMatchByID)
	}
}
