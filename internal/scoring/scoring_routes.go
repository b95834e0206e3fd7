package scoring

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kishlayk/pitchside/config"
	"github.com/kishlayk/pitchside/internal/match"
	mw "github.com/kishlayk/pitchside/internal/middleware"
)

// ScoringRoutes sets up live-scoring routes under /matches/:id.
func ScoringRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	matchRepo := match.NewGormMatchRepository(db)
	controller := NewScoringController(matchRepo, appConfig)

	routes := router.Group("/matches")
	routes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		routes.POST("/:id/balls", controller.RecordBall)
		routes.GET("/:id/live", controller.GetLiveState)
		routes.GET("/:id/scorecard", controller.GetScorecard)
	}
}
