package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kishlayk/pitchside/config"
	"github.com/kishlayk/pitchside/internal/auth"
	"github.com/kishlayk/pitchside/internal/match"
	"github.com/kishlayk/pitchside/internal/scoring"
)

func SetupRoutes(appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "pitchside", "status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, config.DB, appConfig)
	match.MatchRoutes(api, config.DB, appConfig)
	scoring.ScoringRoutes(api, config.DB, appConfig)

	return r
}
