package main

import (
	"log"

	"github.com/kishlayk/pitchside/config"
	_ "github.com/kishlayk/pitchside/docs"
	"github.com/kishlayk/pitchside/internal/auth"
	"github.com/kishlayk/pitchside/internal/match"
	"github.com/kishlayk/pitchside/internal/user"
	"github.com/kishlayk/pitchside/routes"
)

// @title Pitchside REST API
// @version 1.0
// @description Ball-by-ball cricket match scoring server 🏏.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.RefreshToken{}, &auth.OTP{},
		&match.Match{}, &match.Ball{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(cfg)

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
