// Package main is the entry point for the parcel-service application.
//
// @title           ParcelTrack API
// @version         1.0.0
// @description     API for multi-tenant parcel intake, storage, and pickup tracking.
//
//	Operators check parcels in and out at their hub's counter, recipients
//	pre-register expected deliveries, and anyone can track a parcel by its
//	courier tracking ID.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/parceltrack/parcel-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT access token, prefixed with "Bearer ".
//
// @tag.name        Parcels
// @tag.description Operator counter operations
//
// @tag.name        Recipient
// @tag.description Recipient self-service endpoints
//
// @tag.name        Tracking
// @tag.description Public parcel tracking
//
// @tag.name        Admin
// @tag.description Administrative overrides and settings
//
// @tag.name        Auth
// @tag.description Authentication and authorization endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/parceltrack/parcel-service/docs" // swagger docs

	"github.com/parceltrack/parcel-service/config"
	"github.com/parceltrack/parcel-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Initialization error")
	}
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
