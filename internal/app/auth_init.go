// Package app provides authentication initialization.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/parceltrack/parcel-service/config"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/repository"
)

// seedAdminUser creates the configured admin account if it does not
// exist yet. Operator accounts are provisioned the same way out of band;
// only the initial admin is bootstrapped from configuration.
func seedAdminUser(userRepo repository.UserRepositoryInterface, cfg config.AuthConfig, hubID string) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := userRepo.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:    cfg.AdminEmail,
		Password: string(hash),
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		HubID:    hubID,
		Active:   true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info().Str("email", cfg.AdminEmail).Str("hub_id", hubID).Msg("Created seed admin account")
	return nil
}
