package model

import (
	"context"
	"errors"
	"strings"

	"storerate/internal/auth"
	"storerate/internal/config"
	"storerate/internal/entity"

	"gorm.io/gorm"
)

// SeedDefaultAdmin ensures the bootstrap admin account exists. It is a
// no-op unless ADMIN_EMAIL and ADMIN_PASSWORD are configured.
func SeedDefaultAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	password := strings.TrimSpace(cfg.AdminPassword)
	if email == "" || password == "" {
		return nil
	}

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		Name:         strings.TrimSpace(cfg.AdminName),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleAdmin,
	}
	return repo.CreateUser(ctx, admin)
}
