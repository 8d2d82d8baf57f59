package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// AdminSeed is the administrator account described by ADMIN_* variables.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()
	if cfg.AdminEmail == "" {
		log.Fatal("ADMIN_EMAIL is required")
	}

	// Connect to database
	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	created, err := seedAdmin(context.Background(), userRepo, AdminSeed{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
		Phone:    cfg.AdminPhone,
	})
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if created {
		log.Printf("Seed completed: admin %s created", service.NormalizeEmail(cfg.AdminEmail))
	} else {
		log.Printf("Seed completed: existing account %s promoted to admin", service.NormalizeEmail(cfg.AdminEmail))
	}
}

// seedAdmin creates the admin account, or promotes and verifies an existing one.
// An existing password is replaced only when a new one is supplied.
func seedAdmin(ctx context.Context, repo repository.UserRepository, seed AdminSeed) (created bool, err error) {
	email := service.NormalizeEmail(seed.Email)

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("error checking account %s: %w", email, err)
	}

	var hash *string
	if seed.Password != "" {
		hashed, err := service.HashPassword(seed.Password)
		if err != nil {
			return false, fmt.Errorf("hash password: %w", err)
		}
		hash = &hashed
	}

	if existing != nil {
		existing.IsAdmin = true
		existing.IsVerified = true
		if hash != nil {
			existing.PasswordHash = hash
		}
		if err := repo.Save(ctx, existing); err != nil {
			return false, fmt.Errorf("error updating account %s: %w", email, err)
		}
		return false, nil
	}

	if hash == nil {
		return false, errors.New("ADMIN_PASSWORD is required to create a new admin")
	}
	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         seed.Name,
		Phone:        seed.Phone,
		IsAdmin:      true,
		IsVerified:   true,
		AuthProvider: model.AuthProviderLocal,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("error creating account %s: %w", email, err)
	}
	return true, nil
}
