package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"parish-portal-be/internal/config"
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/internal/repository/unitofwork"
	"parish-portal-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	gormLogger "gorm.io/gorm/logger"
)

// seed creates an admin account, or promotes an existing account to admin.
//
//	go run ./cmd/seed -email priest@parish.org -name "Parish Office" -password 'S3cret!pass'
func main() {
	email := flag.String("email", "", "admin email (required)")
	name := flag.String("name", "Parish Admin", "display name for a new account")
	password := flag.String("password", "", "password for a new account")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		color.Red("Error: -email is required")
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, gormLogger.Warn)
	if err != nil {
		color.Red("Error: failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	users := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx).UserRepository()

	normalized := strings.ToLower(strings.TrimSpace(*email))
	existing, err := users.FindOne(ctx, specification.ByEmail{Email: normalized})
	if err != nil {
		color.Red("Error: lookup failed: %v", err)
		os.Exit(1)
	}

	if existing != nil {
		if existing.Role == entity.UserRoleAdmin {
			color.Yellow("%s is already an admin", normalized)
			return
		}
		if err := users.UpdateRole(ctx, existing.Id, entity.UserRoleAdmin); err != nil {
			color.Red("Error: promotion failed: %v", err)
			os.Exit(1)
		}
		color.Green("Promoted %s to admin", normalized)
		return
	}

	if *password == "" {
		color.Red("Error: -password is required to create a new account")
		os.Exit(2)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error: hashing failed: %v", err)
		os.Exit(1)
	}

	admin := &entity.User{
		Id:                uuid.New(),
		Name:              *name,
		Email:             normalized,
		PasswordHash:      string(hash),
		Role:              entity.UserRoleAdmin,
		IsAccountVerified: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		color.Red("Error: create failed: %v", err)
		os.Exit(1)
	}
	color.Green("Created admin %s (%s)", normalized, admin.Id)
}
