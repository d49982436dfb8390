package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/placementlabs/cpms/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Student{},
		&models.Company{},
		&models.DriveRegistration{},
		&models.SelectionRound{},
		&models.RoundResult{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every CPMS table. Used by `cpms db reset`.
func Reset(gdb *gorm.DB) error {
	// Drop children before parents so foreign keys don't block.
	ordered := []interface{}{
		&models.RoundResult{},
		&models.SelectionRound{},
		&models.DriveRegistration{},
		&models.Company{},
		&models.Student{},
		&models.User{},
	}
	if err := gdb.Migrator().DropTable(ordered...); err != nil {
		return fmt.Errorf("db: drop tables: %w", err)
	}
	return nil
}

// SeedAdmin upserts the placement-office admin account for the given email.
// The caller supplies an already-hashed password.
func SeedAdmin(gdb *gorm.DB, email, passwordHash string) (*models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}

	result := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role"}),
	}).Create(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("db: seed admin %q: %w", email, result.Error)
	}
	return &user, nil
}
