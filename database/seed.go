package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/model"
	"github.com/acadbridge/campus-api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	if err := SeedRoles(s.db); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedRoles makes sure a row exists for every role name. The role set is
// closed; these rows are the only ones that ever exist.
func SeedRoles(db *gorm.DB) error {
	for _, name := range model.AllRoles() {
		role := model.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAdminUser creates the bootstrap admin user from ADMIN_EMAIL and
// ADMIN_PASSWORD; skipped when either is unset.
func (s *Seeder) SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⏭️  ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user...")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		user := model.User{
			Email:        email,
			Name:         "Administrator",
			PasswordHash: hash,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		var role model.Role
		if err := tx.Where("name = ?", model.RoleAdmin).First(&role).Error; err != nil {
			return err
		}
		return tx.Model(&user).Association("Roles").Append(&role)
	})
}

// RunSeeds runs all seeds against the given database
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}
