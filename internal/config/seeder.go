package config

import (
	"log"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin account when none exists.
// Development convenience only; production admins are created through
// the register endpoint with role=admin.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	adminPassword := getEnv("ADMIN_PASSWORD", "admin123456")
	hashedPassword, err := password.Hash(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Administrator",
		Email:    getEnv("ADMIN_EMAIL", "admin@libraryhub.local"),
		Password: hashedPassword,
		Role:     domain.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("🌱 Seeded admin user: %s", admin.Email)
	return nil
}
