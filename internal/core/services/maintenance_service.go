package services

import (
	"context"
	"log"

	"libraryhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// MaintenanceService runs scheduled housekeeping jobs
type MaintenanceService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(refreshTokenRepo repositories.RefreshTokenRepository) *MaintenanceService {
	return &MaintenanceService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the daily token purge (03:00)
func (s *MaintenanceService) Start() {
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		log.Printf("❌ Failed to schedule token purge: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 MaintenanceService started")
}

// Stop stops the scheduler
func (s *MaintenanceService) Stop() {
	s.cron.Stop()
	log.Println("🛑 MaintenanceService stopped")
}

func (s *MaintenanceService) purgeExpiredTokens() {
	n, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Token purge failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("🧹 Purged %d expired refresh tokens", n)
	}
}
