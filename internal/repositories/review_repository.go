package repositories

import (
	"context"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"gorm.io/gorm"
)

// ReviewRepository stores evaluated reviews
type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *models.ReviewRecord) error
	GetByNote(ctx context.Context, tx *gorm.DB, noteID uint, filters ReviewFilters) ([]*models.ReviewRecord, int64, error)
	GetStats(ctx context.Context, tx *gorm.DB, noteID uint) (*models.ReviewStats, error)
	DeleteByNote(ctx context.Context, tx *gorm.DB, noteID uint) error
}
