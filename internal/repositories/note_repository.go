package repositories

import (
	"context"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"gorm.io/gorm"
)

// NoteRepository stores authored notes
type NoteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, note *models.Note) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Note, error)
	Update(ctx context.Context, tx *gorm.DB, note *models.Note) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	List(ctx context.Context, tx *gorm.DB, filters NoteFilters) ([]*models.Note, int64, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, notes []*models.Note) error
}
