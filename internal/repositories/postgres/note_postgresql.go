package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"gorm.io/gorm"
)

var noteSortColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"deck":       true,
}

type NotePostgreSQL struct {
	db *gorm.DB
}

func NewNotePostgreSQL(db *gorm.DB) repositories.NoteRepository {
	return &NotePostgreSQL{db: db}
}

func (n *NotePostgreSQL) Create(ctx context.Context, tx *gorm.DB, note *models.Note) error {
	return n.getDB(tx).WithContext(ctx).Create(note).Error
}

// GetByID returns (nil, nil) when the note does not exist.
func (n *NotePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Note, error) {
	var note models.Note
	if err := n.getDB(tx).WithContext(ctx).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (n *NotePostgreSQL) Update(ctx context.Context, tx *gorm.DB, note *models.Note) error {
	return n.getDB(tx).WithContext(ctx).Save(note).Error
}

func (n *NotePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return n.getDB(tx).WithContext(ctx).Delete(&models.Note{}, id).Error
}

func (n *NotePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.NoteFilters) ([]*models.Note, int64, error) {
	var notes []*models.Note
	var total int64

	query := n.getDB(tx).WithContext(ctx).Model(&models.Note{})
	query = n.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, noteSortColumns, "created_at",
		filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&notes).Error; err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (n *NotePostgreSQL) CreateBatch(ctx context.Context, tx *gorm.DB, notes []*models.Note) error {
	if len(notes) == 0 {
		return nil
	}
	return n.getDB(tx).WithContext(ctx).CreateInBatches(notes, 100).Error
}

func (n *NotePostgreSQL) applyFilters(query *gorm.DB, filters repositories.NoteFilters) *gorm.DB {
	if filters.Deck != nil {
		query = query.Where("deck = ?", *filters.Deck)
	}
	if filters.Variant != nil {
		query = query.Where("variant = ?", *filters.Variant)
	}
	if filters.Tag != nil && *filters.Tag != "" {
		// tags are stored space separated
		query = query.Where("(' ' || field_tags || ' ') ILIKE ?", "% "+*filters.Tag+" %")
	}
	return query
}

func (n *NotePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	return pickDB(n.db, tx)
}
