package postgres

import (
	"context"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type ReviewPostgreSQL struct {
	db *gorm.DB
}

func NewReviewPostgreSQL(db *gorm.DB) repositories.ReviewRepository {
	return &ReviewPostgreSQL{db: db}
}

func (r *ReviewPostgreSQL) Create(ctx context.Context, tx *gorm.DB, record *models.ReviewRecord) error {
	return r.getDB(tx).WithContext(ctx).Create(record).Error
}

func (r *ReviewPostgreSQL) GetByNote(ctx context.Context, tx *gorm.DB, noteID uint, filters repositories.ReviewFilters) ([]*models.ReviewRecord, int64, error) {
	var records []*models.ReviewRecord
	var total int64

	query := r.getDB(tx).WithContext(ctx).Model(&models.ReviewRecord{}).Where("note_id = ?", noteID)
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, nil, "created_at", "", "desc", filters.Limit, filters.Offset)
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *ReviewPostgreSQL) GetStats(ctx context.Context, tx *gorm.DB, noteID uint) (*models.ReviewStats, error) {
	var rows []struct {
		Verdict models.Verdict
		Count   int
	}
	if err := r.getDB(tx).WithContext(ctx).
		Model(&models.ReviewRecord{}).
		Select("verdict, COUNT(*) AS count").
		Where("note_id = ?", noteID).
		Group("verdict").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &models.ReviewStats{}
	for _, row := range rows {
		stats.Add(row.Verdict, row.Count)
	}
	return stats, nil
}

func (r *ReviewPostgreSQL) DeleteByNote(ctx context.Context, tx *gorm.DB, noteID uint) error {
	return r.getDB(tx).WithContext(ctx).Where("note_id = ?", noteID).Delete(&models.ReviewRecord{}).Error
}

func (r *ReviewPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ReviewFilters) *gorm.DB {
	if filters.CardOrdinal != nil {
		query = query.Where("card_ordinal = ?", *filters.CardOrdinal)
	}
	if filters.Verdict != nil {
		query = query.Where("verdict = ?", *filters.Verdict)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}

func (r *ReviewPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	return pickDB(r.db, tx)
}
