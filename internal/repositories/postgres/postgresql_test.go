package postgres

import (
	"testing"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders SQL without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestNotePostgreSQL_ListQuery(t *testing.T) {
	db := dryRunDB(t)
	repo := &NotePostgreSQL{db: db}
	deck := "geo"
	variant := models.VariantCloze

	tests := []struct {
		name     string
		filters  repositories.NoteFilters
		contains []string
		excludes []string
	}{
		{
			name:     "defaults",
			filters:  repositories.NoteFilters{},
			contains: []string{"ORDER BY created_at desc", "LIMIT 20"},
		},
		{
			name:     "filters and ascending sort",
			filters:  repositories.NoteFilters{Deck: &deck, Variant: &variant, SortBy: "deck", SortOrder: "ASC", Limit: 5, Offset: 10},
			contains: []string{"deck = 'geo'", "variant = 'cloze'", "ORDER BY deck asc", "LIMIT 5", "OFFSET 10"},
		},
		{
			name:     "unknown sort column is ignored",
			filters:  repositories.NoteFilters{SortBy: "field_answer; DROP TABLE notes", Limit: 1000},
			contains: []string{"ORDER BY created_at desc,id desc", "LIMIT 200"},
			excludes: []string{"DROP TABLE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				query := repo.applyFilters(tx.Model(&models.Note{}), tt.filters)
				query = applyPaginationAndSort(query, noteSortColumns, "created_at",
					tt.filters.SortBy, tt.filters.SortOrder, tt.filters.Limit, tt.filters.Offset)
				return query.Find(&[]*models.Note{})
			})
			for _, fragment := range tt.contains {
				assert.Contains(t, sql, fragment)
			}
			for _, fragment := range tt.excludes {
				assert.NotContains(t, sql, fragment)
			}
		})
	}
}

func TestReviewPostgreSQL_FilterQuery(t *testing.T) {
	db := dryRunDB(t)
	repo := &ReviewPostgreSQL{db: db}
	ordinal := 2
	verdict := models.VerdictDontKnow

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		query := tx.Model(&models.ReviewRecord{}).Where("note_id = ?", 7)
		return repo.applyFilters(query, repositories.ReviewFilters{CardOrdinal: &ordinal, Verdict: &verdict}).
			Find(&[]*models.ReviewRecord{})
	})

	assert.Contains(t, sql, `"review_records"`)
	assert.Contains(t, sql, "note_id = 7")
	assert.Contains(t, sql, "card_ordinal = 2")
	assert.Contains(t, sql, "verdict = 'dont_know'")
}

func TestReviewStats_Add(t *testing.T) {
	stats := &models.ReviewStats{}
	stats.Add(models.VerdictCorrect, 3)
	stats.Add(models.VerdictIncorrect, 1)
	stats.Add(models.VerdictDontKnow, 2)
	stats.Add(models.VerdictUngraded, 4)

	assert.Equal(t, models.ReviewStats{TotalReviews: 10, Correct: 3, Incorrect: 1, DontKnow: 2, Ungraded: 4}, *stats)
}
