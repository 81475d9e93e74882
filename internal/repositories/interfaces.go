package repositories

import (
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type NoteFilters struct {
	Deck      *string             `json:"deck"`
	Variant   *models.NoteVariant `json:"variant"`
	Tag       *string             `json:"tag"`
	Limit     int                 `json:"limit"`
	Offset    int                 `json:"offset"`
	SortBy    string              `json:"sort_by"`    // "created_at", "updated_at", "deck", "id"
	SortOrder string              `json:"sort_order"` // "asc", "desc"
}

type ReviewFilters struct {
	CardOrdinal *int            `json:"card_ordinal"`
	Verdict     *models.Verdict `json:"verdict"`
	DateFrom    *time.Time      `json:"date_from"`
	DateTo      *time.Time      `json:"date_to"`
	Limit       int             `json:"limit"`
	Offset      int             `json:"offset"`
}
