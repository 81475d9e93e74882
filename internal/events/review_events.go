package events

import (
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/google/uuid"
)

// EventType represents the kind of review event
type EventType string

const (
	EventReviewEvaluated EventType = "review.evaluated"
	EventNoteImported    EventType = "note.imported"
)

const (
	eventSource  = "flashcard-quiz-service"
	eventVersion = "1.0"
)

// ReviewEvent is the envelope for every event the service emits
type ReviewEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ReviewEvaluatedEvent struct {
	NoteID        uint                `json:"note_id"`
	CardOrdinal   int                 `json:"card_ordinal"`
	ReviewID      uint                `json:"review_id"`
	Kind          models.QuestionKind `json:"kind"`
	Verdict       models.Verdict      `json:"verdict"`
	SuggestedEase int                 `json:"suggested_ease"`
	DontKnow      bool                `json:"dont_know"`
	EvaluatedAt   time.Time           `json:"evaluated_at"`
}

type NoteImportedEvent struct {
	Deck         string `json:"deck"`
	NoteIDs      []uint `json:"note_ids"`
	SuccessCount int    `json:"success_count"`
	ErrorCount   int    `json:"error_count"`
}

func NewReviewEvaluatedEvent(record *models.ReviewRecord) *ReviewEvent {
	return &ReviewEvent{
		ID:        GenerateEventID(),
		Type:      EventReviewEvaluated,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data: ReviewEvaluatedEvent{
			NoteID:        record.NoteID,
			CardOrdinal:   record.CardOrdinal,
			ReviewID:      record.ID,
			Kind:          record.Kind,
			Verdict:       record.Verdict,
			SuggestedEase: record.SuggestedEase,
			DontKnow:      record.EffectiveDontKnow,
			EvaluatedAt:   record.CreatedAt,
		},
	}
}

func NewNoteImportedEvent(deck string, summary *models.ImportSummary) *ReviewEvent {
	return &ReviewEvent{
		ID:        GenerateEventID(),
		Type:      EventNoteImported,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data: NoteImportedEvent{
			Deck:         deck,
			NoteIDs:      summary.CreatedNotes,
			SuccessCount: summary.SuccessCount,
			ErrorCount:   summary.ErrorCount,
		},
	}
}

func GenerateEventID() string {
	return uuid.NewString()
}
