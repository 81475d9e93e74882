package models

import (
	"time"

	"gorm.io/datatypes"
)

type NoteVariant string

const (
	VariantBasic NoteVariant = "basic"
	VariantCloze NoteVariant = "cloze"
)

func (v NoteVariant) IsValid() bool {
	return v == VariantBasic || v == VariantCloze
}

// NoteFields holds the raw HTML/text of every authored field. Absent fields are empty strings.
type NoteFields struct {
	Prompt      string `json:"prompt" gorm:"type:text"`
	Options     string `json:"options" gorm:"type:text"`
	Answer      string `json:"answer" gorm:"type:text"`
	Explanation string `json:"explanation" gorm:"type:text"`
	Hints       string `json:"hints" gorm:"type:text"`
	Tags        string `json:"tags" gorm:"type:text"`
}

// Note is the stored source of one or more cards.
type Note struct {
	ID      uint        `json:"id" gorm:"primaryKey"`
	Deck    string      `json:"deck" gorm:"size:200;index"`
	Variant NoteVariant `json:"variant" gorm:"not null;size:20;default:basic"`

	Fields NoteFields `json:"fields" gorm:"embedded;embeddedPrefix:field_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reviews []ReviewRecord `json:"reviews,omitempty" gorm:"foreignKey:NoteID"`
}

// ReviewRecord stores one evaluation of one card.
type ReviewRecord struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	NoteID      uint         `json:"note_id" gorm:"not null;index"`
	CardOrdinal int          `json:"card_ordinal" gorm:"not null"`
	Kind        QuestionKind `json:"kind" gorm:"not null;size:32"`

	IsCorrect         *bool   `json:"is_correct"`
	EffectiveDontKnow bool    `json:"effective_dont_know"`
	Verdict           Verdict `json:"verdict" gorm:"size:20;index"`
	SuggestedEase     int     `json:"suggested_ease"`

	Response datatypes.JSON `json:"response" gorm:"type:jsonb"` // UserResponse
	Result   datatypes.JSON `json:"result" gorm:"type:jsonb"`   // EvaluationResult

	CreatedAt time.Time `json:"created_at"`
}

// ReviewStats summarizes the review history of a note.
type ReviewStats struct {
	TotalReviews int `json:"total_reviews"`
	Correct      int `json:"correct"`
	Incorrect    int `json:"incorrect"`
	DontKnow     int `json:"dont_know"`
	Ungraded     int `json:"ungraded"`
}

// Add counts n reviews with the given verdict.
func (s *ReviewStats) Add(verdict Verdict, n int) {
	s.TotalReviews += n
	switch verdict {
	case VerdictCorrect:
		s.Correct += n
	case VerdictIncorrect:
		s.Incorrect += n
	case VerdictDontKnow:
		s.DontKnow += n
	default:
		s.Ungraded += n
	}
}
