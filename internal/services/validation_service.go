package services

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/cloze"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/validator"
)

const (
	maxFieldLength = 65535
	maxTagCount    = 50
)

// ValidationService checks note and card requests before they reach storage
type ValidationService struct {
	validator *validator.Validator
}

func NewValidationService(validator *validator.Validator) *ValidationService {
	return &ValidationService{validator: validator}
}

// ===== NOTE VALIDATION =====

func (v *ValidationService) ValidateNoteCreate(req *CreateNoteRequest) ValidationErrors {
	var errors ValidationErrors

	if err := v.validator.Validate(req); err != nil {
		if ve, ok := err.(ValidationErrors); ok {
			errors = append(errors, ve...)
		} else {
			errors = append(errors, *NewValidationError("request", err.Error(), nil))
		}
	}

	errors = append(errors, v.validateFields(req.Fields)...)

	if req.Variant == models.VariantCloze && len(cloze.Scan(req.Fields.Answer)) == 0 {
		errors = append(errors, ValidationError{
			Field:   "fields.answer",
			Message: "cloze notes need at least one {{cN::...}} deletion",
			Rule:    "cloze",
		})
	}

	return errors
}

func (v *ValidationService) validateFields(fields models.NoteFields) ValidationErrors {
	var errors ValidationErrors

	values := map[string]string{
		"prompt":      fields.Prompt,
		"options":     fields.Options,
		"answer":      fields.Answer,
		"explanation": fields.Explanation,
		"hints":       fields.Hints,
		"tags":        fields.Tags,
	}
	for _, name := range []string{"prompt", "options", "answer", "explanation", "hints", "tags"} {
		if len(values[name]) > maxFieldLength {
			errors = append(errors, *NewValidationError("fields."+name,
				fmt.Sprintf("cannot exceed %d characters", maxFieldLength), len(values[name])))
		}
	}

	if count := len(strings.Fields(fields.Tags)); count > maxTagCount {
		errors = append(errors, *NewValidationError("fields.tags",
			fmt.Sprintf("cannot have more than %d tags", maxTagCount), count))
	}

	return errors
}

// ===== CARD VALIDATION =====

// ValidateCardOrdinal checks that the note actually produces the requested card.
// Basic notes have a single card; cloze notes have one card per deletion index.
func (v *ValidationService) ValidateCardOrdinal(note *models.Note, ordinal int) error {
	if ordinal < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCardOrdinal, ordinal)
	}

	if note.Variant != models.VariantCloze {
		if ordinal != 1 {
			return fmt.Errorf("%w: basic notes only have card 1", ErrInvalidCardOrdinal)
		}
		return nil
	}

	for _, deletion := range cloze.Scan(note.Fields.Answer) {
		if deletion.Index == ordinal {
			return nil
		}
	}
	return fmt.Errorf("%w: note %d has no deletion c%d", ErrInvalidCardOrdinal, note.ID, ordinal)
}
