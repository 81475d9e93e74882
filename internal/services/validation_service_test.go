package services

import (
	"strings"
	"testing"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidationService_ValidateNoteCreate(t *testing.T) {
	v := NewValidationService(validator.New())

	tests := []struct {
		name   string
		req    CreateNoteRequest
		fields []string
	}{
		{
			name: "valid basic note",
			req:  CreateNoteRequest{Variant: models.VariantBasic, Fields: models.NoteFields{Tags: "sc", Answer: "a"}},
		},
		{
			name: "valid cloze note",
			req:  CreateNoteRequest{Variant: models.VariantCloze, Fields: models.NoteFields{Answer: "{{c1::x}}"}},
		},
		{
			name:   "unknown variant",
			req:    CreateNoteRequest{Variant: "image"},
			fields: []string{"variant"},
		},
		{
			name:   "cloze without deletion",
			req:    CreateNoteRequest{Variant: models.VariantCloze, Fields: models.NoteFields{Answer: "plain"}},
			fields: []string{"fields.answer"},
		},
		{
			name: "oversized field",
			req: CreateNoteRequest{
				Variant: models.VariantBasic,
				Fields:  models.NoteFields{Prompt: strings.Repeat("x", maxFieldLength+1)},
			},
			fields: []string{"fields.prompt"},
		},
		{
			name: "too many tags",
			req: CreateNoteRequest{
				Variant: models.VariantBasic,
				Fields:  models.NoteFields{Tags: strings.Repeat("t ", maxTagCount+1)},
			},
			fields: []string{"fields.tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateNoteCreate(&tt.req)
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidationService_ValidateCardOrdinal(t *testing.T) {
	v := NewValidationService(validator.New())
	basic := &models.Note{ID: 1, Variant: models.VariantBasic}
	clozeNote := &models.Note{ID: 2, Variant: models.VariantCloze, Fields: models.NoteFields{Answer: "{{c1::a}} {{c3::b}}"}}

	assert.NoError(t, v.ValidateCardOrdinal(basic, 1))
	assert.ErrorIs(t, v.ValidateCardOrdinal(basic, 2), ErrInvalidCardOrdinal)
	assert.ErrorIs(t, v.ValidateCardOrdinal(basic, 0), ErrInvalidCardOrdinal)

	assert.NoError(t, v.ValidateCardOrdinal(clozeNote, 1))
	assert.NoError(t, v.ValidateCardOrdinal(clozeNote, 3))
	assert.ErrorIs(t, v.ValidateCardOrdinal(clozeNote, 2), ErrInvalidCardOrdinal)
	assert.ErrorIs(t, v.ValidateCardOrdinal(clozeNote, -1), ErrInvalidCardOrdinal)
}
