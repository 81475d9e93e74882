package grammar

import (
	"testing"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	table := DefaultKindTable()

	tests := []struct {
		name         string
		raw          string
		expectedKind models.QuestionKind
		expectedTags []string
	}{
		{
			name:         "kind tag with thematic tags",
			raw:          "geography SC capital_cities",
			expectedKind: models.KindSingleChoice,
			expectedTags: []string{"geography", "capital cities"},
		},
		{
			name:         "first kind tag wins",
			raw:          "mc tf",
			expectedKind: models.KindMultipleChoice,
			expectedTags: []string{"tf"},
		},
		{
			name:         "no kind tag defaults to basic",
			raw:          "history  world_war",
			expectedKind: models.KindBasic,
			expectedTags: []string{"history", "world war"},
		},
		{
			name:         "empty",
			raw:          "",
			expectedKind: models.KindBasic,
			expectedTags: []string{},
		},
		{
			name:         "matching",
			raw:          "r",
			expectedKind: models.KindMatching,
			expectedTags: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ParseTags(tt.raw, table)
			assert.Equal(t, tt.expectedKind, set.Kind)
			assert.Equal(t, tt.expectedTags, set.ThematicTags)
		})
	}
}

func TestParseTags_CustomTable(t *testing.T) {
	table := DefaultKindTable()
	table["frase"] = models.KindSentenceFormation

	set := ParseTags("Frase spanish", table)
	assert.Equal(t, models.KindSentenceFormation, set.Kind)
	assert.Equal(t, []string{"spanish"}, set.ThematicTags)
}
