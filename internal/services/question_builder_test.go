package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/grammar"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBuilder() QuestionBuilder {
	return NewQuestionBuilder(grammar.DefaultKindTable(), validator.New(), testLogger())
}

func basicRequest(fields models.NoteFields) BuildRequest {
	return BuildRequest{Variant: models.VariantBasic, Fields: fields}
}

func clozeRequest(fields models.NoteFields, ordinal int) BuildRequest {
	return BuildRequest{Variant: models.VariantCloze, Fields: fields, CardOrdinal: ordinal}
}

func TestQuestionBuilder_BasicVariant(t *testing.T) {
	builder := newTestBuilder()

	tests := []struct {
		name     string
		fields   models.NoteFields
		kind     models.QuestionKind
		expected models.QuestionContent
	}{
		{
			name:   "single choice",
			fields: models.NoteFields{Tags: "sc", Options: "a. Paris|b. London", Answer: "a."},
			kind:   models.KindSingleChoice,
			expected: models.SingleChoiceContent{
				Options:       []models.Option{{ID: "a", Text: "Paris", Value: "a"}, {ID: "b", Text: "London", Value: "b"}},
				CorrectAnswer: "a",
			},
		},
		{
			name:   "multiple choice",
			fields: models.NoteFields{Tags: "mc", Options: "a) 2|b) 3|c) 4", Answer: "a, b)"},
			kind:   models.KindMultipleChoice,
			expected: models.MultipleChoiceContent{
				Options: []models.Option{
					{ID: "a", Text: "2", Value: "a"},
					{ID: "b", Text: "3", Value: "b"},
					{ID: "c", Text: "4", Value: "c"},
				},
				CorrectAnswers: []string{"a", "b"},
			},
		},
		{
			name:     "true false ignores options",
			fields:   models.NoteFields{Tags: "tf", Options: "x. ignored", Answer: " TRUE "},
			kind:     models.KindTrueFalse,
			expected: models.TrueFalseContent{Options: models.TrueFalseOptions(), CorrectAnswer: "true"},
		},
		{
			name:     "true false anything else is false",
			fields:   models.NoteFields{Tags: "tf", Answer: "yes"},
			kind:     models.KindTrueFalse,
			expected: models.TrueFalseContent{Options: models.TrueFalseOptions(), CorrectAnswer: "false"},
		},
		{
			name:     "exact answer",
			fields:   models.NoteFields{Tags: "ae", Answer: " Paris "},
			kind:     models.KindExactAnswer,
			expected: models.ExactAnswerContent{Expected: []string{"Paris"}},
		},
		{
			name:   "matching",
			fields: models.NoteFields{Tags: "r", Options: "a. Spain|b. France|1. Madrid|2. Paris|_x. dropped", Answer: "a-1; b-2"},
			kind:   models.KindMatching,
			expected: models.MatchingContent{
				LeftItems:      []models.Item{{ID: "a", Text: "Spain"}, {ID: "b", Text: "France"}},
				RightItems:     []models.Item{{ID: "1", Text: "Madrid"}, {ID: "2", Text: "Paris"}},
				CorrectPairing: map[string]string{"a": "1", "b": "2"},
			},
		},
		{
			name:   "ordering",
			fields: models.NoteFields{Tags: "o", Options: "1. First|2. Second", Answer: "2, 1"},
			kind:   models.KindOrdering,
			expected: models.OrderingContent{
				Items:        []models.Item{{ID: "1", Text: "First"}, {ID: "2", Text: "Second"}},
				CorrectOrder: []string{"2", "1"},
			},
		},
		{
			name:   "sentence formation",
			fields: models.NoteFields{Tags: "f", Options: "cat | runs", Answer: "the  dog barks"},
			kind:   models.KindSentenceFormation,
			expected: models.SentenceFormationContent{
				CorrectWords:    []string{"the", "dog", "barks"},
				DistractorWords: []string{"cat", "runs"},
			},
		},
		{
			name:     "no kind tag is basic",
			fields:   models.NoteFields{Tags: "geography", Answer: "Paris"},
			kind:     models.KindBasic,
			expected: models.BasicContent{ExpectedDisplay: "Paris"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, err := builder.Build(basicRequest(tt.fields))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, question.Kind)
			assert.Equal(t, tt.expected, question.Content)
		})
	}
}

func TestQuestionBuilder_CommonFields(t *testing.T) {
	builder := newTestBuilder()

	question, err := builder.Build(basicRequest(models.NoteFields{
		Prompt:      "Capital of France?",
		Tags:        "world_geo sc europe",
		Options:     "a. Paris|b. Lyon",
		Answer:      "a",
		Explanation: "a. Correct|b. Not the capital",
		Hints:       "Think big<br>Largest city",
	}))
	require.NoError(t, err)

	assert.Equal(t, "Capital of France?", question.PromptHTML)
	assert.Equal(t, []string{"world geo", "europe"}, question.ThematicTags)
	assert.Equal(t, models.PerOptionExplanations{"a": "Correct", "b": "Not the capital"}, question.Explanation)
	require.Len(t, question.Hints, 1)
	assert.Equal(t, "Think big", question.Hints[0].Title)
}

func TestQuestionBuilder_Errors(t *testing.T) {
	builder := newTestBuilder()

	_, err := builder.Build(BuildRequest{Variant: "image", Fields: models.NoteFields{Tags: "sc"}})
	assert.ErrorIs(t, err, ErrInvalidVariant)
	assert.True(t, IsValidation(err))

	_, err = builder.Build(clozeRequest(models.NoteFields{Tags: "ae"}, 0))
	assert.ErrorIs(t, err, ErrInvalidCardOrdinal)

	table := grammar.DefaultKindTable()
	table["essay"] = models.QuestionKind("essay")
	custom := NewQuestionBuilder(table, validator.New(), testLogger())

	question, err := custom.Build(basicRequest(models.NoteFields{Tags: "essay"}))
	assert.Nil(t, question)
	assert.ErrorIs(t, err, ErrConstructionFailed)
	assert.True(t, IsConstructionFailed(err))

	_, err = custom.Build(clozeRequest(models.NoteFields{Tags: "essay"}, 1))
	assert.ErrorIs(t, err, ErrConstructionFailed)
}

func TestQuestionBuilder_ClozeExactAnswer(t *testing.T) {
	builder := newTestBuilder()
	fields := models.NoteFields{Tags: "ae", Answer: "{{c1::Paris}} {{c2::France}} {{c3::}}"}

	reviewAll, err := builder.Build(clozeRequest(fields, 3))
	require.NoError(t, err)
	assert.Equal(t, models.ExactAnswerContent{Expected: []string{"Paris", "France"}}, reviewAll.Content)

	single, err := builder.Build(clozeRequest(fields, 1))
	require.NoError(t, err)
	assert.Equal(t, models.ExactAnswerContent{Expected: []string{"Paris"}}, single.Content)
	assert.Equal(t,
		`<span class="cloze-placeholder-active">[...]</span> <span class="cloze-placeholder-inactive">[...]</span> `,
		single.PromptHTML)

	fields.Prompt = "Fill in"
	back, err := builder.Build(BuildRequest{Variant: models.VariantCloze, Fields: fields, CardOrdinal: 2, Side: SideAnswer})
	require.NoError(t, err)
	assert.Equal(t,
		`<p>Fill in</p><span class="cloze-placeholder-inactive">[...]</span> <span class="cloze">France</span> `,
		back.PromptHTML)
}

func TestQuestionBuilder_ClozeChoice(t *testing.T) {
	builder := newTestBuilder()

	sc, err := builder.Build(clozeRequest(models.NoteFields{
		Tags:    "sc",
		Options: "a. Paris|b. Madrid|c. Rome",
		Answer:  "The capital of Spain is {{c1::Madrid}}",
	}, 1))
	require.NoError(t, err)
	assert.Equal(t, "b", sc.Content.(models.SingleChoiceContent).CorrectAnswer)

	mc, err := builder.Build(clozeRequest(models.NoteFields{
		Tags:    "mc",
		Options: "a. Paris|b. Madrid|c. Rome",
		Answer:  "{{c1::a}} and {{c1::rome}}",
	}, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, mc.Content.(models.MultipleChoiceContent).CorrectAnswers)
	assert.True(t, mc.Content.(models.MultipleChoiceContent).DistinctAnswers)
}

func TestQuestionBuilder_ClozeOrderingAndSentence(t *testing.T) {
	builder := newTestBuilder()

	ordering, err := builder.Build(clozeRequest(models.NoteFields{
		Tags:    "o",
		Options: "x. Egg|y. Chick",
		Answer:  "{{c1::egg}} then {{c1::Chick}} then {{c1::Hen}}",
	}, 1))
	require.NoError(t, err)
	assert.Equal(t, models.OrderingContent{
		Items:        []models.Item{{ID: "x", Text: "egg"}, {ID: "y", Text: "Chick"}, {ID: "Hen", Text: "Hen"}},
		CorrectOrder: []string{"x", "y", "Hen"},
	}, ordering.Content)

	sentence, err := builder.Build(clozeRequest(models.NoteFields{
		Tags:    "f",
		Options: "cat|runs",
		Answer:  "{{c1::The}} {{c1::dog}} {{c2::barks}}",
	}, 1))
	require.NoError(t, err)
	assert.Equal(t, models.SentenceFormationContent{
		CorrectWords:    []string{"The", "dog"},
		DistractorWords: []string{"cat", "runs"},
	}, sentence.Content)
}

func TestQuestionBuilder_ClozeMatching(t *testing.T) {
	builder := newTestBuilder()
	fields := models.NoteFields{
		Prompt:  "Match the capitals",
		Tags:    "r",
		Options: "1. Madrid|2. Paris|3. Rome",
		Answer:  "a. Spain: {{c1::Madrid}}|b. France: {{c2::Paris}}|c. Italy: {{c1::Rome}}",
	}

	question, err := builder.Build(clozeRequest(fields, 1))
	require.NoError(t, err)
	assert.Equal(t, "Match the capitals", question.PromptHTML)

	content := question.Content.(models.MatchingContent)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, content.CorrectPairing)
	assert.Equal(t, []string{"a", "c"}, content.ActiveLeftIDs)
	assert.Equal(t, "France: Paris", content.LeftItems[1].Text)
	assert.Equal(t, `Spain: <span class="cloze-placeholder-active">[...]</span>`, content.LeftItems[0].Text)
	assert.Len(t, content.RightItems, 3)

	none, err := builder.Build(clozeRequest(fields, 5))
	require.NoError(t, err)
	noneContent := none.Content.(models.MatchingContent)
	assert.Empty(t, noneContent.ActiveLeftIDs)
	assert.NotNil(t, noneContent.ActiveLeftIDs)
	assert.False(t, noneContent.AnswerExpected())
}
