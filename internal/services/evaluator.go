package services

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/diff"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

// AnswerEvaluator scores a user response against a question. It never fails:
// missing or ill-typed answers count as empty.
type AnswerEvaluator interface {
	Evaluate(question *models.Question, response models.UserResponse) models.EvaluationResult
}

type answerEvaluator struct {
	logger *slog.Logger
}

func NewAnswerEvaluator(logger *slog.Logger) AnswerEvaluator {
	return &answerEvaluator{logger: logger}
}

func (e *answerEvaluator) Evaluate(question *models.Question, response models.UserResponse) models.EvaluationResult {
	if question == nil || question.Content == nil {
		return models.EvaluationResult{IsCorrect: models.BoolPtr(false), EffectiveDontKnow: true}
	}

	result := models.EvaluationResult{Kind: question.Kind}
	content := question.Content

	if _, ok := content.(models.BasicContent); ok {
		return result
	}

	dontKnow := response.DeclaredDontKnow
	if !dontKnow && models.IsAnswerEmpty(response.Answer) && content.AnswerExpected() {
		dontKnow = true
		result.DontKnowInferred = true
	}
	if dontKnow {
		result.EffectiveDontKnow = true
		result.IsCorrect = models.BoolPtr(false)
		e.logger.Debug("Answer scored as don't know", "kind", question.Kind, "inferred", result.DontKnowInferred)
		return result
	}

	var correct bool
	switch c := content.(type) {
	case models.SingleChoiceContent:
		correct = firstAnswer(response.Answer) == strings.TrimSpace(c.CorrectAnswer)
	case models.TrueFalseContent:
		correct = firstAnswer(response.Answer) == strings.TrimSpace(c.CorrectAnswer)
	case models.MultipleChoiceContent:
		given := models.AnswerStrings(response.Answer)
		correct = sameSet(given, c.CorrectAnswers)
		if !c.DistinctAnswers {
			correct = correct && len(given) == len(c.CorrectAnswers)
		}
	case models.ExactAnswerContent:
		correct = e.evaluateExact(c, response.Answer, &result)
	case models.MatchingContent:
		correct = evaluateMatching(c, response.Answer, &result)
	case models.OrderingContent:
		correct = sameSequence(models.AnswerStrings(response.Answer), c.CorrectOrder)
	case models.SentenceFormationContent:
		correct = sameSequence(models.AnswerStrings(response.Answer), c.CorrectWords)
	}

	result.IsCorrect = models.BoolPtr(correct)
	e.logger.Debug("Answer evaluated", "kind", question.Kind, "correct", correct)
	return result
}

// evaluateExact compares each instance position by position and attaches a
// character diff to every mismatch; Diff holds the first one.
func (e *answerEvaluator) evaluateExact(c models.ExactAnswerContent, answer interface{}, result *models.EvaluationResult) bool {
	typed := models.AnswerStrings(answer)
	result.PerItemResults = make(map[string]bool, len(c.Expected))

	all := true
	for i, expected := range c.Expected {
		given := ""
		if i < len(typed) {
			given = typed[i]
		}
		given = strings.TrimSpace(given)
		want := strings.TrimSpace(expected)

		ok := strings.ToLower(given) == strings.ToLower(want)
		key := strconv.Itoa(i)
		result.PerItemResults[key] = ok
		if ok {
			continue
		}

		all = false
		tokens := diff.Compute(given, want)
		if result.ItemDiffs == nil {
			result.ItemDiffs = make(map[string][]models.DiffToken)
			result.Diff = tokens
		}
		result.ItemDiffs[key] = tokens
	}
	return all
}

// evaluateMatching grades the scoped left items. Every scoped pair must match
// and the response must hold exactly as many pairs as there are scoped items.
// A cloze card with no active left items has nothing to grade and passes.
func evaluateMatching(c models.MatchingContent, answer interface{}, result *models.EvaluationResult) bool {
	scope := c.ScopedLeftIDs()
	result.PerItemResults = make(map[string]bool, len(scope))
	if c.ActiveLeftIDs != nil && len(scope) == 0 {
		return true
	}

	given := models.AnswerMap(answer)

	all := true
	for _, leftID := range scope {
		expected, ok := c.CorrectPairing[leftID]
		if !ok {
			continue
		}
		match := strings.TrimSpace(given[leftID]) == strings.TrimSpace(expected)
		result.PerItemResults[leftID] = match
		if !match {
			all = false
		}
	}

	provided := 0
	for _, rightID := range given {
		if strings.TrimSpace(rightID) != "" {
			provided++
		}
	}

	return all && provided == len(scope)
}

func firstAnswer(answer interface{}) string {
	values := models.AnswerStrings(answer)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func sameSet(given, expected []string) bool {
	givenSet := make(map[string]bool, len(given))
	for _, g := range given {
		givenSet[strings.TrimSpace(g)] = true
	}
	expectedSet := make(map[string]bool, len(expected))
	for _, x := range expected {
		expectedSet[strings.TrimSpace(x)] = true
	}

	if len(givenSet) != len(expectedSet) {
		return false
	}
	for id := range givenSet {
		if !expectedSet[id] {
			return false
		}
	}
	return true
}

func sameSequence(given, expected []string) bool {
	if len(given) != len(expected) {
		return false
	}
	for i := range given {
		if !strings.EqualFold(strings.TrimSpace(given[i]), strings.TrimSpace(expected[i])) {
			return false
		}
	}
	return true
}
