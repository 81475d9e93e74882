package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/errors"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

// QuestionValidator checks the invariants of a built question. Authored
// content is parsed leniently, so callers report these as warnings.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// CheckInvariants returns every invariant the question breaks; nil when none.
func (v *QuestionValidator) CheckInvariants(q *models.Question) ValidationErrors {
	if q == nil || q.Content == nil {
		return ValidationErrors{*errors.NewValidationErrorWithRule("content", "is required", "required", nil)}
	}

	var errs ValidationErrors
	switch c := q.Content.(type) {
	case models.SingleChoiceContent:
		ids := v.checkOptionIDs(c.Options, &errs)
		if c.CorrectAnswer != "" {
			v.checkReference("correct_answer", c.CorrectAnswer, ids, &errs)
		}
	case models.MultipleChoiceContent:
		ids := v.checkOptionIDs(c.Options, &errs)
		for _, id := range c.CorrectAnswers {
			v.checkReference("correct_answers", id, ids, &errs)
		}
	case models.TrueFalseContent:
		ids := v.checkOptionIDs(c.Options, &errs)
		v.checkReference("correct_answer", c.CorrectAnswer, ids, &errs)
	case models.MatchingContent:
		leftIDs := v.checkItemIDs("left_items", c.LeftItems, &errs)
		rightIDs := v.checkItemIDs("right_items", c.RightItems, &errs)
		for left, right := range c.CorrectPairing {
			v.checkReference("correct_pairing", left, leftIDs, &errs)
			v.checkReference("correct_pairing", right, rightIDs, &errs)
		}
	case models.OrderingContent:
		v.checkItemIDs("items", c.Items, &errs)
	case models.ExactAnswerContent, models.SentenceFormationContent, models.BasicContent:
	default:
		errs = append(errs, *errors.NewValidationErrorWithRule("kind", fmt.Sprintf("unsupported question kind: %s", q.Kind), "question_kind", q.Kind))
	}

	if q.Content.Kind() != q.Kind {
		errs = append(errs, *errors.NewValidationErrorWithRule("kind", "does not match content", "question_kind", q.Kind))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (v *QuestionValidator) checkOptionIDs(options []models.Option, errs *ValidationErrors) map[string]bool {
	ids := make(map[string]bool, len(options))
	for _, option := range options {
		if ids[option.ID] {
			*errs = append(*errs, *errors.NewValidationErrorWithRule("options", fmt.Sprintf("duplicate option id '%s'", option.ID), "unique", option.ID))
		}
		ids[option.ID] = true
	}
	return ids
}

func (v *QuestionValidator) checkItemIDs(field string, items []models.Item, errs *ValidationErrors) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		if ids[item.ID] {
			*errs = append(*errs, *errors.NewValidationErrorWithRule(field, fmt.Sprintf("duplicate item id '%s'", item.ID), "unique", item.ID))
		}
		ids[item.ID] = true
	}
	return ids
}

func (v *QuestionValidator) checkReference(field, id string, known map[string]bool, errs *ValidationErrors) {
	if strings.TrimSpace(id) == "" || known[id] {
		return
	}
	*errs = append(*errs, *errors.NewValidationErrorWithRule(field, fmt.Sprintf("references unknown id '%s'", id), "reference", id))
}
