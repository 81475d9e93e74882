package services

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/cloze"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/grammar"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/validator"
)

var (
	rightItemID = regexp.MustCompile(`^\d+$`)
	leftItemID  = regexp.MustCompile(`^[a-zA-Z]`)
)

// CardSide selects which face of a cloze card the prompt is rendered for.
type CardSide string

const (
	SideQuestion CardSide = "question"
	SideAnswer   CardSide = "answer"
)

// BuildRequest carries the raw fields of one note plus the card being shown.
type BuildRequest struct {
	Variant     models.NoteVariant `json:"variant" validate:"required,note_variant"`
	Fields      models.NoteFields  `json:"fields"`
	CardOrdinal int                `json:"card_ordinal"`
	Side        CardSide           `json:"side" validate:"omitempty,oneof=question answer"`
}

// QuestionBuilder turns note fields into a Question.
type QuestionBuilder interface {
	Build(req BuildRequest) (*models.Question, error)
}

type questionBuilder struct {
	kinds     grammar.KindTable
	validator *validator.Validator
	logger    *slog.Logger
}

func NewQuestionBuilder(kinds grammar.KindTable, validator *validator.Validator, logger *slog.Logger) QuestionBuilder {
	if kinds == nil {
		kinds = grammar.DefaultKindTable()
	}
	return &questionBuilder{
		kinds:     kinds,
		validator: validator,
		logger:    logger,
	}
}

// Build never fails on malformed fields. The only errors are an unknown
// variant, a cloze ordinal below 1 and ErrConstructionFailed.
func (b *questionBuilder) Build(req BuildRequest) (*models.Question, error) {
	tags := grammar.ParseTags(req.Fields.Tags, b.kinds)

	var (
		question *models.Question
		err      error
	)
	switch req.Variant {
	case models.VariantBasic:
		question, err = b.buildBasic(tags, req.Fields)
	case models.VariantCloze:
		if req.CardOrdinal < 1 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidCardOrdinal, req.CardOrdinal)
		}
		question, err = b.buildCloze(tags, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidVariant, req.Variant)
	}
	if err != nil {
		return nil, err
	}

	question.ThematicTags = tags.ThematicTags
	question.Hints = grammar.ParseHints(req.Fields.Hints)
	question.Explanation = grammar.ParseExplanations(req.Fields.Explanation)

	if warnings := b.validator.Question().CheckInvariants(question); len(warnings) > 0 {
		b.logger.Warn("Question breaks invariants",
			"kind", question.Kind,
			"variant", req.Variant,
			"warnings", warnings.Error(),
		)
	}

	return question, nil
}

// ===== BASIC VARIANT =====

func (b *questionBuilder) buildBasic(tags grammar.TagSet, fields models.NoteFields) (*models.Question, error) {
	question := &models.Question{Kind: tags.Kind, PromptHTML: fields.Prompt}

	switch tags.Kind {
	case models.KindSingleChoice:
		question.Content = models.SingleChoiceContent{
			Options:       grammar.ParseOptions(fields.Options),
			CorrectAnswer: grammar.CleanID(fields.Answer),
		}
	case models.KindMultipleChoice:
		question.Content = models.MultipleChoiceContent{
			Options:        grammar.ParseOptions(fields.Options),
			CorrectAnswers: grammar.SplitIDList(fields.Answer),
		}
	case models.KindTrueFalse:
		question.Content = models.TrueFalseContent{
			Options:       models.TrueFalseOptions(),
			CorrectAnswer: normalizeTrueFalse(fields.Answer),
		}
	case models.KindExactAnswer:
		question.Content = models.ExactAnswerContent{Expected: []string{strings.TrimSpace(fields.Answer)}}
	case models.KindMatching:
		left, right := partitionMatchingItems(grammar.ParseItems(fields.Options))
		question.Content = models.MatchingContent{
			LeftItems:      left,
			RightItems:     right,
			CorrectPairing: grammar.ParsePairs(fields.Answer),
		}
	case models.KindOrdering:
		question.Content = models.OrderingContent{
			Items:        grammar.ParseItems(fields.Options),
			CorrectOrder: grammar.SplitIDList(fields.Answer),
		}
	case models.KindSentenceFormation:
		question.Content = models.SentenceFormationContent{
			CorrectWords:    grammar.SplitWords(fields.Answer),
			DistractorWords: grammar.SplitPipeList(fields.Options),
		}
	case models.KindBasic:
		question.Content = models.BasicContent{ExpectedDisplay: fields.Answer}
	default:
		return nil, fmt.Errorf("%w: %q", ErrConstructionFailed, tags.Kind)
	}

	return question, nil
}

func normalizeTrueFalse(answer string) string {
	if strings.ToLower(strings.TrimSpace(answer)) == "true" {
		return "true"
	}
	return "false"
}

// partitionMatchingItems keeps digit-only ids on the right and ids starting
// with a letter on the left. Anything else is dropped.
func partitionMatchingItems(items []models.Item) (left, right []models.Item) {
	left = make([]models.Item, 0)
	right = make([]models.Item, 0)
	for _, item := range items {
		switch {
		case rightItemID.MatchString(item.ID):
			right = append(right, item)
		case leftItemID.MatchString(item.ID):
			left = append(left, item)
		}
	}
	return left, right
}

// ===== CLOZE VARIANT =====

func (b *questionBuilder) buildCloze(tags grammar.TagSet, req BuildRequest) (*models.Question, error) {
	fields := req.Fields
	card := cloze.NewCard(fields.Answer, req.CardOrdinal)
	side := cloze.QuestionSide
	if req.Side == SideAnswer {
		side = cloze.AnswerSide
	}

	question := &models.Question{Kind: tags.Kind}
	if tags.Kind == models.KindMatching {
		question.PromptHTML = fields.Prompt
	} else {
		question.PromptHTML = clozePrompt(fields.Prompt, card.Render(fields.Answer, side, false))
	}

	contents := card.ActiveContents()

	switch tags.Kind {
	case models.KindSingleChoice:
		options := grammar.ParseOptions(fields.Options)
		correct := optionsMatchingContents(options, contents)
		content := models.SingleChoiceContent{Options: options}
		if len(correct) > 0 {
			content.CorrectAnswer = correct[0]
		}
		question.Content = content
	case models.KindMultipleChoice:
		options := grammar.ParseOptions(fields.Options)
		question.Content = models.MultipleChoiceContent{
			Options:         options,
			CorrectAnswers:  optionsMatchingContents(options, contents),
			DistinctAnswers: true,
		}
	case models.KindTrueFalse:
		answer := ""
		if len(contents) > 0 {
			answer = contents[0]
		}
		question.Content = models.TrueFalseContent{
			Options:       models.TrueFalseOptions(),
			CorrectAnswer: normalizeTrueFalse(answer),
		}
	case models.KindOrdering:
		idByText := make(map[string]string)
		for _, option := range grammar.ParseItems(fields.Options) {
			idByText[strings.ToLower(option.Text)] = option.ID
		}
		items := make([]models.Item, len(contents))
		order := make([]string, len(contents))
		for i, text := range contents {
			id, ok := idByText[strings.ToLower(text)]
			if !ok {
				id = text
			}
			items[i] = models.Item{ID: id, Text: text}
			order[i] = id
		}
		question.Content = models.OrderingContent{Items: items, CorrectOrder: order}
	case models.KindSentenceFormation:
		question.Content = models.SentenceFormationContent{
			CorrectWords:    contents,
			DistractorWords: grammar.SplitPipeList(fields.Options),
		}
	case models.KindMatching:
		question.Content = buildClozeMatching(card, fields, side)
	case models.KindExactAnswer:
		if dups := card.DuplicateIndexes(); len(dups) > 0 {
			b.logger.Warn("Duplicate cloze indexes, answers are aligned in document order",
				"card_ordinal", req.CardOrdinal,
				"indexes", dups,
			)
		}
		question.Content = models.ExactAnswerContent{Expected: contents}
	case models.KindBasic:
		question.Content = models.BasicContent{ExpectedDisplay: strings.Join(contents, ", ")}
	default:
		return nil, fmt.Errorf("%w: %q", ErrConstructionFailed, tags.Kind)
	}

	return question, nil
}

func clozePrompt(prompt, renderedAnswer string) string {
	if strings.TrimSpace(prompt) == "" {
		return renderedAnswer
	}
	return "<p>" + prompt + "</p>" + renderedAnswer
}

// optionsMatchingContents returns the ids of options whose text or id equals,
// case-insensitively, an active deletion's content or the id parsed from it.
func optionsMatchingContents(options []models.Option, contents []string) []string {
	texts := make(map[string]bool, len(contents))
	ids := make(map[string]bool, len(contents))
	for _, c := range contents {
		texts[strings.ToLower(c)] = true
		if parsed, ok := grammar.ParseIDText(c); ok {
			ids[strings.ToLower(parsed.ID)] = true
		}
	}

	correct := make([]string, 0)
	for _, option := range options {
		if texts[strings.ToLower(option.Text)] || ids[strings.ToLower(option.ID)] {
			correct = append(correct, option.ID)
		}
	}
	return correct
}

// buildClozeMatching reads left items from the answer field and right items from
// the options field. A left item is paired with the right item whose text equals
// its deletion content, and counts on this card when that deletion is revealed.
func buildClozeMatching(card cloze.Card, fields models.NoteFields, side cloze.Side) models.MatchingContent {
	left := grammar.ParseItems(fields.Answer)
	right := grammar.ParseItems(fields.Options)

	content := models.MatchingContent{
		LeftItems:      make([]models.Item, 0, len(left)),
		RightItems:     right,
		CorrectPairing: make(map[string]string),
		ActiveLeftIDs:  make([]string, 0),
	}

	for _, item := range left {
		if deletions := cloze.Scan(item.Text); len(deletions) > 0 {
			target := strings.ToLower(strings.TrimSpace(deletions[0].Content))
			if target != "" {
				for _, r := range right {
					if strings.ToLower(strings.TrimSpace(r.Text)) == target {
						content.CorrectPairing[item.ID] = r.ID
						break
					}
				}
			}
		}
		if card.HasRevealed(item.Text) {
			content.ActiveLeftIDs = append(content.ActiveLeftIDs, item.ID)
		}
		content.LeftItems = append(content.LeftItems, models.Item{
			ID:   item.ID,
			Text: card.Render(item.Text, side, true),
		})
	}

	return content
}
