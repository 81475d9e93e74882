package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type QuestionKind string

const (
	KindSingleChoice      QuestionKind = "single-choice"
	KindMultipleChoice    QuestionKind = "multiple-choice"
	KindTrueFalse         QuestionKind = "true-false"
	KindExactAnswer       QuestionKind = "exact-answer"
	KindMatching          QuestionKind = "matching"
	KindOrdering          QuestionKind = "ordering"
	KindSentenceFormation QuestionKind = "sentence-formation"
	KindBasic             QuestionKind = "basic"
)

// AllKinds lists every kind the builder can construct.
var AllKinds = []QuestionKind{
	KindSingleChoice,
	KindMultipleChoice,
	KindTrueFalse,
	KindExactAnswer,
	KindMatching,
	KindOrdering,
	KindSentenceFormation,
	KindBasic,
}

func (k QuestionKind) IsValid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsGraded reports whether answers to this kind are scored.
func (k QuestionKind) IsGraded() bool {
	return k != KindBasic
}

// Question is built once per card display and never mutated afterwards.
// Content carries the kind-specific answer structure.
type Question struct {
	Kind         QuestionKind    `json:"kind"`
	PromptHTML   string          `json:"prompt_html"`
	ThematicTags []string        `json:"thematic_tags"`
	Hints        []Hint          `json:"hints"`
	Explanation  Explanation     `json:"explanation,omitempty"`
	Content      QuestionContent `json:"content"`
}

type Hint struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ===== KIND-SPECIFIC CONTENT =====

// QuestionContent is a closed set: only the content types in this file implement it.
type QuestionContent interface {
	Kind() QuestionKind
	// AnswerExpected reports whether the key holds anything to answer.
	AnswerExpected() bool
	isContent()
}

type SingleChoiceContent struct {
	Options       []Option `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type MultipleChoiceContent struct {
	Options        []Option `json:"options"`
	CorrectAnswers []string `json:"correct_answers"`
	// DistinctAnswers ignores repeated ids when grading (cloze cards).
	// Otherwise the response must hold exactly as many ids as the key.
	DistinctAnswers bool `json:"distinct_answers,omitempty"`
}

type TrueFalseContent struct {
	Options       []Option `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type ExactAnswerContent struct {
	Expected []string `json:"expected"`
}

type MatchingContent struct {
	LeftItems      []Item            `json:"left_items"`
	RightItems     []Item            `json:"right_items"`
	CorrectPairing map[string]string `json:"correct_pairing"`
	// ActiveLeftIDs narrows grading to the left items on the current cloze card.
	// Nil means every left item counts.
	ActiveLeftIDs []string `json:"active_left_ids"`
}

type OrderingContent struct {
	Items        []Item   `json:"items"`
	CorrectOrder []string `json:"correct_order"`
}

type SentenceFormationContent struct {
	CorrectWords    []string `json:"correct_words"`
	DistractorWords []string `json:"distractor_words"`
}

type BasicContent struct {
	ExpectedDisplay string `json:"expected_display"`
}

func (SingleChoiceContent) Kind() QuestionKind      { return KindSingleChoice }
func (MultipleChoiceContent) Kind() QuestionKind    { return KindMultipleChoice }
func (TrueFalseContent) Kind() QuestionKind         { return KindTrueFalse }
func (ExactAnswerContent) Kind() QuestionKind       { return KindExactAnswer }
func (MatchingContent) Kind() QuestionKind          { return KindMatching }
func (OrderingContent) Kind() QuestionKind          { return KindOrdering }
func (SentenceFormationContent) Kind() QuestionKind { return KindSentenceFormation }
func (BasicContent) Kind() QuestionKind             { return KindBasic }

func (SingleChoiceContent) isContent()      {}
func (MultipleChoiceContent) isContent()    {}
func (TrueFalseContent) isContent()         {}
func (ExactAnswerContent) isContent()       {}
func (MatchingContent) isContent()          {}
func (OrderingContent) isContent()          {}
func (SentenceFormationContent) isContent() {}
func (BasicContent) isContent()             {}

func (c SingleChoiceContent) AnswerExpected() bool   { return c.CorrectAnswer != "" }
func (c MultipleChoiceContent) AnswerExpected() bool { return len(c.CorrectAnswers) > 0 }
func (c TrueFalseContent) AnswerExpected() bool      { return c.CorrectAnswer != "" }
func (c OrderingContent) AnswerExpected() bool       { return len(c.CorrectOrder) > 0 }
func (c BasicContent) AnswerExpected() bool          { return false }

func (c SentenceFormationContent) AnswerExpected() bool {
	return len(c.CorrectWords) > 0
}

func (c ExactAnswerContent) AnswerExpected() bool {
	for _, e := range c.Expected {
		if strings.TrimSpace(e) != "" {
			return true
		}
	}
	return false
}

func (c MatchingContent) AnswerExpected() bool {
	if c.ActiveLeftIDs != nil {
		return len(c.ActiveLeftIDs) > 0
	}
	return len(c.CorrectPairing) > 0
}

// ScopedLeftIDs returns the left ids that take part in grading, in display order.
func (c MatchingContent) ScopedLeftIDs() []string {
	if c.ActiveLeftIDs != nil {
		return c.ActiveLeftIDs
	}
	ids := make([]string, 0, len(c.LeftItems))
	for _, item := range c.LeftItems {
		ids = append(ids, item.ID)
	}
	return ids
}

// ===== OPTION HELPERS =====

// OptionsOf returns the selectable options of choice-like content, nil otherwise.
func OptionsOf(content QuestionContent) []Option {
	switch c := content.(type) {
	case SingleChoiceContent:
		return c.Options
	case MultipleChoiceContent:
		return c.Options
	case TrueFalseContent:
		return c.Options
	default:
		return nil
	}
}

// TrueFalseOptions are synthesized rather than read from the options field.
func TrueFalseOptions() []Option {
	return []Option{
		{ID: "true", Text: "True", Value: "true"},
		{ID: "false", Text: "False", Value: "false"},
	}
}

// ===== JSON =====

type questionJSON struct {
	Kind         QuestionKind    `json:"kind"`
	PromptHTML   string          `json:"prompt_html"`
	ThematicTags []string        `json:"thematic_tags"`
	Hints        []Hint          `json:"hints"`
	Explanation  json.RawMessage `json:"explanation,omitempty"`
	Content      json.RawMessage `json:"content"`
}

// UnmarshalJSON restores the concrete content type from the kind tag.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	content, err := decodeContent(raw.Kind, raw.Content)
	if err != nil {
		return err
	}
	explanation, err := decodeExplanation(raw.Explanation)
	if err != nil {
		return err
	}

	q.Kind = raw.Kind
	q.PromptHTML = raw.PromptHTML
	q.ThematicTags = raw.ThematicTags
	q.Hints = raw.Hints
	q.Explanation = explanation
	q.Content = content
	return nil
}

func decodeContent(kind QuestionKind, data json.RawMessage) (QuestionContent, error) {
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("{}")
	}

	var content QuestionContent
	var err error
	switch kind {
	case KindSingleChoice:
		var c SingleChoiceContent
		err = json.Unmarshal(data, &c)
		content = c
	case KindMultipleChoice:
		var c MultipleChoiceContent
		err = json.Unmarshal(data, &c)
		content = c
	case KindTrueFalse:
		var c TrueFalseContent
		err = json.Unmarshal(data, &c)
		content = c
	case KindExactAnswer:
		var c ExactAnswerContent
		err = json.Unmarshal(data, &c)
		content = c
	case KindMatching:
		var c MatchingContent
		err = json.Unmarshal(data, &c)
		content = c
	case KindOrdering:
		var c OrderingContent
		err = json.Unmarshal(data, &c)
		content = c
	case KindSentenceFormation:
		var c SentenceFormationContent
		err = json.Unmarshal(data, &c)
		content = c
	case KindBasic:
		var c BasicContent
		err = json.Unmarshal(data, &c)
		content = c
	default:
		return nil, fmt.Errorf("unsupported question kind: %s", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s content: %w", kind, err)
	}
	return content, nil
}
