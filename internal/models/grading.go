package models

type DiffKind string

const (
	DiffCommon  DiffKind = "common"
	DiffAdded   DiffKind = "added"
	DiffRemoved DiffKind = "removed"
)

// DiffToken is one character of a typed-vs-expected alignment. Added characters
// come from what the user typed, removed ones from the expected text.
type DiffToken struct {
	Kind DiffKind `json:"kind"`
	Char string   `json:"char"`
}

// EvaluationResult is plain data for the renderer. IsCorrect is nil only for
// the basic kind and is always false when EffectiveDontKnow is set.
type EvaluationResult struct {
	Kind              QuestionKind           `json:"kind"`
	IsCorrect         *bool                  `json:"is_correct"`
	EffectiveDontKnow bool                   `json:"effective_dont_know"`
	DontKnowInferred  bool                   `json:"dont_know_inferred"`
	PerItemResults    map[string]bool        `json:"per_item_results,omitempty"`
	Diff              []DiffToken            `json:"diff,omitempty"`
	ItemDiffs         map[string][]DiffToken `json:"item_diffs,omitempty"`
}

type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	VerdictDontKnow  Verdict = "dont_know"
	VerdictUngraded  Verdict = "ungraded"
)

func (r EvaluationResult) Verdict() Verdict {
	switch {
	case r.IsCorrect == nil:
		return VerdictUngraded
	case r.EffectiveDontKnow:
		return VerdictDontKnow
	case *r.IsCorrect:
		return VerdictCorrect
	default:
		return VerdictIncorrect
	}
}

// Review ease values as understood by spaced-repetition hosts.
const (
	EaseNone  = 0
	EaseAgain = 1
	EaseGood  = 3
)

// SuggestedEase maps a verdict to the review button a host would press.
// Ungraded cards suggest nothing.
func (r EvaluationResult) SuggestedEase() int {
	switch r.Verdict() {
	case VerdictCorrect:
		return EaseGood
	case VerdictIncorrect, VerdictDontKnow:
		return EaseAgain
	default:
		return EaseNone
	}
}

func BoolPtr(b bool) *bool {
	return &b
}
