package grammar

import (
	"strings"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

// KindTable maps a lower-case tag to the question kind it selects.
type KindTable map[string]models.QuestionKind

// DefaultKindTable returns the built-in tag table.
func DefaultKindTable() KindTable {
	return KindTable{
		"sc": models.KindSingleChoice,
		"mc": models.KindMultipleChoice,
		"tf": models.KindTrueFalse,
		"ae": models.KindExactAnswer,
		"r":  models.KindMatching,
		"o":  models.KindOrdering,
		"f":  models.KindSentenceFormation,
		"b":  models.KindBasic,
	}
}

// Lookup matches a tag case-insensitively.
func (t KindTable) Lookup(tag string) (models.QuestionKind, bool) {
	kind, ok := t[strings.ToLower(tag)]
	return kind, ok
}

type TagSet struct {
	Kind         models.QuestionKind
	ThematicTags []string
}

// ParseTags picks the kind from the first tag found in table. Every other tag,
// including later kind tags, is thematic with underscores shown as spaces.
func ParseTags(raw string, table KindTable) TagSet {
	set := TagSet{ThematicTags: []string{}}
	kindFound := false
	for _, tag := range strings.Fields(raw) {
		if !kindFound {
			if kind, ok := table.Lookup(tag); ok {
				set.Kind = kind
				kindFound = true
				continue
			}
		}
		set.ThematicTags = append(set.ThematicTags, strings.ReplaceAll(tag, "_", " "))
	}
	if !kindFound {
		set.Kind = models.KindBasic
	}
	return set
}
