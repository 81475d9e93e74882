package services

import (
	"math/rand/v2"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

// Shuffler decides the order in which options and items are shown on the front.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type randomShuffler struct{}

func (randomShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// NewRandomShuffler returns a Fisher-Yates shuffler over the global source.
func NewRandomShuffler() Shuffler {
	return randomShuffler{}
}

// ShuffleQuestion returns a copy of q with its selectable elements shuffled and
// the resulting id order. Kinds without selectable elements are returned as-is
// with a nil order.
func ShuffleQuestion(q *models.Question, shuffler Shuffler) (*models.Question, []string) {
	ids := displayIDs(q.Content)
	if len(ids) < 2 {
		return q, nil
	}
	shuffler.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ApplyDisplayOrder(q, ids), ids
}

// ApplyDisplayOrder returns a copy of q whose selectable elements follow order.
// Elements missing from order keep their relative position after the ordered
// ones; unknown ids are ignored.
func ApplyDisplayOrder(q *models.Question, order []string) *models.Question {
	if q == nil || len(order) == 0 {
		return q
	}

	out := *q
	switch c := q.Content.(type) {
	case models.SingleChoiceContent:
		c.Options = reorderOptions(c.Options, order)
		out.Content = c
	case models.MultipleChoiceContent:
		c.Options = reorderOptions(c.Options, order)
		out.Content = c
	case models.OrderingContent:
		c.Items = reorderItems(c.Items, order)
		out.Content = c
	case models.MatchingContent:
		c.RightItems = reorderItems(c.RightItems, order)
		out.Content = c
	}
	return &out
}

func displayIDs(content models.QuestionContent) []string {
	switch c := content.(type) {
	case models.SingleChoiceContent:
		return optionIDs(c.Options)
	case models.MultipleChoiceContent:
		return optionIDs(c.Options)
	case models.OrderingContent:
		return itemIDs(c.Items)
	case models.MatchingContent:
		return itemIDs(c.RightItems)
	default:
		return nil
	}
}

func optionIDs(options []models.Option) []string {
	ids := make([]string, len(options))
	for i, o := range options {
		ids[i] = o.ID
	}
	return ids
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func reorderOptions(options []models.Option, order []string) []models.Option {
	positions := orderPositions(order)
	out := make([]models.Option, 0, len(options))
	rest := make([]models.Option, 0)
	placed := make([]*models.Option, len(order))
	for i := range options {
		if pos, ok := positions[options[i].ID]; ok && placed[pos] == nil {
			placed[pos] = &options[i]
			continue
		}
		rest = append(rest, options[i])
	}
	for _, o := range placed {
		if o != nil {
			out = append(out, *o)
		}
	}
	return append(out, rest...)
}

func reorderItems(items []models.Item, order []string) []models.Item {
	positions := orderPositions(order)
	out := make([]models.Item, 0, len(items))
	rest := make([]models.Item, 0)
	placed := make([]*models.Item, len(order))
	for i := range items {
		if pos, ok := positions[items[i].ID]; ok && placed[pos] == nil {
			placed[pos] = &items[i]
			continue
		}
		rest = append(rest, items[i])
	}
	for _, item := range placed {
		if item != nil {
			out = append(out, *item)
		}
	}
	return append(out, rest...)
}

// orderPositions keeps the first position of each id.
func orderPositions(order []string) map[string]int {
	positions := make(map[string]int, len(order))
	for i, id := range order {
		if _, seen := positions[id]; !seen {
			positions[id] = i
		}
	}
	return positions
}
