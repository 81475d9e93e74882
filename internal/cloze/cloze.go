// Package cloze reads numbered {{cN::content::placeholder}} deletions and decides,
// for one card of a cloze note, which deletions are tested, hidden or shown.
package cloze

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var deletionPattern = regexp.MustCompile(`\{\{c(\d+)::([\s\S]*?)(?:::([\s\S]*?))?\}\}`)

const defaultPlaceholder = "..."

// Deletion is one {{cN::...}} span in document order.
type Deletion struct {
	Index       int
	Content     string
	Placeholder string
	Start       int
	End         int
}

// DisplayPlaceholder is the author's placeholder or "...".
func (d Deletion) DisplayPlaceholder() string {
	if d.Placeholder == "" {
		return defaultPlaceholder
	}
	return d.Placeholder
}

// Scan returns every deletion in s in document order. Spans whose index does
// not fit an int are left as literal text.
func Scan(s string) []Deletion {
	matches := deletionPattern.FindAllStringSubmatchIndex(s, -1)
	deletions := make([]Deletion, 0, len(matches))
	for _, m := range matches {
		index, err := strconv.Atoi(s[m[2]:m[3]])
		if err != nil {
			continue
		}
		d := Deletion{
			Index:   index,
			Content: s[m[4]:m[5]],
			Start:   m[0],
			End:     m[1],
		}
		if m[6] >= 0 {
			d.Placeholder = s[m[6]:m[7]]
		}
		deletions = append(deletions, d)
	}
	return deletions
}

// Decision is what happens to one deletion on the current card.
type Decision int

const (
	// Inactive deletions belong to other cards.
	Inactive Decision = iota
	// Reveal marks a deletion tested by the current card.
	Reveal
	// Suppress hides the review marker.
	Suppress
)

func (d Decision) String() string {
	switch d {
	case Reveal:
		return "reveal"
	case Suppress:
		return "suppress"
	default:
		return "inactive"
	}
}

// Side selects between the question and the answer face of a card.
type Side int

const (
	QuestionSide Side = iota
	AnswerSide
)

// Card holds the numbering facts of one answer field for one card ordinal.
type Card struct {
	Ordinal         int
	MaxIndex        int
	HasReviewMarker bool
	IsReviewAll     bool
	deletions       []Deletion
}

// NewCard scans the answer field. The review marker is the first deletion at
// the highest index when its content is blank.
func NewCard(answerField string, ordinal int) Card {
	card := Card{Ordinal: ordinal, deletions: Scan(answerField)}

	for _, d := range card.deletions {
		if d.Index > card.MaxIndex {
			card.MaxIndex = d.Index
		}
	}
	for _, d := range card.deletions {
		if d.Index == card.MaxIndex {
			card.HasReviewMarker = strings.TrimSpace(d.Content) == ""
			break
		}
	}
	card.IsReviewAll = card.HasReviewMarker && ordinal == card.MaxIndex
	return card
}

// Deletions returns all deletions of the answer field.
func (c Card) Deletions() []Deletion {
	return c.deletions
}

// Decide applies the reveal policy to a deletion index.
func (c Card) Decide(index int) Decision {
	if c.IsReviewAll {
		if index < c.MaxIndex {
			return Reveal
		}
		return Suppress
	}
	if index == c.Ordinal {
		return Reveal
	}
	if c.HasReviewMarker && index == c.MaxIndex {
		return Suppress
	}
	return Inactive
}

// Active returns the deletions that make up the correct-answer data of this
// card, in document order. Duplicate indexes are all kept.
func (c Card) Active() []Deletion {
	active := make([]Deletion, 0)
	for _, d := range c.deletions {
		if c.Decide(d.Index) == Reveal {
			active = append(active, d)
		}
	}
	return active
}

// ActiveContents returns the trimmed content of every active deletion.
func (c Card) ActiveContents() []string {
	active := c.Active()
	contents := make([]string, len(active))
	for i, d := range active {
		contents[i] = strings.TrimSpace(d.Content)
	}
	return contents
}

// DuplicateIndexes lists active indexes used by more than one deletion.
func (c Card) DuplicateIndexes() []int {
	counts := make(map[int]int)
	for _, d := range c.Active() {
		counts[d.Index]++
	}
	dups := make([]int, 0)
	for index, n := range counts {
		if n > 1 {
			dups = append(dups, index)
		}
	}
	sort.Ints(dups)
	return dups
}

// HasRevealed reports whether text holds a deletion revealed on this card.
func (c Card) HasRevealed(text string) bool {
	for _, d := range Scan(text) {
		if c.Decide(d.Index) == Reveal {
			return true
		}
	}
	return false
}

// Render replaces every deletion in text according to the card's decisions.
// With overlapper set, inactive deletions show their content instead of an
// inactive placeholder.
func (c Card) Render(text string, side Side, overlapper bool) string {
	if text == "" {
		return ""
	}

	deletions := Scan(text)
	if len(deletions) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, d := range deletions {
		b.WriteString(text[last:d.Start])
		b.WriteString(c.renderDeletion(d, side, overlapper))
		last = d.End
	}
	b.WriteString(text[last:])
	return b.String()
}

func (c Card) renderDeletion(d Deletion, side Side, overlapper bool) string {
	switch c.Decide(d.Index) {
	case Reveal:
		if side == AnswerSide {
			return fmt.Sprintf(`<span class="cloze">%s</span>`, d.Content)
		}
		return fmt.Sprintf(`<span class="cloze-placeholder-active">[%s]</span>`, d.DisplayPlaceholder())
	case Suppress:
		return ""
	default:
		if overlapper {
			return d.Content
		}
		return fmt.Sprintf(`<span class="cloze-placeholder-inactive">[%s]</span>`, d.DisplayPlaceholder())
	}
}
