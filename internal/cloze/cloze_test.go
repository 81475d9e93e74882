package cloze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const capitalField = "{{c1::Paris}} {{c2::France}} {{c3::}}"

func TestScan(t *testing.T) {
	deletions := Scan("A {{c1::cat::animal}} and {{c2::dog}} {{cx::no}}")
	if assert.Len(t, deletions, 2) {
		assert.Equal(t, 1, deletions[0].Index)
		assert.Equal(t, "cat", deletions[0].Content)
		assert.Equal(t, "animal", deletions[0].Placeholder)
		assert.Equal(t, "animal", deletions[0].DisplayPlaceholder())
		assert.Equal(t, 2, deletions[1].Index)
		assert.Equal(t, "dog", deletions[1].Content)
		assert.Equal(t, "", deletions[1].Placeholder)
		assert.Equal(t, "...", deletions[1].DisplayPlaceholder())
	}
	assert.Empty(t, Scan(""))
}

func TestNewCard_ReviewAll(t *testing.T) {
	card := NewCard(capitalField, 3)

	assert.Equal(t, 3, card.MaxIndex)
	assert.True(t, card.HasReviewMarker)
	assert.True(t, card.IsReviewAll)
	assert.Equal(t, []string{"Paris", "France"}, card.ActiveContents())

	assert.Equal(t, Reveal, card.Decide(1))
	assert.Equal(t, Reveal, card.Decide(2))
	assert.Equal(t, Suppress, card.Decide(3))
}

func TestNewCard_SingleCard(t *testing.T) {
	card := NewCard(capitalField, 1)

	assert.False(t, card.IsReviewAll)
	assert.Equal(t, []string{"Paris"}, card.ActiveContents())
	assert.Equal(t, Reveal, card.Decide(1))
	assert.Equal(t, Inactive, card.Decide(2))
	assert.Equal(t, Suppress, card.Decide(3))

	question := card.Render(capitalField, QuestionSide, false)
	assert.Equal(t,
		`<span class="cloze-placeholder-active">[...]</span> <span class="cloze-placeholder-inactive">[...]</span> `,
		question)

	answer := card.Render(capitalField, AnswerSide, false)
	assert.Equal(t,
		`<span class="cloze">Paris</span> <span class="cloze-placeholder-inactive">[...]</span> `,
		answer)

	overlapped := card.Render(capitalField, AnswerSide, true)
	assert.Equal(t, `<span class="cloze">Paris</span> France `, overlapped)
}

func TestNewCard_ReviewAllRendering(t *testing.T) {
	card := NewCard(capitalField, 3)

	assert.Equal(t,
		`<span class="cloze-placeholder-active">[...]</span> <span class="cloze-placeholder-active">[...]</span> `,
		card.Render(capitalField, QuestionSide, false))
	assert.Equal(t,
		`<span class="cloze">Paris</span> <span class="cloze">France</span> `,
		card.Render(capitalField, AnswerSide, false))
}

func TestNewCard_NoReviewMarker(t *testing.T) {
	field := "{{c1::one}} {{c2::two}}"
	card := NewCard(field, 2)

	assert.False(t, card.HasReviewMarker)
	assert.False(t, card.IsReviewAll)
	assert.Equal(t, []string{"two"}, card.ActiveContents())
	assert.Equal(t, Inactive, card.Decide(1))
}

func TestNewCard_DuplicateIndexesKeepDocumentOrder(t *testing.T) {
	field := "{{c1::alpha}} {{c2::beta}} {{c1::gamma}}"
	card := NewCard(field, 1)

	assert.Equal(t, []string{"alpha", "gamma"}, card.ActiveContents())
	assert.Equal(t, []int{1}, card.DuplicateIndexes())
	assert.Empty(t, NewCard(field, 2).DuplicateIndexes())
}

func TestNewCard_NoDeletions(t *testing.T) {
	card := NewCard("plain text", 1)

	assert.Equal(t, 0, card.MaxIndex)
	assert.False(t, card.HasReviewMarker)
	assert.Empty(t, card.Active())
	assert.Equal(t, "plain text", card.Render("plain text", QuestionSide, false))
}

func TestCard_HasRevealed(t *testing.T) {
	card := NewCard("{{c1::x}} {{c2::y}}", 2)

	assert.True(t, card.HasRevealed("Left {{c2::Spain}}"))
	assert.False(t, card.HasRevealed("Left {{c1::France}}"))
	assert.False(t, card.HasRevealed("no deletion"))
}

func TestCard_RenderPlaceholder(t *testing.T) {
	card := NewCard("{{c1::Madrid::capital}}", 1)
	assert.Equal(t,
		`Capital: <span class="cloze-placeholder-active">[capital]</span>`,
		card.Render("Capital: {{c1::Madrid::capital}}", QuestionSide, false))
}
