// Package diff aligns a typed answer with the expected one character by character.
package diff

import (
	"strings"
	"unicode"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

// Compute returns a case-insensitive longest-common-subsequence alignment of
// typed against expected. Common tokens carry the typed character, added tokens
// are typed characters missing from expected and removed tokens are expected
// characters the user left out. On ties the backtrack emits removed first.
func Compute(typed, expected string) []models.DiffToken {
	a := []rune(typed)
	b := []rune(expected)
	n, m := len(a), len(b)

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if equalFold(a[i-1], b[j-1]) {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	tokens := make([]models.DiffToken, 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && equalFold(a[i-1], b[j-1]):
			tokens = append(tokens, models.DiffToken{Kind: models.DiffCommon, Char: string(a[i-1])})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			tokens = append(tokens, models.DiffToken{Kind: models.DiffRemoved, Char: string(b[j-1])})
			j--
		default:
			tokens = append(tokens, models.DiffToken{Kind: models.DiffAdded, Char: string(a[i-1])})
			i--
		}
	}

	for l, r := 0, len(tokens)-1; l < r; l, r = l+1, r-1 {
		tokens[l], tokens[r] = tokens[r], tokens[l]
	}
	return tokens
}

// Typed concatenates every token that is not removed.
func Typed(tokens []models.DiffToken) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Kind != models.DiffRemoved {
			b.WriteString(t.Char)
		}
	}
	return b.String()
}

// Expected concatenates every token that is not added.
func Expected(tokens []models.DiffToken) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Kind != models.DiffAdded {
			b.WriteString(t.Char)
		}
	}
	return b.String()
}

// AllCommon reports whether the alignment has no edits.
func AllCommon(tokens []models.DiffToken) bool {
	for _, t := range tokens {
		if t.Kind != models.DiffCommon {
			return false
		}
	}
	return true
}

func equalFold(x, y rune) bool {
	return x == y || unicode.ToLower(x) == unicode.ToLower(y)
}
