// Package grammar parses the delimited text fields of a note into typed tokens.
//
// Every function here is total: malformed input degrades to literal content
// instead of producing an error.
package grammar

import (
	"regexp"
	"strings"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

var (
	idTextPattern    = regexp.MustCompile(`(?s)^([a-zA-Z0-9_.-]+)[.)]\s*(.+)`)
	breakPattern     = regexp.MustCompile(`(?i)<br\s*/?>`)
	pairSeparator    = regexp.MustCompile(`[;,]`)
	escapedLineBreak = `\n`
)

// SplitPipeList splits on "|", trims every entry and drops the empty ones.
func SplitPipeList(s string) []string {
	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseIDText reads an "id. text" or "id) text" token. Text without a leading id
// becomes its own id. ok is false only for blank input.
func ParseIDText(s string) (item models.Item, ok bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return models.Item{}, false
	}
	if m := idTextPattern.FindStringSubmatch(t); m != nil {
		text := strings.TrimSpace(m[2])
		if text != "" {
			return models.Item{ID: strings.TrimSpace(m[1]), Text: text}, true
		}
	}
	return models.Item{ID: t, Text: t}, true
}

// ParseItems applies ParseIDText to every pipe-separated entry.
func ParseItems(s string) []models.Item {
	entries := SplitPipeList(s)
	items := make([]models.Item, 0, len(entries))
	for _, e := range entries {
		if item, ok := ParseIDText(e); ok {
			items = append(items, item)
		}
	}
	return items
}

// ParseOptions is ParseItems with the id doubling as the option value.
func ParseOptions(s string) []models.Option {
	items := ParseItems(s)
	options := make([]models.Option, len(items))
	for i, item := range items {
		options[i] = models.Option{ID: item.ID, Text: item.Text, Value: item.ID}
	}
	return options
}

// CleanID trims and strips one trailing "." or ")".
func CleanID(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasSuffix(t, ".") || strings.HasSuffix(t, ")") {
		t = t[:len(t)-1]
	}
	return t
}

// SplitIDList splits a comma-separated id list, cleaning every id and dropping blanks.
func SplitIDList(s string) []string {
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := CleanID(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// SplitWords splits on runs of whitespace.
func SplitWords(s string) []string {
	return strings.Fields(s)
}

// ParsePairs reads "a-1; b-2, c-3" into a left-id -> right-id map.
// Segments that do not split into exactly two parts on "-" are skipped.
func ParsePairs(s string) map[string]string {
	pairs := make(map[string]string)
	for _, segment := range pairSeparator.Split(s, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		parts := strings.Split(segment, "-")
		if len(parts) != 2 {
			continue
		}
		left := CleanID(parts[0])
		right := strings.TrimSpace(parts[1])
		if left == "" || right == "" {
			continue
		}
		pairs[left] = right
	}
	return pairs
}

// ParseExplanations returns per-option explanations when every non-empty
// segment is an "id. text" token, and the whole field as a general explanation
// otherwise. A blank field yields nil.
func ParseExplanations(raw string) models.Explanation {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	perOption := make(models.PerOptionExplanations)
	for _, segment := range strings.Split(raw, "|") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		m := idTextPattern.FindStringSubmatch(segment)
		if m == nil || strings.TrimSpace(m[2]) == "" {
			return models.GeneralExplanation(convertLineBreaks(strings.TrimSpace(raw)))
		}
		perOption[strings.TrimSpace(m[1])] = convertLineBreaks(strings.TrimSpace(m[2]))
	}

	if len(perOption) == 0 {
		return models.GeneralExplanation(convertLineBreaks(strings.TrimSpace(raw)))
	}
	return perOption
}

// ParseHints splits on "|"; each hint's title ends at its first <br>.
func ParseHints(raw string) []models.Hint {
	entries := SplitPipeList(raw)
	hints := make([]models.Hint, 0, len(entries))
	for _, entry := range entries {
		parts := breakPattern.Split(entry, -1)
		hint := models.Hint{Title: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			content := strings.TrimSpace(strings.Join(parts[1:], "<br>"))
			hint.Content = &content
		}
		hints = append(hints, hint)
	}
	return hints
}

func convertLineBreaks(s string) string {
	return strings.ReplaceAll(s, escapedLineBreak, "<br>")
}
