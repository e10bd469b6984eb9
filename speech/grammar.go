package speech

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const contextRunes = 50

// analyzeGrammar is a capitalization check only; it stands in for a real
// grammar checker.
func analyzeGrammar(text string) GrammarStats {
	out := GrammarStats{Details: []GrammarError{}}
	offset := 0
	for _, raw := range strings.Split(text, ".") {
		sentence := strings.TrimSpace(raw)
		start := offset + strings.Index(raw, sentence)
		offset += len(raw) + 1
		if sentence == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(sentence)
		if unicode.IsUpper(first) {
			continue
		}
		out.Details = append(out.Details, GrammarError{
			Message:     "Sentence should start with capital letter",
			Context:     truncateRunes(sentence, contextRunes),
			Offset:      start,
			Suggestions: []string{capitalize(sentence)},
			Category:    "Capitalization",
		})
	}
	out.Count = len(out.Details)
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
