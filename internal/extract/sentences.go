package extract

import (
	"strings"
	"unicode"
)

// CollapseRepeatedSentences removes duplicate consecutive sentences, which
// commonly appear when a page repeats its lede inside nested content
// containers. Only immediate repeats are collapsed; a sentence recurring
// later in the text is preserved.
func CollapseRepeatedSentences(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return text
	}
	unique := sentences[:1]
	for _, s := range sentences[1:] {
		if s != unique[len(unique)-1] {
			unique = append(unique, s)
		}
	}
	return strings.Join(unique, " ")
}

// splitSentences splits after ".", "!" or "?" followed by whitespace. The
// terminator stays with its sentence; the separating whitespace is dropped.
func splitSentences(text string) []string {
	var sentences []string
	var sb strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		sb.WriteRune(runes[i])
		if isTerminator(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, sb.String())
			sb.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}
	if sb.Len() > 0 {
		sentences = append(sentences, sb.String())
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
