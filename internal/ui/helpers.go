package ui

import "strings"

// wrapText folds text at word boundaries to the given width. Words longer
// than the width get their own line rather than being split.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len([]rune(word))
			continue
		}
		wordLen := len([]rune(word))
		if lineLen+1+wordLen > width {
			b.WriteString("\n")
			b.WriteString(word)
			lineLen = wordLen
			continue
		}
		b.WriteString(" ")
		b.WriteString(word)
		lineLen += 1 + wordLen
	}
	return b.String()
}
