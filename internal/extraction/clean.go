package extraction

import (
	"regexp"
	"strings"
)

var (
	glyphReplacer = strings.NewReplacer(
		"|", " ",
		"•", " ",
		"●", " ",
		"▪", " ",
		"■", " ",
		"◦", " ",
		"►", " ",
		"➢", " ",
		"✓", " ",
		"\uf0b7", " ", // private-use bullet emitted by Word exports
		"\u00a0", " ",
	)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Clean replaces bullet and pipe glyphs with spaces and collapses every run of
// whitespace, newlines included, into a single space.
func Clean(text string) string {
	text = glyphReplacer.Replace(text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// Lines splits text on newlines and returns the non-empty cleaned lines.
func Lines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if cleaned := Clean(line); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return lines
}

// Head returns at most n runes from the start of text.
func Head(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
