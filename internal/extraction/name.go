package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// nameScanLines bounds how far from the top of the document a header name is looked for.
	nameScanLines = 25
	// emailLookBehind is how many lines above the email line may hold the name.
	emailLookBehind = 3
	minNameLength   = 5
)

var (
	titleCaseLine = regexp.MustCompile(`^[A-Z][a-z]+(?:\s[A-Z][a-z]+){1,3}$`)
	upperCaseLine = regexp.MustCompile(`^[A-Z]+(?:\s[A-Z]+){1,3}$`)
	nameWord      = regexp.MustCompile(`^\p{L}+(?:['.-]\p{L}+)*\.?$`)
)

// ExtractName guesses the candidate name from the line structure of text.
// It first looks for a capitalised two-to-four word line near the top of the
// document, then at the lines just above the first email address.
func ExtractName(text string, vocab Vocabulary) string {
	lines := Lines(text)

	if name, ok := nameFromHeader(lines, vocab); ok {
		return name
	}
	if name, ok := nameNearEmail(lines, vocab); ok {
		return name
	}
	return NotFound
}

// AcceptName normalises a free-form name candidate and reports whether it looks
// like a person name: two to four alphabetic words, no section-header terms.
// Accepted names are title-cased.
func AcceptName(candidate string, vocab Vocabulary) (string, bool) {
	candidate = strings.Trim(strings.Join(strings.Fields(candidate), " "), " ,;:-")
	if utf8.RuneCountInString(candidate) < minNameLength || vocab.blacklisted(candidate) {
		return "", false
	}

	words := strings.Fields(candidate)
	if len(words) < 2 || len(words) > 4 {
		return "", false
	}
	for _, word := range words {
		if !nameWord.MatchString(word) {
			return "", false
		}
	}

	return titleCase(candidate), true
}

func nameFromHeader(lines []string, vocab Vocabulary) (string, bool) {
	for i, line := range lines {
		if i >= nameScanLines {
			break
		}
		if len(line) < minNameLength || vocab.blacklisted(line) {
			continue
		}
		if titleCaseLine.MatchString(line) {
			return line, true
		}
		if upperCaseLine.MatchString(line) {
			return titleCase(line), true
		}
	}
	return "", false
}

func nameNearEmail(lines []string, vocab Vocabulary) (string, bool) {
	for i, line := range lines {
		loc := emailPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}

		// "Jane Doe jane@example.com" on one line
		if name, ok := AcceptName(line[:loc[0]], vocab); ok {
			return name, true
		}
		for j := i - 1; j >= 0 && j >= i-emailLookBehind; j-- {
			if name, ok := AcceptName(lines[j], vocab); ok {
				return name, true
			}
		}
		return "", false
	}
	return "", false
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
