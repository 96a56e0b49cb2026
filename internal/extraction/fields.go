package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

const (
	// NotFound marks a scalar field no extractor could fill.
	NotFound = "Not Found"
	// None marks an empty harvested list in display form.
	None = "None"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,4}`)
	phonePattern = regexp.MustCompile(`(?:\+91[\-\s]?)?[6-9]\d{9}`)
	tenDigits    = regexp.MustCompile(`\d{10}`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:\.\d+)?)\+?\s*years`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\+?\s*yrs`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*year experience`),
		regexp.MustCompile(`experience\s*:\s*(\d+(?:\.\d+)?)`),
	}

	educationPatterns sync.Map // keyword -> *regexp.Regexp
)

// ExtractEmail returns the first email-shaped substring of text.
func ExtractEmail(text string) string {
	if match := emailPattern.FindString(text); match != "" {
		return match
	}
	return NotFound
}

// ExtractPhone returns the first Indian mobile number (10 digits starting with
// 6-9, optionally prefixed by +91) found in text.
func ExtractPhone(text string) string {
	if match := phonePattern.FindString(text); match != "" {
		return match
	}
	return NotFound
}

// ExtractSkills returns the vocabulary skills that occur in text as
// case-insensitive substrings, in vocabulary order.
func ExtractSkills(text string, vocab Vocabulary) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	seen := make(map[string]bool)
	for _, skill := range vocab.Skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || seen[key] {
			continue
		}
		if strings.Contains(lower, key) {
			seen[key] = true
			found = append(found, skill)
		}
	}
	return found
}

// ExtractExperience returns the largest number of years mentioned in text.
// Decimal values are truncated.
func ExtractExperience(text string) int {
	lower := strings.ToLower(text)
	years := 0
	for _, pattern := range experiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			if n := int(value); n > years {
				years = n
			}
		}
	}
	return years
}

// ExtractEducation returns the first vocabulary degree keyword present in text,
// upper-cased. Keywords match on token boundaries; a plural or possessive
// "s" is allowed ("Masters", "Bachelor's").
func ExtractEducation(text string, vocab Vocabulary) string {
	for _, keyword := range vocab.Education {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		if educationPattern(keyword).MatchString(text) {
			return strings.ToUpper(keyword)
		}
	}
	return NotFound
}

func educationPattern(keyword string) *regexp.Regexp {
	if cached, ok := educationPatterns.Load(keyword); ok {
		return cached.(*regexp.Regexp)
	}

	flags := "(?i)"
	if isUpper(keyword) {
		flags = ""
	}
	pattern := regexp.MustCompile(flags + `(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(keyword) + `(?:'?s)?(?:$|[^\p{L}\p{N}])`)
	educationPatterns.Store(keyword, pattern)
	return pattern
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			hasLetter = true
		}
	}
	return hasLetter
}
