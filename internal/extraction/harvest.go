package extraction

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxHarvested is the number of certification or project segments kept per document.
	MaxHarvested = 3

	minSegmentLength = 10
	maxSegmentLength = 200
	minSegmentWords  = 3
)

// ExtractCertifications returns up to MaxHarvested sentences mentioning a
// certification trigger word.
func ExtractCertifications(text string, vocab Vocabulary) []string {
	return harvest(text, vocab.CertificationTriggers, MaxHarvested)
}

// ExtractProjects returns up to MaxHarvested sentences mentioning a project
// trigger word.
func ExtractProjects(text string, vocab Vocabulary) []string {
	return harvest(text, vocab.ProjectTriggers, MaxHarvested)
}

// harvest walks text line by line, splits each line into sentences on ".",
// and keeps sentences containing a trigger. Contact details (anything with "@"
// or a ten digit run) and bare section headers are skipped.
func harvest(text string, triggers []string, limit int) []string {
	found := make([]string, 0)
	seen := make(map[string]bool)

	for _, line := range Lines(text) {
		for _, segment := range strings.Split(line, ".") {
			segment = strings.TrimSpace(segment)
			if !harvestable(segment) {
				continue
			}

			lower := strings.ToLower(segment)
			if seen[lower] || !containsAny(lower, triggers) {
				continue
			}

			seen[lower] = true
			found = append(found, segment)
			if len(found) == limit {
				return found
			}
		}
	}
	return found
}

func harvestable(segment string) bool {
	n := utf8.RuneCountInString(segment)
	if n < minSegmentLength || n > maxSegmentLength {
		return false
	}
	if strings.Contains(segment, "@") || tenDigits.MatchString(segment) {
		return false
	}
	return len(strings.Fields(segment)) >= minSegmentWords
}

// Display joins items for a report cell, or returns None when there are none.
func Display(items []string) string {
	if len(items) == 0 {
		return None
	}
	return strings.Join(items, ", ")
}
