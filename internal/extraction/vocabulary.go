package extraction

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the keyword lists the extractors match against. Order is
// significant: skills are reported in vocabulary order and the first education
// keyword present wins.
type Vocabulary struct {
	Skills                []string `yaml:"skills"`
	Education             []string `yaml:"education"`
	CertificationTriggers []string `yaml:"certification_triggers"`
	ProjectTriggers       []string `yaml:"project_triggers"`
	NameBlacklist         []string `yaml:"name_blacklist"`
}

// DefaultVocabulary returns a fresh copy of the built-in keyword lists.
//
// Education keywords written in upper case ("BE") only match upper-case text,
// so the English verb "be" is not mistaken for a degree.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Skills: []string{
			"python", "java", "c++", "machine learning", "deep learning", "sql",
			"html", "css", "javascript", "react", "django", "flask", "nlp", "data analysis",
			"pandas", "numpy", "tableau", "power bi",
		},
		Education: []string{
			"b.tech", "btech", "b.e", "BE", "m.tech", "mtech", "b.sc", "bsc",
			"m.sc", "msc", "bca", "mca", "phd", "mba", "bachelor", "master",
		},
		CertificationTriggers: []string{"certification", "certified", "course", "training"},
		ProjectTriggers:       []string{"project", "projects", "developed", "built", "created"},
		NameBlacklist: []string{
			"resume", "curriculum vitae", "profile", "objective", "summary",
			"contact", "education", "skills", "projects", "experience",
			"declaration", "career", "personal details", "work history",
			"achievements", "certifications", "languages", "hobbies", "interests",
			"references", "internship", "strengths", "address",
			// job titles printed as headings
			"developer", "engineer", "manager", "analyst", "scientist",
			"consultant", "designer", "architect", "specialist", "administrator",
		},
	}
}

// LoadVocabulary reads a YAML vocabulary file. Lists present in the file
// replace the corresponding default list; absent or empty lists keep the default.
func LoadVocabulary(path string) (Vocabulary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	var fileVocab Vocabulary
	if err := yaml.Unmarshal(raw, &fileVocab); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}

	return DefaultVocabulary().Merge(fileVocab), nil
}

// Merge returns v with every non-empty list of override replacing its own.
func (v Vocabulary) Merge(override Vocabulary) Vocabulary {
	v.Skills = pick(v.Skills, override.Skills)
	v.Education = pick(v.Education, override.Education)
	v.CertificationTriggers = pick(v.CertificationTriggers, override.CertificationTriggers)
	v.ProjectTriggers = pick(v.ProjectTriggers, override.ProjectTriggers)
	v.NameBlacklist = pick(v.NameBlacklist, override.NameBlacklist)
	return v
}

func (v Vocabulary) blacklisted(line string) bool {
	return containsAny(strings.ToLower(line), v.NameBlacklist)
}

func pick(current, override []string) []string {
	cleaned := make([]string, 0, len(override))
	for _, term := range override {
		if term = strings.TrimSpace(term); term != "" {
			cleaned = append(cleaned, term)
		}
	}
	if len(cleaned) == 0 {
		return current
	}
	return cleaned
}

// containsAny reports whether lower contains any of the terms, compared
// case-insensitively. lower must already be lower-cased.
func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
