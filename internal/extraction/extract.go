// Package extraction pulls candidate fields out of resume text with keyword
// lists and regular expressions. Every extractor is total: when nothing matches
// it returns a sentinel (NotFound, an empty list, or 0) instead of an error.
package extraction

import "strings"

// Fields is the set of values extracted from one resume.
type Fields struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	ExperienceYears int      `json:"experience_years"`
	Education       string   `json:"education"`
	Skills          []string `json:"skills"`
	Projects        []string `json:"projects"`
	Certifications  []string `json:"certifications"`
}

// Extract runs every field extractor over the raw text of one document.
// Line-oriented heuristics see the original line breaks; the rest see the
// cleaned, single-line text.
func Extract(text string, vocab Vocabulary) Fields {
	cleaned := Clean(text)

	return Fields{
		Name:            ExtractName(text, vocab),
		Email:           ExtractEmail(cleaned),
		Phone:           ExtractPhone(cleaned),
		ExperienceYears: ExtractExperience(cleaned),
		Education:       ExtractEducation(cleaned, vocab),
		Skills:          ExtractSkills(cleaned, vocab),
		Projects:        ExtractProjects(text, vocab),
		Certifications:  ExtractCertifications(text, vocab),
	}
}

// SkillsDisplay joins the skills for a report cell.
func (f Fields) SkillsDisplay() string {
	return strings.Join(f.Skills, ", ")
}

// ProjectsDisplay joins the projects for a report cell.
func (f Fields) ProjectsDisplay() string {
	return Display(f.Projects)
}

// CertificationsDisplay joins the certifications for a report cell.
func (f Fields) CertificationsDisplay() string {
	return Display(f.Certifications)
}
