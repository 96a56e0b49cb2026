package extraction

import (
	"regexp"
	"strings"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
)

const sampleResume = `John Doe
Senior Python Developer
john.doe@example.com | +91 9876543210
Summary
5 years of experience building data pipelines. Worked 3 yrs at Acme.
Education
B.Tech in Computer Science
Skills
• Python, SQL, Machine Learning, Pandas, React
Projects
Developed a resume screening tool in Python. Built dashboards using Tableau.
Certifications
AWS Certified Solutions Architect. Completed a Deep Learning course on Coursera.
`

func TestExtractSampleResume(t *testing.T) {
	t.Parallel()

	got := Extract(sampleResume, DefaultVocabulary())
	want := Fields{
		Name:            "John Doe",
		Email:           "john.doe@example.com",
		Phone:           "+91 9876543210",
		ExperienceYears: 5,
		Education:       "B.TECH",
		Skills:          []string{"python", "machine learning", "deep learning", "sql", "react", "pandas", "tableau"},
		Projects: []string{
			"Developed a resume screening tool in Python",
			"Built dashboards using Tableau",
		},
		Certifications: []string{
			"AWS Certified Solutions Architect",
			"Completed a Deep Learning course on Coursera",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractEmptyTextYieldsSentinels(t *testing.T) {
	t.Parallel()

	got := Extract("", DefaultVocabulary())
	want := Fields{
		Name:           NotFound,
		Email:          NotFound,
		Phone:          NotFound,
		Education:      NotFound,
		Skills:         []string{},
		Projects:       []string{},
		Certifications: []string{},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Extract(\"\") mismatch (-want +got):\n%s", diff)
	}

	if got.ProjectsDisplay() != None || got.CertificationsDisplay() != None {
		t.Fatalf("expected None display for empty lists, got %q and %q", got.ProjectsDisplay(), got.CertificationsDisplay())
	}
	if got.SkillsDisplay() != "" {
		t.Fatalf("expected empty skills display, got %q", got.SkillsDisplay())
	}
}

func TestCleanCollapsesGlyphsAndWhitespace(t *testing.T) {
	t.Parallel()

	got := Clean("  Python | SQL\n\n•  React\t Go  ")
	if got != "Python SQL React Go" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}

func TestLinesDropsBlankLines(t *testing.T) {
	t.Parallel()

	got := Lines("first  line\n\n  | \nsecond\tline\n")
	want := []string{"first line", "second line"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestHead(t *testing.T) {
	t.Parallel()

	if got := Head("héllo world", 5); got != "héllo" {
		t.Fatalf("expected rune-based truncation, got %q", got)
	}
	if got := Head("short", 50); got != "short" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
	if got := Head("anything", 0); got != "" {
		t.Fatalf("expected empty string for non-positive limit, got %q", got)
	}
}

var fullEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,4}$`)

func TestExtractEmailIsSubstringOrSentinel(t *testing.T) {
	t.Parallel()

	property := func(prefix, suffix string, withEmail bool) bool {
		text := prefix + " " + suffix
		if withEmail {
			text = prefix + " someone.else@mail.example.org " + suffix
		}

		got := ExtractEmail(text)
		if got == NotFound {
			return !withEmail
		}
		return strings.Contains(text, got) && fullEmail.MatchString(got)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestExtractEmailPicksFirstOccurrence(t *testing.T) {
	t.Parallel()

	got := ExtractEmail("me: first@example.com, referee: second@example.com")
	if got != "first@example.com" {
		t.Fatalf("expected first email, got %q", got)
	}
}

func TestExtractSkillsOnlyReturnsVocabularyTermsPresentInText(t *testing.T) {
	t.Parallel()

	vocab := DefaultVocabulary()
	inVocab := make(map[string]bool)
	for _, skill := range vocab.Skills {
		inVocab[skill] = true
	}

	property := func(text string, extra uint8) bool {
		// bias inputs towards containing some real skills
		text += " " + vocab.Skills[int(extra)%len(vocab.Skills)]
		lower := strings.ToLower(text)

		for _, skill := range ExtractSkills(text, vocab) {
			if !inVocab[skill] || !strings.Contains(lower, strings.ToLower(skill)) {
				return false
			}
		}
		return true
	}

	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestExtractSkillsCaseInsensitiveAndOrdered(t *testing.T) {
	t.Parallel()

	vocab := Vocabulary{Skills: []string{"Go", "go", "Kubernetes", "SQL"}}
	got := ExtractSkills("SQL, KUBERNETES and golang", vocab)
	want := []string{"Go", "Kubernetes", "SQL"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExtractSkills() mismatch (-want +got):\n%s", diff)
	}
}
