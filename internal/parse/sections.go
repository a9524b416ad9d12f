package parse

import "strings"

// Section types mirror the resume_sections taxonomy.
const (
	sectionSummary    = "summary"
	sectionExperience = "experience"
	sectionEducation  = "education"
	sectionSkills     = "skills"
	sectionProjects   = "projects"
	sectionOther      = "other"
)

type section struct {
	Type    string
	Title   string
	Content string
}

// headingTypes maps common resume headings to section types. Keys are
// compared against lowercased candidate heading lines.
var headingTypes = map[string]string{
	"summary":              sectionSummary,
	"professional summary": sectionSummary,
	"profile":              sectionSummary,
	"about":                sectionSummary,
	"objective":            sectionSummary,
	"experience":           sectionExperience,
	"work experience":      sectionExperience,
	"work history":         sectionExperience,
	"employment":           sectionExperience,
	"employment history":   sectionExperience,
	"education":            sectionEducation,
	"skills":               sectionSkills,
	"technical skills":     sectionSkills,
	"core competencies":    sectionSkills,
	"projects":             sectionProjects,
	"personal projects":    sectionProjects,
}

// splitSections cuts the text at recognized headings. Text before the first
// heading becomes an untitled "other" section.
func splitSections(text string) []section {
	var sections []section
	current := section{Type: sectionOther}
	var body []string

	flush := func() {
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Content != "" || current.Title != "" {
			sections = append(sections, current)
		}
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if typ, ok := headingType(line); ok {
			flush()
			current = section{Type: typ, Title: strings.TrimSpace(line)}
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}

// headingType reports whether a line is a section heading. Headings are
// short standalone lines; a colon or trailing punctuation is tolerated.
func headingType(line string) (string, bool) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":"))
	if trimmed == "" || len(trimmed) > 40 {
		return "", false
	}
	typ, ok := headingTypes[strings.ToLower(trimmed)]
	return typ, ok
}
