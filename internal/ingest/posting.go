package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/daniela/resume-optimizer/internal/db"
)

// browserTimeout bounds the headless-browser fallback.
const browserTimeout = 45 * time.Second

// Posting is a job posting pulled from a URL, ready to be stored as a job
// description.
type Posting struct {
	Title           string
	Company         string
	Location        string
	SourceURL       string
	ContentRaw      string
	RequiredSkills  []string
	PreferredSkills []string
	// RenderedInBrowser records whether the headless-browser fallback ran.
	RenderedInBrowser bool
}

// Input converts the posting into a job description create payload.
func (p *Posting) Input() db.JobDescriptionInput {
	return db.JobDescriptionInput{
		Title:           p.Title,
		Company:         p.Company,
		Location:        p.Location,
		SourceURL:       p.SourceURL,
		ContentRaw:      p.ContentRaw,
		RequiredSkills:  p.RequiredSkills,
		PreferredSkills: p.PreferredSkills,
	}
}

// FromURL fetches a job posting URL and extracts its content. Plain HTTP is
// tried first; if the extracted text looks like an unrendered SPA shell and
// allowBrowser is set, the page is re-rendered in a headless browser.
func FromURL(ctx context.Context, urlStr string, allowBrowser bool, verbose bool) (*Posting, error) {
	result, err := FetchURL(ctx, urlStr, nil)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(result.HTML, JobPostingSelectors())
	if err != nil {
		return nil, err
	}

	html := result.HTML
	rendered := false
	if allowBrowser && ShouldUseBrowser(text) {
		renderedHTML, berr := RenderWithBrowser(ctx, urlStr, browserTimeout, verbose)
		if berr == nil {
			if renderedText, terr := ExtractMainText(renderedHTML, JobPostingSelectors()); terr == nil && len(renderedText) > len(text) {
				html = renderedHTML
				text = renderedText
				rendered = true
			}
		}
		// Browser failures are non-fatal; the plain fetch result stands.
	}

	posting := FromHTML(html, text)
	posting.SourceURL = urlStr
	posting.RenderedInBrowser = rendered
	return posting, nil
}

// FromHTML builds a posting from already-fetched HTML and its extracted text.
func FromHTML(html, text string) *Posting {
	p := &Posting{ContentRaw: text}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.Title = firstLine(text)
		return p
	}

	p.Title = postingTitle(doc, text)
	p.Company = metaContent(doc, `meta[property="og:site_name"]`, `meta[name="author"]`)
	p.Location = strings.TrimSpace(doc.Find(".location, .job-location, [data-testid='location']").First().Text())
	p.RequiredSkills = ScanSkills(text)
	return p
}

// knownSkills is the vocabulary scanned for in posting text, matched on word
// boundaries. Entries that double as common English words (Go, React, Spring,
// Rust, Rails, REST) only match when they appear with the skill's exact
// capitalization, so "go to our careers page" does not register the language.
var knownSkills = []string{
	"Python", "Go", "JavaScript", "TypeScript", "Java", "C++", "SQL", "Rust",
	"React", "Django", "FastAPI", "Node.js", "Spring", "Rails",
	"Docker", "Kubernetes", "Terraform", "AWS", "GCP", "PostgreSQL", "Redis",
	"Kafka", "CI/CD", "GraphQL", "REST",
}

var ambiguousSkills = map[string]bool{
	"Go": true, "React": true, "Spring": true, "Rust": true, "Rails": true, "REST": true,
}

// ScanSkills returns the known skills mentioned in the text, in vocabulary
// order without duplicates.
func ScanSkills(text string) []string {
	tokenize := func(s string) map[string]bool {
		words := make(map[string]bool)
		for _, w := range strings.FieldsFunc(s, func(r rune) bool {
			return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' ||
				r == '+' || r == '#' || r == '.' || r == '/')
		}) {
			words[strings.Trim(w, ".")] = true
		}
		return words
	}
	exact := tokenize(text)
	lowered := tokenize(strings.ToLower(text))

	var found []string
	for _, skill := range knownSkills {
		if ambiguousSkills[skill] {
			if exact[skill] {
				found = append(found, skill)
			}
		} else if lowered[strings.ToLower(skill)] {
			found = append(found, skill)
		}
	}
	return found
}

// postingTitle prefers an explicit heading over document metadata, which on
// job boards often carries the board's name rather than the role.
func postingTitle(doc *goquery.Document, text string) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if og := metaContent(doc, `meta[property="og:title"]`); og != "" {
		return og
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return firstLine(text)
}

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
