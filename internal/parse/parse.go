// Package parse extracts text and structure from uploaded resume files.
//
// Extraction is best-effort: every result carries a confidence tier so
// downstream features can tell a cleanly-parsed resume from a mangled one.
package parse

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/ingest"
)

// Result is the outcome of parsing one resume file.
type Result struct {
	Text       string
	Structured db.JSONMap
	Confidence string
}

// File parses an uploaded resume. The format is chosen by the filename
// extension: .pdf, .docx, and plain text (.txt, .md) are supported.
func File(filename string, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt", ".md", "":
		text = string(data)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	text = normalize(text)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text could be extracted from %s", filename)
	}

	sections := splitSections(text)
	return &Result{
		Text:       text,
		Structured: structure(text, sections),
		Confidence: confidence(text, sections),
	}, nil
}

// Version converts a parse result into a resume version payload.
func (r *Result) Version() db.VersionInput {
	return db.VersionInput{
		ContentRaw:        r.Text,
		ContentStructured: r.Structured,
		ParsingConfidence: r.Confidence,
	}
}

// structure builds the stored JSON view of the parsed resume.
func structure(text string, sections []section) db.JSONMap {
	secs := make([]any, 0, len(sections))
	for _, s := range sections {
		secs = append(secs, map[string]any{
			"type":    s.Type,
			"title":   s.Title,
			"content": s.Content,
		})
	}
	m := db.JSONMap{"sections": secs}
	if emails := findEmails(text); len(emails) > 0 {
		m["emails"] = emails
	}
	if skills := ingest.ScanSkills(text); len(skills) > 0 {
		m["skills"] = skills
	}
	return m
}

// confidence grades the extraction. Recognized section headings are the main
// signal that the text came out in reading order rather than scrambled.
func confidence(text string, sections []section) string {
	recognized := 0
	for _, s := range sections {
		if s.Type != sectionOther {
			recognized++
		}
	}
	switch {
	case len(text) < 200 || recognized == 0:
		return db.ConfidenceLow
	case recognized >= 2 && len(text) >= 600:
		return db.ConfidenceHigh
	default:
		return db.ConfidenceMedium
	}
}

// normalize collapses extraction artifacts: carriage returns, trailing
// spaces, and runs of blank lines.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func findEmails(text string) []string {
	seen := make(map[string]bool)
	var emails []string
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,;:()<>")
		at := strings.Index(word, "@")
		if at < 1 || at == len(word)-1 || !strings.Contains(word[at:], ".") {
			continue
		}
		lower := strings.ToLower(word)
		if !seen[lower] {
			seen[lower] = true
			emails = append(emails, lower)
		}
	}
	return emails
}
