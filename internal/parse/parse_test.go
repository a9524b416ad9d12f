package parse

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniela/resume-optimizer/internal/db"
)

const sampleResume = `Dana Reyes
dana.reyes@example.com

Summary
Backend engineer with eight years building payment systems.
Shipped three products from prototype to production scale.

Experience
Senior Engineer, Acme Corp (2020-Present)
- Led migration of billing pipeline to PostgreSQL
- Cut p99 latency from 900ms to 120ms

Software Engineer, Widgets Inc (2016-2020)
- Built the order ingestion service in Go
- Introduced contract tests across four internal services
- Mentored two junior engineers through their first production launches

Skills
Go, PostgreSQL, Kubernetes, Terraform

Education
BSc Computer Science, State University
`

func TestFile_PlainText(t *testing.T) {
	result, err := File("resume.txt", []byte(sampleResume))
	require.NoError(t, err)

	assert.Equal(t, db.ConfidenceHigh, result.Confidence)
	assert.Contains(t, result.Text, "billing pipeline")

	sections, ok := result.Structured["sections"].([]any)
	require.True(t, ok)

	types := make([]string, 0, len(sections))
	for _, s := range sections {
		types = append(types, s.(map[string]any)["type"].(string))
	}
	assert.Equal(t, []string{"other", "summary", "experience", "skills", "education"}, types)

	assert.Equal(t, []string{"dana.reyes@example.com"}, result.Structured["emails"])
	assert.Contains(t, result.Structured["skills"], "Go")
	assert.Contains(t, result.Structured["skills"], "Kubernetes")
}

func TestFile_ConfidenceTiers(t *testing.T) {
	// No recognized headings: low.
	result, err := File("notes.txt", []byte("just a few lines\nof unstructured notes about work"))
	require.NoError(t, err)
	assert.Equal(t, db.ConfidenceLow, result.Confidence)

	// One heading and modest length: medium.
	medium := "Experience\n" + strings.Repeat("Did useful engineering work on many systems.\n", 8)
	result, err = File("resume.txt", []byte(medium))
	require.NoError(t, err)
	assert.Equal(t, db.ConfidenceMedium, result.Confidence)
}

func TestFile_Unsupported(t *testing.T) {
	_, err := File("resume.rtf", []byte("{\\rtf1}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = File("resume.txt", nil)
	require.Error(t, err)

	_, err = File("resume.txt", []byte("   \n  "))
	require.Error(t, err)
}

func TestFile_GarbagePDF(t *testing.T) {
	_, err := File("resume.pdf", []byte("this is not a pdf"))
	require.Error(t, err)
}

func TestFile_DOCX(t *testing.T) {
	const documentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Dana Reyes</w:t></w:r></w:p>
<w:p><w:r><w:t>Experience</w:t></w:r></w:p>
<w:p><w:r><w:t>Senior Engineer at </w:t></w:r><w:r><w:t>Acme Corp</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills</w:t></w:r></w:p>
<w:p><w:r><w:t>Go and PostgreSQL</w:t></w:r></w:p>
</w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	result, err := File("resume.docx", buf.Bytes())
	require.NoError(t, err)

	assert.Contains(t, result.Text, "Senior Engineer at Acme Corp")
	sections, ok := result.Structured["sections"].([]any)
	require.True(t, ok)
	assert.Len(t, sections, 3)
}

func TestFile_DOCXWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = File("resume.docx", buf.Bytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestNormalize(t *testing.T) {
	got := normalize("a\r\nb\r\r\n\n\nc  \n")
	assert.Equal(t, "a\nb\n\nc", got)
}

func TestHeadingType(t *testing.T) {
	for heading, want := range map[string]string{
		"Experience":       "experience",
		"WORK EXPERIENCE":  "experience",
		"Skills:":          "skills",
		"Technical Skills": "skills",
		"Education":        "education",
	} {
		typ, ok := headingType(heading)
		assert.True(t, ok, "expected %q to be a heading", heading)
		assert.Equal(t, want, typ)
	}

	for _, line := range []string{"", "- Led migration of billing pipeline", "Dana Reyes"} {
		_, ok := headingType(line)
		assert.False(t, ok, "did not expect %q to be a heading", line)
	}
}
