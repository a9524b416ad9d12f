package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobPageHTML = `<!DOCTYPE html>
<html>
<head>
<title>Acme Careers</title>
<meta property="og:site_name" content="Acme Corp">
</head>
<body>
<nav>Navigation</nav>
<main>
<h1>Senior Software Engineer</h1>
<div class="job-location">Remote, US</div>
<article class="job-description">
<h2>Requirements</h2>
<ul>
<li>Go experience</li>
<li>Distributed systems</li>
</ul>
</article>
</main>
<footer>Footer</footer>
</body>
</html>`

func TestExtractMainText(t *testing.T) {
	text, err := ExtractMainText(jobPageHTML, JobPostingSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "Requirements")
	assert.Contains(t, text, "Go experience")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	text, err := ExtractMainText("<html><body><p>Just a paragraph</p></body></html>", JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Just a paragraph", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short shell"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("real content ", 100)))
}

func TestFromHTML(t *testing.T) {
	text, err := ExtractMainText(jobPageHTML, JobPostingSelectors())
	require.NoError(t, err)

	posting := FromHTML(jobPageHTML, text)

	assert.Equal(t, "Senior Software Engineer", posting.Title)
	assert.Equal(t, "Acme Corp", posting.Company)
	assert.Equal(t, "Remote, US", posting.Location)
	assert.Contains(t, posting.ContentRaw, "Distributed systems")
	assert.Equal(t, []string{"Go"}, posting.RequiredSkills)
}

func TestScanSkills(t *testing.T) {
	text := "We want Python and Kubernetes experience. Bonus: ci/cd pipelines, Node.js services."
	assert.Equal(t, []string{"Python", "Node.js", "Kubernetes", "CI/CD"}, ScanSkills(text))

	assert.Empty(t, ScanSkills("We value teamwork and communication."))

	// Substrings do not match: "going" is not "Go".
	assert.Empty(t, ScanSkills("We are going places."))
}

func TestScanSkills_AmbiguousWordsNeedExactCase(t *testing.T) {
	// Lowercase everyday uses of Go, Spring, React, Rust, Rails, REST are not
	// skill mentions.
	prose := "Please go to our careers page. We spring into action and react quickly, " +
		"trust our people, and take time to rest. Our rails keep projects on track."
	assert.Empty(t, ScanSkills(prose))

	// The capitalized language and framework names still match.
	assert.Equal(t, []string{"Go", "React"}, ScanSkills("Experience with Go and React required."))

	// Unambiguous skills stay case-insensitive.
	assert.Equal(t, []string{"Python", "Kubernetes"}, ScanSkills("python and KUBERNETES welcome."))
}

func TestFromHTML_TitleFallsBackToFirstLine(t *testing.T) {
	posting := FromHTML("", "Staff Engineer\nMore text")
	assert.Equal(t, "Staff Engineer", posting.Title)
}

func TestFromURL_MockServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(jobPageHTML))
	}))
	defer server.Close()

	posting, err := FromURL(context.Background(), server.URL, false, false)
	require.NoError(t, err)

	assert.Equal(t, server.URL, posting.SourceURL)
	assert.Equal(t, "Senior Software Engineer", posting.Title)
	assert.False(t, posting.RenderedInBrowser)

	input := posting.Input()
	assert.Equal(t, posting.Title, input.Title)
	assert.Equal(t, server.URL, input.SourceURL)
}

func TestFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FromURL(context.Background(), server.URL, false, false)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetchURL_InvalidURL(t *testing.T) {
	_, err := FetchURL(context.Background(), "not-a-url", nil)
	require.Error(t, err)
}
