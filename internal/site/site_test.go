package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/dom"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name      string
		whitelist []string
		hosts     []string
		want      bool
	}{
		{"exact", []string{"jobs.lever.co"}, []string{"jobs.lever.co"}, true},
		{"entry inside host", []string{"greenhouse.io"}, []string{"boards.greenhouse.io"}, true},
		{"host inside entry", []string{"careers.acme.com"}, []string{"acme.com"}, true},
		{"case insensitive", []string{"Jobs.Lever.co"}, []string{"jobs.lever.co"}, true},
		{"no overlap", []string{"greenhouse.io"}, []string{"example.com"}, false},
		{"empty whitelist", nil, []string{"example.com"}, false},
		{"blank entry ignored", []string{" "}, []string{"example.com"}, false},
		{"no hosts", []string{"example.com"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.whitelist, tt.hosts...))
		})
	}
}

func TestAllowedDocument_FrameUsesReferrer(t *testing.T) {
	doc, err := dom.ParseString(`<html><body></body></html>`, "https://boards.greenhouse.io/embed/job_app?for=acme")
	require.NoError(t, err)
	doc.Referrer = "https://careers.acme.com/jobs/1"

	assert.False(t, AllowedDocument([]string{"careers.acme.com"}, doc), "referrer only counts inside a frame")

	doc.InFrame = true
	assert.Equal(t, []string{"boards.greenhouse.io", "careers.acme.com"}, Hosts(doc))
	assert.True(t, AllowedDocument([]string{"careers.acme.com"}, doc))
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://example.com/careers", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestCompanySlug(t *testing.T) {
	assert.Equal(t, "doordashusa", CompanySlug("https://job-boards.greenhouse.io/doordashusa/jobs/7063751"))
	assert.Equal(t, "acme", CompanySlug("https://jobs.lever.co/acme/abc-123/apply"))
	assert.Equal(t, "acme", CompanySlug("https://boards.greenhouse.io/embed/job_app?for=acme&token=1"))
	assert.Equal(t, "globex", CompanySlug("https://globex.wd5.myworkdayjobs.com/en-US/External"))
	assert.Empty(t, CompanySlug("https://example.com/acme"))
}

func TestCompany(t *testing.T) {
	tests := []struct {
		name string
		html string
		url  string
		want string
	}{
		{"title prefix", `<title>Acme Corp - Senior Engineer</title><h1>Apply</h1>`, "https://x.com", "Acme Corp"},
		{"title pipe", `<title>Globex | Careers</title>`, "https://x.com", "Globex"},
		{"h1 fallback", `<title>Careers</title><h1> Initech </h1>`, "https://x.com", "Initech"},
		{"ats slug", `<title>Apply</title>`, "https://jobs.lever.co/hooli/123", "hooli"},
		{"hostname", `<title>Apply</title>`, "https://careers.acme.com/job", "careers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := dom.ParseString(`<html><head>`+tt.html+`</head><body></body></html>`, tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Company(doc))
		})
	}
}

func TestRole(t *testing.T) {
	doc, err := dom.ParseString(`<html><body>
		<div class="hero"><h1>Join us</h1></div>
		<span class="job-title-text">Staff Engineer</span>
	</body></html>`, "https://x.com")
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", Role(doc))

	doc, err = dom.ParseString(`<html><body><p>nothing</p></body></html>`, "https://x.com")
	require.NoError(t, err)
	assert.Equal(t, UnknownRole, Role(doc))
}
