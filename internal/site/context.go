package site

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-autofill/internal/dom"
)

// UnknownRole is returned when no role heading is found.
const UnknownRole = "Unknown"

const maxRoleLength = 100

// titleCompany captures the text before the first separator of a page title,
// as in "Acme - Senior Engineer".
var titleCompany = regexp.MustCompile(`(.+?)\s*[-|–]`)

var roleSelectors = []string{
	`[class*="job-title"]`,
	`[class*="position"]`,
	`[class*="role"]`,
	"h1",
	"h2",
}

// Company guesses the hiring company for a page: the title prefix, the first
// h1, the ATS slug, then the leftmost hostname label.
func Company(doc *dom.Document) string {
	if m := titleCompany.FindStringSubmatch(doc.Title()); m != nil {
		if c := strings.TrimSpace(m[1]); c != "" {
			return c
		}
	}
	if h1 := doc.First("h1"); h1 != nil {
		if c := strings.TrimSpace(h1.Text()); c != "" {
			return c
		}
	}
	if slug := CompanySlug(doc.URL); slug != "" {
		return slug
	}
	host := doc.Hostname()
	if i := strings.Index(host, "."); i > 0 {
		return host[:i]
	}
	return host
}

// Role returns the first job-title-like element text shorter than 100
// characters, or UnknownRole.
func Role(doc *dom.Document) string {
	for _, selector := range roleSelectors {
		el := doc.First(selector)
		if el == nil {
			continue
		}
		text := strings.TrimSpace(el.Text())
		if text != "" && utf8.RuneCountInString(text) < maxRoleLength {
			return text
		}
	}
	return UnknownRole
}
