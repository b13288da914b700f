package answers

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/fieldmatch"
	"github.com/jonathan/job-autofill/internal/types"
)

// BasicValue applies label-substring heuristics against the basic profile.
// It does not depend on canonical matching, so it can fill fields whose
// labels miss the synonym table.
func BasicValue(label string, p *types.Profile) string {
	if p == nil || label == "" {
		return ""
	}
	n := fieldmatch.Normalize(label)
	has := func(s string) bool { return strings.Contains(n, s) }

	switch {
	case n == "name" || has("full_name") || has("your_name"):
		return p.FullName()
	case has("first") && has("name"):
		return p.FirstName
	case has("last") && has("name"):
		return p.LastName
	case has("email"):
		return p.Email
	case has("phone") || has("mobile") || has("tel"):
		return p.Phone
	case has("linkedin"):
		return p.LinkedIn
	case has("github"):
		return p.GitHub
	}
	return ""
}
