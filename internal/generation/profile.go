package generation

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/types"
)

const (
	// fallbackExperiences is how many entries are kept when none match the
	// company or role.
	fallbackExperiences = 2
	// promptExperiences caps the entries rendered into a prompt.
	promptExperiences = 3
	// promptResponsibilities caps responsibilities per rendered entry.
	promptResponsibilities = 2
)

// Experience is one work-history entry given to the model.
type Experience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// MinimalProfile is the slice of the candidate profile sent with an answer
// request: a summary and the most relevant experience entries.
type MinimalProfile struct {
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
}

// BuildMinimalProfile prefers the canonical summary and history when the
// canonical profile has a summary, keeps experiences whose company contains
// company or whose title contains role, and falls back to the first two.
func BuildMinimalProfile(p *types.Profile, c *types.CanonicalProfile, company, role string) MinimalProfile {
	var (
		summary     string
		experiences []Experience
	)
	if p != nil {
		summary = p.Summary
		for _, j := range p.Experience {
			experiences = append(experiences, Experience{
				Title:            j.Role,
				Company:          j.Company,
				Responsibilities: j.Responsibilities,
			})
		}
	}
	if c != nil && c.ProfessionalSummary.Summary != "" {
		summary = c.ProfessionalSummary.Summary
		if len(c.Experience) > 0 {
			experiences = experiences[:0]
			for _, pos := range c.Experience {
				experiences = append(experiences, Experience{
					Title:            pos.Title,
					Company:          pos.Company,
					Responsibilities: pos.Responsibilities,
				})
			}
		}
	}

	return MinimalProfile{
		Summary:    summary,
		Experience: relevant(experiences, company, role),
	}
}

func relevant(all []Experience, company, role string) []Experience {
	comp := strings.ToLower(strings.TrimSpace(company))
	r := strings.ToLower(strings.TrimSpace(role))

	var out []Experience
	if comp != "" || r != "" {
		for _, e := range all {
			if comp != "" && strings.Contains(strings.ToLower(e.Company), comp) {
				out = append(out, e)
				continue
			}
			if r != "" && strings.Contains(strings.ToLower(e.Title), r) {
				out = append(out, e)
			}
		}
	}
	if len(out) == 0 {
		out = all[:min(len(all), fallbackExperiences)]
	}
	return out
}

// renderExperience formats up to three entries as "title at company:
// resp1; resp2", one per line.
func renderExperience(list []Experience) string {
	lines := make([]string, 0, promptExperiences)
	for _, e := range list[:min(len(list), promptExperiences)] {
		line := e.Title + " at " + e.Company
		if resp := e.Responsibilities[:min(len(e.Responsibilities), promptResponsibilities)]; len(resp) > 0 {
			line += ": " + strings.Join(resp, "; ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n- ")
}
