package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-autofill/internal/types"
)

const (
	nameScanLines    = 6
	summaryScanLines = 8
	maxSkillsInline  = 30
	maxEntries       = 10
)

var (
	emailPattern    = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?\d[\d ()-]{6,}\d`)
	linkedinPattern = regexp.MustCompile(`(?i)https?://([\w.-]*\.)?linkedin\.com/[\w\-/]+`)
	githubPattern   = regexp.MustCompile(`(?i)https?://([\w.-]*\.)?github\.com/[\w\-/]+`)
	multiSpace      = regexp.MustCompile(`\s{2,}`)
	lineBreaks      = regexp.MustCompile(`\n+`)

	nameSkip     = regexp.MustCompile(`(?i)email|phone|linkedin|address|summary|experience`)
	capitalWord  = regexp.MustCompile(`^[A-Z][a-z]+`)
	skillHeading = regexp.MustCompile(`(?i)^(skills?|technical skills|skillset)[:\-\s]`)
	headingSep   = regexp.MustCompile(`[:\-]`)
	skillSep     = regexp.MustCompile(`[;,|]`)

	roleAtCompany   = regexp.MustCompile(`(?i)(.+?)\s+at\s+([A-Z0-9][\w &.-]+)`)
	companyDashRole = regexp.MustCompile(`^([A-Z0-9][\w &.-]{2,})\s+[-–|]\s+(.+)$`)
	roleCommaCo     = regexp.MustCompile(`^(.+?),\s*([A-Z0-9][\w &.-]{2,})$`)

	educationLine = regexp.MustCompile(`(?i)university|college|b\.?s\.?|m\.?s\.?|bachelor|master|degree|phd`)
	summarySkip   = regexp.MustCompile(`(?i)email|@|phone|linkedin|github|skills?`)
)

// StructureLocal extracts a lightweight profile from plain resume text with
// line heuristics. It never fails; unrecognized parts stay empty.
func StructureLocal(text string) *types.Profile {
	text = strings.ReplaceAll(text, "\r", "\n")
	var lines []string
	for _, l := range lineBreaks.Split(text, -1) {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	p := &types.Profile{
		Skills:     []string{},
		Experience: []types.Job{},
		Education:  []types.School{},
		Projects:   []types.Project{},
	}

	p.Email = emailPattern.FindString(text)
	p.Phone = multiSpace.ReplaceAllString(phonePattern.FindString(text), " ")
	p.LinkedIn = linkedinPattern.FindString(text)
	p.GitHub = githubPattern.FindString(text)

	p.FirstName, p.LastName = findName(lines)
	p.Skills = dedupe(findSkills(lines))
	p.Experience = findExperience(lines)
	p.Education = findEducation(lines)
	p.Summary = findSummary(lines, p.FirstName+" "+p.LastName)

	return p
}

func findName(lines []string) (first, last string) {
	for _, l := range lines[:min(len(lines), nameScanLines)] {
		if nameSkip.MatchString(l) {
			continue
		}
		words := strings.Fields(l)
		capitalized := 0
		for _, w := range words {
			if capitalWord.MatchString(w) {
				capitalized++
			}
		}
		if capitalized >= 1 && len(words) <= 4 {
			if len(words) > 1 {
				return words[0], words[len(words)-1]
			}
			return words[0], ""
		}
	}
	return "", ""
}

func findSkills(lines []string) []string {
	for _, l := range lines {
		if !skillHeading.MatchString(l) {
			continue
		}
		after := strings.Join(headingSep.Split(l, -1)[1:], "-")
		var skills []string
		for _, s := range skillSep.Split(after, -1) {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		return skills
	}

	for _, l := range lines {
		parts := strings.Split(l, ",")
		if len(parts) >= 4 && utf8.RuneCountInString(l) < 200 {
			skills := make([]string, 0, len(parts))
			for _, s := range parts[:min(len(parts), maxSkillsInline)] {
				skills = append(skills, strings.TrimSpace(s))
			}
			return skills
		}
	}
	return nil
}

func findExperience(lines []string) []types.Job {
	jobs := []types.Job{}
	for _, l := range lines {
		if m := roleAtCompany.FindStringSubmatch(l); m != nil {
			jobs = append(jobs, types.Job{Role: strings.TrimSpace(m[1]), Company: strings.TrimSpace(m[2])})
			continue
		}
		if m := companyDashRole.FindStringSubmatch(l); m != nil {
			jobs = append(jobs, types.Job{Company: strings.TrimSpace(m[1]), Role: strings.TrimSpace(m[2])})
			continue
		}
		if m := roleCommaCo.FindStringSubmatch(l); m != nil {
			jobs = append(jobs, types.Job{Role: strings.TrimSpace(m[1]), Company: strings.TrimSpace(m[2])})
		}
	}
	return jobs[:min(len(jobs), maxEntries)]
}

func findEducation(lines []string) []types.School {
	schools := []types.School{}
	for _, l := range lines {
		if educationLine.MatchString(l) {
			schools = append(schools, types.School{Institution: l})
		}
	}
	return schools[:min(len(schools), maxEntries)]
}

func findSummary(lines []string, fullName string) string {
	for _, l := range lines[:min(len(lines), summaryScanLines)] {
		if l == fullName || summarySkip.MatchString(l) {
			continue
		}
		if utf8.RuneCountInString(l) > 30 && len(strings.Split(l, " ")) > 5 {
			return l
		}
	}
	return ""
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := []string{}
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
