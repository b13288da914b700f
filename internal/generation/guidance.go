package generation

import "strings"

// Guidance is the field-type instruction added to an answer prompt.
type Guidance struct {
	// Key names the guidance template in the generation prompts.
	Key       string
	WordLimit string
}

type guidanceRule struct {
	matches func(label string) bool
	guide   Guidance
}

func anyOf(words ...string) func(string) bool {
	return func(label string) bool {
		for _, w := range words {
			if strings.Contains(label, w) {
				return true
			}
		}
		return false
	}
}

// Rules are checked in order; the first match wins.
var guidanceRules = []guidanceRule{
	{
		matches: func(l string) bool {
			return strings.Contains(l, "why") && anyOf("company", "role", "position", "job", "interested")(l)
		},
		guide: Guidance{Key: "guidance-why-company", WordLimit: "100-150 words"},
	},
	{anyOf("strength", "superpower"), Guidance{Key: "guidance-strength", WordLimit: "60-100 words"}},
	{anyOf("weakness", "improve", "development"), Guidance{Key: "guidance-weakness", WordLimit: "60-100 words"}},
	{anyOf("challenge", "difficult", "obstacle", "problem"), Guidance{Key: "guidance-challenge", WordLimit: "100-150 words"}},
	{anyOf("achievement", "accomplishment", "proud"), Guidance{Key: "guidance-achievement", WordLimit: "80-120 words"}},
	{anyOf("leadership", "team", "collaboration"), Guidance{Key: "guidance-leadership", WordLimit: "80-120 words"}},
	{anyOf("salary", "compensation", "expectation"), Guidance{Key: "guidance-salary", WordLimit: "20-40 words"}},
	{anyOf("cover letter", "introduction"), Guidance{Key: "guidance-cover-letter", WordLimit: "150-200 words"}},
}

var defaultGuidance = Guidance{Key: "guidance-default", WordLimit: "80-120 words"}

// GuidanceFor picks the guidance for a field label by keyword.
func GuidanceFor(label string) Guidance {
	l := strings.ToLower(label)
	for _, r := range guidanceRules {
		if r.matches(l) {
			return r.guide
		}
	}
	return defaultGuidance
}
