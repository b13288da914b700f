package fieldmatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_KnownLabels(t *testing.T) {
	tests := []struct {
		label string
		want  Key
	}{
		{"First Name", FirstName},
		{"First Name *", FirstName},
		{"Legal Last Name", LastName},
		{"Email Address", Email},
		{"Phone Number", Phone},
		{"LinkedIn Profile", LinkedInURL},
		{"GitHub URL", GitHubURL},
		{"Street Address", AddressStreet},
		{"Years of Experience", YearsOfExperience},
		{"Will you require sponsorship?", RequiresSponsorship},
		{"Are you authorized to work in the US?", AuthorizedToWork},
		{"How did you hear about us?", ReferralSource},
		{"Cover Letter", CoverLetter},
		{"Programming Languages", ProgrammingLanguages},
		{"Highest Degree", HighestDegree},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := Match(tt.label)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_NoMatch(t *testing.T) {
	for _, label := range []string{"", "unknown", "  ***  ", "Unknown", "Favorite ice cream"} {
		_, ok := Match(label)
		assert.False(t, ok, "label %q", label)
	}
}

// firstContaining mirrors the exact pass so the test can state which key an
// exact hit must produce.
func firstContaining(label string) Key {
	for _, entry := range synonymTable {
		for _, synonym := range entry.synonyms {
			if strings.Contains(label, synonym) {
				return entry.key
			}
		}
	}
	return ""
}

func TestMatch_ExactPassWinsForEverySynonym(t *testing.T) {
	for _, entry := range synonymTable {
		for _, synonym := range entry.synonyms {
			if cleanForMatch(synonym) != synonym {
				// Synonyms with punctuation can never equal a cleaned label.
				continue
			}
			got, ok := Match(synonym)
			require.True(t, ok, "synonym %q", synonym)
			assert.Equal(t, firstContaining(synonym), got, "synonym %q", synonym)
		}
	}
}

func TestMatch_ExactSynonymOwnKey(t *testing.T) {
	for _, synonym := range []string{"given name", "surname", "zip code", "gpa", "visa status", "referred by", "notice period"} {
		got, ok := Match(synonym)
		require.True(t, ok)
		assert.Contains(t, Synonyms(got), synonym)
	}
}

func TestMatch_TableOrderBreaksTies(t *testing.T) {
	// "personal website" is listed under both portfolio_url and personal_website.
	got, _ := Match("Personal Website")
	assert.Equal(t, PortfolioURL, got)

	// "location" is contained in "relocation" and current_location comes first.
	got, _ = Match("Relocation")
	assert.Equal(t, CurrentLocation, got)
}

func TestMatch_PartialPass(t *testing.T) {
	// No synonym is a substring; "years of experience" overlaps on two tokens.
	got, ok := Match("Years Experience")
	require.True(t, ok)
	assert.Equal(t, YearsOfExperience, got)
}

func TestMatch_PartialPassShortTokenFalsePositive(t *testing.T) {
	// "one" is contained in "phone", so a short generic label lands on phone.
	// Value validation is what keeps a non-phone answer out of such a field.
	got, ok := Match("Pick one")
	require.True(t, ok)
	assert.Equal(t, Phone, got)
	assert.False(t, IsValid("Option B", got))
}

func TestMatch_LongLabelsIgnoreSingleTokenOverlap(t *testing.T) {
	_, ok := Match("Describe a hobby you pursue outside of professional life on weekends")
	// "professional experience" shares only one token; the label is long.
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 62)

	seen := map[Key]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
		assert.True(t, IsKnown(k))
	}
	assert.False(t, IsKnown("favorite_color"))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, TypeURL, TypeOf(LinkedInURL))
	assert.Equal(t, TypeEmail, TypeOf(Email))
	assert.Equal(t, TypePhone, TypeOf(Phone))
	assert.Equal(t, TypeName, TypeOf(ReferralName))
	assert.Equal(t, TypeNumber, TypeOf(GPA))
	assert.Equal(t, TypeBoolean, TypeOf(RemotePreference))
	assert.Equal(t, TypeText, TypeOf(CoverLetter))
	assert.Equal(t, TypeText, TypeOf(""))
}
