package answers

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/fieldmatch"
	"github.com/jonathan/job-autofill/internal/types"
)

type accessor func(c *types.CanonicalProfile) string

// canonicalAccessors maps canonical keys to values inside a CanonicalProfile.
// Keys without an entry never resolve from this tier.
var canonicalAccessors = map[fieldmatch.Key]accessor{
	fieldmatch.FirstName:       func(c *types.CanonicalProfile) string { return c.Identity.FirstName },
	fieldmatch.MiddleName:      func(c *types.CanonicalProfile) string { return c.Identity.MiddleName },
	fieldmatch.LastName:        func(c *types.CanonicalProfile) string { return c.Identity.LastName },
	fieldmatch.FullName:        func(c *types.CanonicalProfile) string { return c.Identity.FullName },
	fieldmatch.Email:           func(c *types.CanonicalProfile) string { return c.Identity.Email },
	fieldmatch.Phone:           func(c *types.CanonicalProfile) string { return c.Identity.Phone },
	fieldmatch.LocationCity:    func(c *types.CanonicalProfile) string { return c.Identity.LocationCity },
	fieldmatch.LocationState:   func(c *types.CanonicalProfile) string { return c.Identity.LocationState },
	fieldmatch.LocationCountry: func(c *types.CanonicalProfile) string { return c.Identity.LocationCountry },
	fieldmatch.CurrentLocation: currentLocation,
	fieldmatch.LinkedInURL:     func(c *types.CanonicalProfile) string { return c.Identity.LinkedInURL },
	fieldmatch.GitHubURL:       func(c *types.CanonicalProfile) string { return c.Identity.GitHubURL },
	fieldmatch.PortfolioURL:    func(c *types.CanonicalProfile) string { return c.Identity.PortfolioURL },

	fieldmatch.CurrentTitle:      func(c *types.CanonicalProfile) string { return c.ProfessionalSummary.CurrentTitle },
	fieldmatch.CurrentCompany:    func(c *types.CanonicalProfile) string { return c.ProfessionalSummary.CurrentCompany },
	fieldmatch.YearsOfExperience: func(c *types.CanonicalProfile) string { return c.ProfessionalSummary.YearsOfExperience.String() },

	// Both skill keys read the programming languages list.
	fieldmatch.Skills:               programmingLanguages,
	fieldmatch.ProgrammingLanguages: programmingLanguages,

	fieldmatch.HighestDegree: func(c *types.CanonicalProfile) string { return firstDegree(c).Degree },
	fieldmatch.FieldOfStudy:  func(c *types.CanonicalProfile) string { return firstDegree(c).FieldOfStudy },
	fieldmatch.Institution:   func(c *types.CanonicalProfile) string { return firstDegree(c).Institution },
	fieldmatch.GraduationYear: func(c *types.CanonicalProfile) string {
		return firstDegree(c).GraduationYear.String()
	},

	fieldmatch.PreviousTitle:   func(c *types.CanonicalProfile) string { return firstPosition(c).Title },
	fieldmatch.PreviousCompany: func(c *types.CanonicalProfile) string { return firstPosition(c).Company },

	fieldmatch.VisaStatus:            func(c *types.CanonicalProfile) string { return c.WorkAuthorization.VisaStatus },
	fieldmatch.RequiresSponsorship:   func(c *types.CanonicalProfile) string { return yesNo(c.WorkAuthorization.RequiresSponsorship) },
	fieldmatch.AuthorizedToWork:      func(c *types.CanonicalProfile) string { return yesNo(c.WorkAuthorization.AuthorizedToWork) },
	fieldmatch.RelocationWillingness: func(c *types.CanonicalProfile) string { return yesNo(c.WorkAuthorization.RelocationWillingness) },
	fieldmatch.RemotePreference:      func(c *types.CanonicalProfile) string { return yesNo(c.WorkAuthorization.RemotePreference) },

	fieldmatch.NoticePeriod:      func(c *types.CanonicalProfile) string { return c.Availability.NoticePeriod },
	fieldmatch.SalaryExpectation: func(c *types.CanonicalProfile) string { return c.Compensation.ExpectedSalary.String() },
	fieldmatch.CurrentSalary:     func(c *types.CanonicalProfile) string { return c.Compensation.CurrentSalary.String() },
	fieldmatch.Currency:          func(c *types.CanonicalProfile) string { return c.Compensation.Currency },
}

// CanonicalValue returns the profile value for key, or "" when the key has
// no accessor or the underlying field is empty.
func CanonicalValue(c *types.CanonicalProfile, key fieldmatch.Key) string {
	if c == nil || key == "" {
		return ""
	}
	get, ok := canonicalAccessors[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(get(c))
}

func currentLocation(c *types.CanonicalProfile) string {
	city, state := c.Identity.LocationCity, c.Identity.LocationState
	if city != "" && state != "" {
		return city + ", " + state
	}
	if city != "" {
		return city
	}
	return state
}

func programmingLanguages(c *types.CanonicalProfile) string {
	return strings.Join(c.Skills.ProgrammingLanguages, ", ")
}

func firstDegree(c *types.CanonicalProfile) types.Degree {
	if len(c.Education) == 0 {
		return types.Degree{}
	}
	return c.Education[0]
}

func firstPosition(c *types.CanonicalProfile) types.Position {
	if len(c.Experience) == 0 {
		return types.Position{}
	}
	return c.Experience[0]
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return ""
	case *b:
		return "Yes"
	default:
		return "No"
	}
}
