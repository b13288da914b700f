package resume

import "github.com/jonathan/job-autofill/internal/types"

// ToCanonical maps a lightweight profile into the canonical shape. Work
// authorization, compensation and availability are unknown after
// structuring and stay empty.
func ToCanonical(p *types.Profile) *types.CanonicalProfile {
	c := &types.CanonicalProfile{
		Identity: types.Identity{
			FirstName:       p.FirstName,
			MiddleName:      p.MiddleName,
			LastName:        p.LastName,
			FullName:        p.FullName(),
			Email:           p.Email,
			Phone:           p.Phone,
			LocationCity:    p.LocationCity,
			LocationState:   p.LocationState,
			LocationCountry: p.Country,
			LinkedInURL:     p.LinkedIn,
			GitHubURL:       p.GitHub,
			PortfolioURL:    p.Portfolio,
		},
		ProfessionalSummary: types.ProfessionalSummary{
			Headline:          p.Headline,
			Summary:           p.Summary,
			YearsOfExperience: p.Years,
			CurrentTitle:      p.CurrentTitle,
			CurrentCompany:    p.CurrentCompany,
		},
		Skills: types.SkillSet{
			ProgrammingLanguages: orEmpty(p.Skills),
			FrontendFrameworks:   []string{},
			BackendFrameworks:    []string{},
			Databases:            []string{},
			CloudPlatforms:       []string{},
			DevOpsTools:          []string{},
			TestingTools:         []string{},
			OtherTools:           []string{},
		},
		Experience:     make([]types.Position, 0, len(p.Experience)),
		Education:      make([]types.Degree, 0, len(p.Education)),
		Projects:       make([]types.Project, 0, len(p.Projects)),
		Certifications: orEmpty(p.Certifications),
	}

	for _, j := range p.Experience {
		resp := j.Responsibilities
		if len(resp) == 0 && j.Description != "" {
			resp = []string{j.Description}
		}
		c.Experience = append(c.Experience, types.Position{
			Company:          j.Company,
			Title:            j.Role,
			EmploymentType:   j.EmploymentType,
			Location:         j.Location,
			StartDate:        j.StartDate,
			EndDate:          j.EndDate,
			IsCurrent:        j.Current,
			Responsibilities: orEmpty(resp),
			Achievements:     orEmpty(j.Achievements),
			TechStack:        orEmpty(j.TechStack),
		})
	}
	for _, s := range p.Education {
		c.Education = append(c.Education, types.Degree{
			Degree:         s.Degree,
			FieldOfStudy:   s.FieldOfStudy,
			Institution:    s.Institution,
			GraduationYear: s.GraduationYear,
		})
	}
	for _, pr := range p.Projects {
		pr.Technologies = orEmpty(pr.Technologies)
		c.Projects = append(c.Projects, pr)
	}
	return c
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
