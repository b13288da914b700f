// Package types defines the profile shapes shared by structuring, filling and
// answer generation, and the Value type that holds a fill answer.
package types

import "encoding/json"

// Profile is the lightweight candidate profile produced by resume
// structuring. It is read by the basic-profile fill tier and by answer
// generation.
type Profile struct {
	FirstName      string     `json:"firstName"`
	MiddleName     string     `json:"middleName,omitempty"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	LinkedIn       string     `json:"linkedin"`
	GitHub         string     `json:"github"`
	Portfolio      string     `json:"portfolio,omitempty"`
	LocationCity   string     `json:"location_city,omitempty"`
	LocationState  string     `json:"location_state,omitempty"`
	Country        string     `json:"location_country,omitempty"`
	Headline       string     `json:"headline,omitempty"`
	Summary        string     `json:"summary"`
	Years          FlexString `json:"years,omitempty"`
	CurrentTitle   string     `json:"current_title,omitempty"`
	CurrentCompany string     `json:"current_company,omitempty"`
	Skills         []string   `json:"skills"`
	Experience     []Job      `json:"experience"`
	Education      []School   `json:"education"`
	Projects       []Project  `json:"projects"`
	Certifications []string   `json:"certifications,omitempty"`
}

// Job is one experience entry of a Profile.
type Job struct {
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	Description      string   `json:"description"`
	EmploymentType   string   `json:"employment_type,omitempty"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Current          bool     `json:"current,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
	TechStack        []string `json:"tech_stack,omitempty"`
}

// School is one education entry of a Profile.
type School struct {
	Institution    string     `json:"institution"`
	Degree         string     `json:"degree"`
	FieldOfStudy   string     `json:"field_of_study,omitempty"`
	GraduationYear FlexString `json:"graduation_year,omitempty"`
}

// Project is one project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// looseProfile lists every spelling structuring has been seen to produce.
type looseProfile struct {
	FirstName           string     `json:"firstName"`
	FirstNameSnake      string     `json:"first_name"`
	MiddleName          string     `json:"middleName"`
	MiddleNameSnake     string     `json:"middle_name"`
	LastName            string     `json:"lastName"`
	LastNameSnake       string     `json:"last_name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	LinkedIn            string     `json:"linkedin"`
	LinkedInURL         string     `json:"linkedin_url"`
	GitHub              string     `json:"github"`
	GitHubURL           string     `json:"github_url"`
	Portfolio           string     `json:"portfolio"`
	PortfolioURL        string     `json:"portfolio_url"`
	LocationCity        string     `json:"location_city"`
	LocationState       string     `json:"location_state"`
	Country             string     `json:"location_country"`
	Headline            string     `json:"headline"`
	Summary             string     `json:"summary"`
	ProfessionalSummary string     `json:"professional_summary"`
	Years               FlexString `json:"years"`
	YearsOfExperience   FlexString `json:"years_of_experience"`
	CurrentTitle        string     `json:"current_title"`
	CurrentTitleCamel   string     `json:"currentTitle"`
	CurrentCompany      string     `json:"current_company"`
	CurrentCompanyCamel string     `json:"currentCompany"`
	Skills              []string   `json:"skills"`
	Experience          []looseJob `json:"experience"`
	Education           []School   `json:"education"`
	Projects            []Project  `json:"projects"`
	Certifications      []string   `json:"certifications"`
}

type looseJob struct {
	Company          string   `json:"company"`
	CompanyName      string   `json:"company_name"`
	Role             string   `json:"role"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	EmploymentType   string   `json:"employment_type"`
	Location         string   `json:"location"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Current          bool     `json:"current"`
	IsCurrent        bool     `json:"is_current"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
	TechStack        []string `json:"tech_stack"`
}

// UnmarshalJSON accepts camelCase and snake_case spellings and normalizes
// them once, so readers only ever see the canonical fields.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw looseProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Profile{
		FirstName:      firstNonEmpty(raw.FirstName, raw.FirstNameSnake),
		MiddleName:     firstNonEmpty(raw.MiddleName, raw.MiddleNameSnake),
		LastName:       firstNonEmpty(raw.LastName, raw.LastNameSnake),
		Email:          raw.Email,
		Phone:          raw.Phone,
		LinkedIn:       firstNonEmpty(raw.LinkedIn, raw.LinkedInURL),
		GitHub:         firstNonEmpty(raw.GitHub, raw.GitHubURL),
		Portfolio:      firstNonEmpty(raw.Portfolio, raw.PortfolioURL),
		LocationCity:   raw.LocationCity,
		LocationState:  raw.LocationState,
		Country:        raw.Country,
		Headline:       raw.Headline,
		Summary:        firstNonEmpty(raw.Summary, raw.ProfessionalSummary),
		Years:          firstFlex(raw.Years, raw.YearsOfExperience),
		CurrentTitle:   firstNonEmpty(raw.CurrentTitle, raw.CurrentTitleCamel),
		CurrentCompany: firstNonEmpty(raw.CurrentCompany, raw.CurrentCompanyCamel),
		Skills:         raw.Skills,
		Education:      raw.Education,
		Projects:       raw.Projects,
		Certifications: raw.Certifications,
	}
	for _, j := range raw.Experience {
		p.Experience = append(p.Experience, Job{
			Company:          firstNonEmpty(j.Company, j.CompanyName),
			Role:             firstNonEmpty(j.Role, j.Title),
			Description:      j.Description,
			EmploymentType:   j.EmploymentType,
			Location:         j.Location,
			StartDate:        j.StartDate,
			EndDate:          j.EndDate,
			Current:          j.Current || j.IsCurrent,
			Responsibilities: j.Responsibilities,
			Achievements:     j.Achievements,
			TechStack:        j.TechStack,
		})
	}
	return nil
}

// FullName joins first and last name.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// ExperienceRef identifies an employer/role pair the candidate has answered
// questions about.
type ExperienceRef struct {
	Company string `json:"company,omitempty"`
	Role    string `json:"role,omitempty"`
}
