package types

// CanonicalProfile is the structured profile the canonical fill tier reads.
// Absent values are empty strings, nil slices or nil pointers.
type CanonicalProfile struct {
	Identity            Identity            `json:"identity"`
	WorkAuthorization   WorkAuthorization   `json:"work_authorization"`
	ProfessionalSummary ProfessionalSummary `json:"professional_summary"`
	Skills              SkillSet            `json:"skills"`
	Experience          []Position          `json:"experience"`
	Education           []Degree            `json:"education"`
	Projects            []Project           `json:"projects"`
	Certifications      []string            `json:"certifications"`
	Compensation        Compensation        `json:"compensation"`
	Availability        Availability        `json:"availability"`
}

// Identity holds contact and location details.
type Identity struct {
	FirstName       string `json:"first_name,omitempty"`
	MiddleName      string `json:"middle_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	FullName        string `json:"full_name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	LocationCity    string `json:"location_city,omitempty"`
	LocationState   string `json:"location_state,omitempty"`
	LocationCountry string `json:"location_country,omitempty"`
	LinkedInURL     string `json:"linkedin_url,omitempty"`
	GitHubURL       string `json:"github_url,omitempty"`
	PortfolioURL    string `json:"portfolio_url,omitempty"`
}

// WorkAuthorization holds eligibility answers; nil means unknown.
type WorkAuthorization struct {
	VisaStatus            string `json:"visa_status,omitempty"`
	RequiresSponsorship   *bool  `json:"requires_sponsorship"`
	AuthorizedToWork      *bool  `json:"authorized_to_work"`
	RelocationWillingness *bool  `json:"relocation_willingness"`
	RemotePreference      *bool  `json:"remote_preference"`
}

// ProfessionalSummary holds the headline facts of a career.
type ProfessionalSummary struct {
	Headline          string     `json:"headline,omitempty"`
	Summary           string     `json:"summary"`
	YearsOfExperience FlexString `json:"years_of_experience,omitempty"`
	CurrentTitle      string     `json:"current_title,omitempty"`
	CurrentCompany    string     `json:"current_company,omitempty"`
}

// SkillSet groups skills by area.
type SkillSet struct {
	ProgrammingLanguages []string `json:"programming_languages"`
	FrontendFrameworks   []string `json:"frontend_frameworks"`
	BackendFrameworks    []string `json:"backend_frameworks"`
	Databases            []string `json:"databases"`
	CloudPlatforms       []string `json:"cloud_platforms"`
	DevOpsTools          []string `json:"devops_tools"`
	TestingTools         []string `json:"testing_tools"`
	OtherTools           []string `json:"other_tools"`
}

// Position is one entry of the canonical work history.
type Position struct {
	Company          string   `json:"company,omitempty"`
	Title            string   `json:"title,omitempty"`
	EmploymentType   string   `json:"employment_type,omitempty"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	IsCurrent        bool     `json:"is_current,omitempty"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
	TechStack        []string `json:"tech_stack"`
}

// Degree is one entry of the canonical education history.
type Degree struct {
	Degree         string     `json:"degree,omitempty"`
	FieldOfStudy   string     `json:"field_of_study,omitempty"`
	Institution    string     `json:"institution,omitempty"`
	GraduationYear FlexString `json:"graduation_year,omitempty"`
}

// Compensation holds salary details.
type Compensation struct {
	CurrentSalary  FlexString `json:"current_salary,omitempty"`
	ExpectedSalary FlexString `json:"expected_salary,omitempty"`
	Currency       string     `json:"currency,omitempty"`
}

// Availability holds start-date details.
type Availability struct {
	NoticePeriod string `json:"notice_period,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
}
